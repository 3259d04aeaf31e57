package profiling

var PyroscopeConfig = pyroscopeConfig
