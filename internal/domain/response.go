package domain

import "time"

// SRU metadata echoed in every response.
const (
	SRUVersion       = "2.0"
	SRUDocumentation = "https://repository.overheid.nl/sru?operation=explain"
)

// SearchResponse is the body returned for a successful search.
type SearchResponse struct {
	Records      []Document  `json:"records"`
	TotalRecords int         `json:"totalRecords"`
	Facets       []Facet     `json:"facets"`
	Query        string      `json:"query"`
	SearchInfo   SearchInfo  `json:"searchInfo"`
	Performance  Performance `json:"performance"`
	APIInfo      APIInfo     `json:"apiInfo"`
}

// SearchInfo is the pagination block of a SearchResponse.
type SearchInfo struct {
	StartRecord    int  `json:"startRecord"`
	MaximumRecords int  `json:"maximumRecords"`
	HasMore        bool `json:"hasMore"`
	TotalPages     int  `json:"totalPages"`
	CurrentPage    int  `json:"currentPage"`
	RecordsOnPage  int  `json:"recordsOnPage"`
}

// Performance describes how the search ran.
type Performance struct {
	Timestamp       time.Time `json:"timestamp"`
	ResultsFound    int       `json:"resultsFound"`
	QueryComplexity int       `json:"queryComplexity"`
	ProcessingTime  int64     `json:"processingTime"`
}

// APIInfo identifies the upstream service.
type APIInfo struct {
	SRUVersion    string `json:"sruVersion"`
	Endpoint      string `json:"endpoint"`
	Documentation string `json:"documentation"`
}

// CompiledQuery is the result of compiling a FilterSpec without running it.
type CompiledQuery struct {
	Query      string `json:"query"`
	SortKeys   string `json:"sortKeys,omitempty"`
	Complexity int    `json:"complexity"`
}
