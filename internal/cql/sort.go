package cql

import "github.com/jonesrussell/overheid-search/internal/domain"

var sortKeys = map[domain.SortBy]string{
	domain.SortDate:      "dt.date/sort.descending",
	domain.SortTitle:     "dt.title/sort.ascending",
	domain.SortModified:  "dt.modified/sort.descending",
	domain.SortIssued:    "dt.issued/sort.descending",
	domain.SortAvailable: "dt.available/sort.descending",
	domain.SortCreator:   "dt.creator/sort.ascending",
}

// SortKey returns the SRU sortKeys value for sortBy. Relevance ordering is
// the endpoint default, so it maps to "" and no sortKeys parameter is sent.
func SortKey(sortBy domain.SortBy) string {
	return sortKeys[sortBy]
}
