package domain

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// DateType selects which date field a date range filter compares against.
type DateType string

// Date types.
const (
	DateTypeCreated   DateType = "created"
	DateTypeIssued    DateType = "issued"
	DateTypeAvailable DateType = "available"
	DateTypeModified  DateType = "modified"
)

// ParseDateType maps raw input to a DateType, defaulting to created.
func ParseDateType(raw string) DateType {
	switch dt := DateType(strings.ToLower(strings.TrimSpace(raw))); dt {
	case DateTypeIssued, DateTypeAvailable, DateTypeModified:
		return dt
	default:
		return DateTypeCreated
	}
}

// SortBy is the requested result ordering.
type SortBy string

// Sort orders.
const (
	SortRelevance SortBy = "relevance"
	SortDate      SortBy = "date"
	SortTitle     SortBy = "title"
	SortModified  SortBy = "modified"
	SortIssued    SortBy = "issued"
	SortAvailable SortBy = "available"
	SortCreator   SortBy = "creator"
)

// ParseSortBy maps raw input to a SortBy. Unknown values sort by relevance.
func ParseSortBy(raw string) SortBy {
	switch sb := SortBy(strings.ToLower(strings.TrimSpace(raw))); sb {
	case SortDate, SortTitle, SortModified, SortIssued, SortAvailable, SortCreator:
		return sb
	default:
		return SortRelevance
	}
}

// AllSentinel is the UI's "no restriction" value for select filters.
const AllSentinel = "all"

// MaxStartRecord caps StartRecord so pagination arithmetic cannot overflow.
const MaxStartRecord = 1<<31 - 1

var facetIndexPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// ValidFacetIndex reports whether index is safe to interpolate into CQL.
func ValidFacetIndex(index string) bool {
	return facetIndexPattern.MatchString(index)
}

// FilterSpec is the caller's search intent for one request. Build it once
// and treat it as read-only afterwards.
type FilterSpec struct {
	FreeText     string              `json:"query,omitempty"`
	Collection   string              `json:"collection,omitempty"`
	DocumentType string              `json:"documentType,omitempty"`
	Organization string              `json:"organization,omitempty"`
	DateType     DateType            `json:"dateType,omitempty"`
	StartDate    string              `json:"startDate,omitempty"`
	EndDate      string              `json:"endDate,omitempty"`
	Location     string              `json:"location,omitempty"`
	FacetFilters map[string][]string `json:"facetFilters,omitempty"`
	SortBy       SortBy              `json:"sortBy,omitempty"`

	// StartRecord is 1-based.
	StartRecord int    `json:"startRecord"`
	PageSize    int    `json:"maximumRecords"`
	FacetLimit  string `json:"facetLimit,omitempty"`
}

// HasFilters reports whether any structured filter carries a value. The
// "all" sentinel counts as a value here; the compiler skips it later.
func (f FilterSpec) HasFilters() bool {
	if f.Collection != "" || f.DocumentType != "" || f.Organization != "" ||
		f.StartDate != "" || f.EndDate != "" || f.Location != "" {
		return true
	}
	for _, values := range f.FacetFilters {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// Validate checks the filters before any upstream call is made.
func (f FilterSpec) Validate() error {
	if strings.TrimSpace(f.FreeText) == "" && !f.HasFilters() {
		return ErrMissingQueryOrFilters
	}
	for index := range f.FacetFilters {
		if !ValidFacetIndex(index) {
			return fmt.Errorf("%w: invalid facet index %q", ErrInvalidFacetFilters, index)
		}
	}
	return nil
}

// FacetIndexes returns the facet filter indexes in sorted order.
func (f FilterSpec) FacetIndexes() []string {
	return slices.Sorted(maps.Keys(f.FacetFilters))
}

// IsSet reports whether a select-style filter value restricts results.
func IsSet(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && v != AllSentinel
}

// Normalize returns a copy with the pagination window clamped: a missing
// or non-positive page size takes defaultPageSize, a larger one is capped
// at maxPageSize, and StartRecord lies within [1, MaxStartRecord].
func (f FilterSpec) Normalize(defaultPageSize, maxPageSize int) FilterSpec {
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if maxPageSize > 0 && f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	f.StartRecord = min(max(f.StartRecord, 1), MaxStartRecord)
	if f.DateType == "" {
		f.DateType = DateTypeCreated
	}
	if f.SortBy == "" {
		f.SortBy = SortRelevance
	}
	return f
}

// StartRecordForPage returns the first record of a 1-based page, capped at
// MaxStartRecord.
func StartRecordForPage(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 1
	}
	if page-1 > (MaxStartRecord-1)/pageSize {
		return MaxStartRecord
	}
	return (page-1)*pageSize + 1
}

func itoa(n int) string { return strconv.Itoa(n) }
