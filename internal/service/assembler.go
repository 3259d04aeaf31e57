package service

import "github.com/jonesrussell/overheid-search/internal/domain"

// AssembleInput carries everything one response is built from.
type AssembleInput struct {
	TotalRecords int
	StartRecord  int
	PageSize     int
	Records      []domain.Document
	Facets       []domain.Facet
	Compiled     domain.CompiledQuery
	Endpoint     string
}

// Assemble builds the SearchResponse. Timestamp and ProcessingTime are left
// for the caller, which owns the clock.
func Assemble(in AssembleInput) *domain.SearchResponse {
	records := in.Records
	if records == nil {
		records = []domain.Document{}
	}
	facets := in.Facets
	if facets == nil {
		facets = []domain.Facet{}
	}

	return &domain.SearchResponse{
		Records:      records,
		TotalRecords: in.TotalRecords,
		Facets:       facets,
		Query:        in.Compiled.Query,
		SearchInfo:   NewSearchInfo(in.TotalRecords, in.StartRecord, in.PageSize, len(records)),
		Performance: domain.Performance{
			ResultsFound:    len(records),
			QueryComplexity: in.Compiled.Complexity,
		},
		APIInfo: domain.APIInfo{
			SRUVersion:    domain.SRUVersion,
			Endpoint:      in.Endpoint,
			Documentation: domain.SRUDocumentation,
		},
	}
}

// NewSearchInfo computes the pagination block:
//
//	totalPages  = ceil(total / pageSize)
//	currentPage = ceil(startRecord / pageSize)
//	hasMore     = total > startRecord + returned - 1
func NewSearchInfo(total, startRecord, pageSize, returned int) domain.SearchInfo {
	info := domain.SearchInfo{
		StartRecord:    startRecord,
		MaximumRecords: pageSize,
		HasMore:        total-returned >= startRecord,
		RecordsOnPage:  returned,
	}
	if pageSize > 0 {
		info.TotalPages = ceilDiv(total, pageSize)
		info.CurrentPage = ceilDiv(startRecord, pageSize)
	}
	return info
}

// ceilDiv rounds a/b up for a >= 0 and b > 0 without overflowing.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
