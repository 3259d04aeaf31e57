package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/service"
)

func TestNewSearchInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                             string
		total, start, pageSize, returned int
		wantPages, wantCurrent           int
		wantMore                         bool
	}{
		{name: "first page of 105", total: 105, start: 1, pageSize: 20, returned: 20, wantPages: 6, wantCurrent: 1, wantMore: true},
		{name: "third page", total: 105, start: 41, pageSize: 20, returned: 20, wantPages: 6, wantCurrent: 3, wantMore: true},
		{name: "last partial page", total: 105, start: 101, pageSize: 20, returned: 5, wantPages: 6, wantCurrent: 6},
		{name: "exact fit", total: 40, start: 21, pageSize: 20, returned: 20, wantPages: 2, wantCurrent: 2},
		{name: "no results", total: 0, start: 1, pageSize: 20, returned: 0, wantPages: 0, wantCurrent: 1},
		{name: "unaligned start", total: 50, start: 15, pageSize: 10, returned: 10, wantPages: 5, wantCurrent: 2, wantMore: true},
		{name: "maximal start record", total: 10, start: math.MaxInt, pageSize: 20, returned: 0, wantPages: 1, wantCurrent: math.MaxInt/20 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := service.NewSearchInfo(tt.total, tt.start, tt.pageSize, tt.returned)
			assert.Equal(t, tt.wantPages, got.TotalPages, "totalPages")
			assert.Equal(t, tt.wantCurrent, got.CurrentPage, "currentPage")
			assert.Equal(t, tt.wantMore, got.HasMore, "hasMore")
			assert.Equal(t, tt.returned, got.RecordsOnPage)
		})
	}
}

func TestAssemble_EmptyListsRenderAsArrays(t *testing.T) {
	t.Parallel()

	resp := service.Assemble(service.AssembleInput{
		StartRecord: 1,
		PageSize:    20,
		Compiled:    domain.CompiledQuery{Query: "cql.allRecords=1", Complexity: 2},
		Endpoint:    testEndpoint,
	})

	assert.NotNil(t, resp.Records)
	assert.NotNil(t, resp.Facets)
	assert.Equal(t, "cql.allRecords=1", resp.Query)
	assert.Equal(t, 2, resp.Performance.QueryComplexity)
	assert.Equal(t, testEndpoint, resp.APIInfo.Endpoint)
	assert.False(t, resp.SearchInfo.HasMore)
}

func TestAssemble_ResultsFoundCountsPageRecords(t *testing.T) {
	t.Parallel()

	resp := service.Assemble(service.AssembleInput{
		TotalRecords: 105,
		StartRecord:  101,
		PageSize:     20,
		Records:      make([]domain.Document, 5),
	})

	assert.Equal(t, 5, resp.Performance.ResultsFound)
	assert.Equal(t, 105, resp.TotalRecords)
}
