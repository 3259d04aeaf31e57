package service_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infralogger "github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/internal/config"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/metrics"
	"github.com/jonesrussell/overheid-search/internal/service"
	"github.com/jonesrussell/overheid-search/internal/sru"
	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

const testEndpoint = "https://sru.test/sru"

var fixedNow = time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)

type fakeTransport struct {
	mu       sync.Mutex
	body     []byte
	err      error
	requests []sru.Request
}

func (f *fakeTransport) Execute(_ context.Context, req sru.Request) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.body, f.err
}

func (f *fakeTransport) Endpoint() string { return testEndpoint }

func (f *fakeTransport) lastRequest(t *testing.T) sru.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../sru/testdata/" + name)
	require.NoError(t, err)
	return data
}

func newSearchService(transport service.Transport, m *metrics.Metrics) *service.SearchService {
	return service.NewSearchService(transport, config.Default(), m, infralogger.NewNop(),
		service.WithClock(func() time.Time { return fixedNow }))
}

func TestSearchService_Search_AssemblesFixture(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{body: fixture(t, "searchretrieve.xml")}
	m := metrics.NewMetrics(prometheus.NewRegistry())
	svc := newSearchService(transport, m)

	resp, err := svc.Search(t.Context(), domain.FilterSpec{
		FreeText:    "gemeentewet",
		SortBy:      domain.SortDate,
		StartRecord: 41,
		PageSize:    20,
	})
	require.NoError(t, err)

	assert.Equal(t, 105, resp.TotalRecords)
	assert.Equal(t, `cql.textAndIndexes="gemeentewet"`, resp.Query)
	assert.Equal(t, domain.SearchInfo{
		StartRecord:    41,
		MaximumRecords: 20,
		HasMore:        true,
		TotalPages:     6,
		CurrentPage:    3,
		RecordsOnPage:  3,
	}, resp.SearchInfo)

	require.Len(t, resp.Records, 3)
	assert.Equal(t, 41, resp.Records[0].Position)
	assert.Equal(t, "stb-2024-1", resp.Records[0].Identifier)
	assert.False(t, resp.Records[1].Error)
	assert.True(t, resp.Records[2].Error)
	assert.Equal(t, "error-record-43", resp.Records[2].Identifier)

	require.Len(t, resp.Facets, 2)
	assert.Equal(t, domain.FacetDocumentType, resp.Facets[0].Index)
	assert.Equal(t, domain.FacetOrganisationType, resp.Facets[1].Index)

	assert.Equal(t, fixedNow, resp.Performance.Timestamp)
	assert.Equal(t, 3, resp.Performance.ResultsFound)
	assert.Positive(t, resp.Performance.QueryComplexity)
	assert.Equal(t, domain.APIInfo{
		SRUVersion:    "2.0",
		Endpoint:      testEndpoint,
		Documentation: domain.SRUDocumentation,
	}, resp.APIInfo)

	req := transport.lastRequest(t)
	assert.Equal(t, 41, req.StartRecord)
	assert.Equal(t, 20, req.MaximumRecords)
	assert.Equal(t, "dt.date/sort.descending", req.SortKeys)
	assert.Equal(t, sru.DefaultFacetLimit, req.FacetLimit)

	assert.InDelta(t, 1, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(metrics.ResultOK)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.RecordsExtractedTotal.WithLabelValues(metrics.ResultOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RecordsExtractedTotal.WithLabelValues(metrics.ResultFallback)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.FacetsDroppedTotal), 0)
}

func TestSearchService_Search_NormalizesPagination(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{body: fixture(t, "searchretrieve.xml")}
	svc := newSearchService(transport, nil)

	resp, err := svc.Search(t.Context(), domain.FilterSpec{Collection: "sgd", PageSize: 1000, FacetLimit: "10:dt.type"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.SearchInfo.StartRecord)
	assert.Equal(t, 100, resp.SearchInfo.MaximumRecords)
	assert.Equal(t, 2, resp.SearchInfo.TotalPages)

	req := transport.lastRequest(t)
	assert.Equal(t, `c.product-area=="sgd"`, req.Query)
	assert.Equal(t, 100, req.MaximumRecords)
	assert.Equal(t, "10:dt.type", req.FacetLimit)
	assert.Empty(t, req.SortKeys)
}

func TestSearchService_Search_RejectsEmptyRequest(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	m := metrics.NewMetrics(prometheus.NewRegistry())
	svc := newSearchService(transport, m)

	_, err := svc.Search(t.Context(), domain.FilterSpec{FreeText: "  "})
	require.ErrorIs(t, err, domain.ErrMissingQueryOrFilters)
	assert.Empty(t, transport.requests)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(service.OutcomeValidation)), 0)
}

func TestSearchService_Search_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		transport   *fakeTransport
		check       func(t *testing.T, err error)
		wantOutcome string
	}{
		{
			name:      "diagnostic",
			transport: &fakeTransport{body: fixture(t, "diagnostic.xml")},
			check: func(t *testing.T, err error) {
				var diag *sru.DiagnosticError
				require.ErrorAs(t, err, &diag)
				assert.Equal(t, "info:srw/diagnostic/1/10", diag.Code)
			},
			wantOutcome: service.OutcomeDiagnostic,
		},
		{
			name:      "malformed xml",
			transport: &fakeTransport{body: []byte("<sru:searchRetrieveResponse><sru:numberOfRecords>")},
			check: func(t *testing.T, err error) {
				var parseErr *xmltree.ParseError
				require.ErrorAs(t, err, &parseErr)
			},
			wantOutcome: service.OutcomeParse,
		},
		{
			name:      "timeout",
			transport: &fakeTransport{err: sru.ErrTimeout},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, sru.ErrTimeout)
			},
			wantOutcome: service.OutcomeTimeout,
		},
		{
			name:      "unreachable",
			transport: &fakeTransport{err: sru.ErrUnreachable},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, sru.ErrUnreachable)
			},
			wantOutcome: service.OutcomeUnreachable,
		},
		{
			name:      "other",
			transport: &fakeTransport{err: errors.New("boom")},
			check: func(t *testing.T, err error) {
				require.EqualError(t, err, "boom")
			},
			wantOutcome: service.OutcomeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := metrics.NewMetrics(prometheus.NewRegistry())
			_, err := newSearchService(tt.transport, m).Search(t.Context(), domain.FilterSpec{FreeText: "wet"})
			tt.check(t, err)
			assert.Equal(t, tt.wantOutcome, service.Outcome(err))
			assert.InDelta(t, 1, testutil.ToFloat64(m.SearchesTotal.WithLabelValues(tt.wantOutcome)), 0)
		})
	}
}

func TestSearchService_Compile(t *testing.T) {
	t.Parallel()

	svc := newSearchService(&fakeTransport{}, nil)

	got := svc.Compile(domain.FilterSpec{
		FreeText:   "grondwet",
		Collection: "officielepublicaties",
		StartDate:  "2020-01-01",
		SortBy:     domain.SortTitle,
	})
	assert.Equal(t,
		`c.product-area=="officielepublicaties" AND (cql.textAndIndexes="grondwet") AND dt.date>="2020-01-01"`,
		got.Query)
	assert.Equal(t, "dt.title/sort.ascending", got.SortKeys)
	assert.Positive(t, got.Complexity)

	empty := svc.Compile(domain.FilterSpec{})
	assert.Equal(t, "cql.allRecords=1", empty.Query)
	assert.Empty(t, empty.SortKeys)
}

func TestSearchService_Raw(t *testing.T) {
	t.Parallel()

	svc := newSearchService(&fakeTransport{body: fixture(t, "diagnostic.xml")}, nil)

	root, err := svc.Raw(t.Context(), domain.FilterSpec{FreeText: "wet"})
	require.NoError(t, err)
	assert.Equal(t, sru.ElemResponse, root.Name)
	assert.NotNil(t, root.Child(sru.ElemDiagnostics))
}
