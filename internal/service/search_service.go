// Package service runs the search pipeline: compile, fetch, parse, extract
// and assemble.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	infralogger "github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/internal/config"
	"github.com/jonesrussell/overheid-search/internal/cql"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/extract"
	"github.com/jonesrussell/overheid-search/internal/metrics"
	"github.com/jonesrussell/overheid-search/internal/sru"
	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

// Upstream operation labels.
const (
	operationSearch     = "search"
	operationVocabulary = "vocabulary"
)

// bodyPreviewLength bounds the response excerpt logged on parse failures.
const bodyPreviewLength = 500

// Transport executes one searchRetrieve request. *sru.Client implements it.
type Transport interface {
	Execute(ctx context.Context, req sru.Request) ([]byte, error)
	Endpoint() string
}

// SearchService orchestrates search operations.
type SearchService struct {
	transport Transport
	documents *extract.DocumentExtractor
	facets    *extract.FacetExtractor
	config    *config.Config
	metrics   *metrics.Metrics
	logger    infralogger.Logger
	now       func() time.Time
}

// Option customizes a SearchService.
type Option func(*SearchService)

// WithClock sets the time source for timestamps and date classes.
func WithClock(now func() time.Time) Option {
	return func(s *SearchService) { s.now = now }
}

// NewSearchService creates a new search service. m may be nil.
func NewSearchService(
	transport Transport,
	cfg *config.Config,
	m *metrics.Metrics,
	log infralogger.Logger,
	opts ...Option,
) *SearchService {
	if log == nil {
		log = infralogger.NewNop()
	}
	s := &SearchService{
		transport: transport,
		config:    cfg,
		metrics:   m,
		logger:    log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.documents = extract.NewDocumentExtractor(log, extract.WithClock(s.now))
	s.facets = extract.NewFacetExtractor(cfg.Facets.MaxTerms, cfg.Facets.TopTerms, log)
	return s
}

// Normalize applies the configured pagination bounds to spec.
func (s *SearchService) Normalize(spec domain.FilterSpec) domain.FilterSpec {
	return spec.Normalize(s.config.SRU.DefaultRecords, s.config.SRU.MaxRecords)
}

// Compile compiles spec without contacting the endpoint.
func (s *SearchService) Compile(spec domain.FilterSpec) domain.CompiledQuery {
	query := cql.Compile(spec)
	return domain.CompiledQuery{
		Query:      query,
		SortKeys:   cql.SortKey(spec.SortBy),
		Complexity: cql.Complexity(query),
	}
}

// Search executes a search query.
func (s *SearchService) Search(ctx context.Context, spec domain.FilterSpec) (*domain.SearchResponse, error) {
	startTime := s.now()

	if err := spec.Validate(); err != nil {
		s.logger.Warn("Invalid search request", infralogger.Error(err))
		s.metrics.ObserveSearch(Outcome(err))
		return nil, fmt.Errorf("validation error: %w", err)
	}

	spec = s.Normalize(spec)
	compiled := s.Compile(spec)

	s.logger.Info("Executing search",
		infralogger.String("query", compiled.Query),
		infralogger.Int("start_record", spec.StartRecord),
		infralogger.Int("maximum_records", spec.PageSize),
	)

	env, err := s.fetch(ctx, operationSearch, s.request(spec, compiled))
	if err != nil {
		s.metrics.ObserveSearch(Outcome(err))
		return nil, err
	}

	response := s.assemble(spec, compiled, env)
	response.Performance.Timestamp = startTime
	response.Performance.ProcessingTime = s.now().Sub(startTime).Milliseconds()
	s.metrics.ObserveSearch(metrics.ResultOK)

	s.logger.Info("Search completed",
		infralogger.String("query", compiled.Query),
		infralogger.Int("total_records", response.TotalRecords),
		infralogger.Int("records_on_page", len(response.Records)),
		infralogger.Int64("took_ms", response.Performance.ProcessingTime),
	)

	return response, nil
}

// Raw executes the search and returns the parsed XML tree without
// extracting documents. Diagnostics stay in the tree.
func (s *SearchService) Raw(ctx context.Context, spec domain.FilterSpec) (*xmltree.Node, error) {
	spec = s.Normalize(spec)
	body, err := s.transport.Execute(ctx, s.request(spec, s.Compile(spec)))
	if err != nil {
		return nil, err
	}
	return sru.NewParser().Parse(body)
}

func (s *SearchService) request(spec domain.FilterSpec, compiled domain.CompiledQuery) sru.Request {
	facetLimit := spec.FacetLimit
	if facetLimit == "" {
		facetLimit = s.config.SRU.DefaultFacetLimit
	}
	return sru.Request{
		Query:          compiled.Query,
		StartRecord:    spec.StartRecord,
		MaximumRecords: spec.PageSize,
		FacetLimit:     facetLimit,
		SortKeys:       compiled.SortKeys,
	}
}

// fetch runs one upstream call and reads its envelope.
func (s *SearchService) fetch(ctx context.Context, operation string, req sru.Request) (*sru.Envelope, error) {
	return fetchEnvelope(ctx, s.transport, s.metrics, s.logger, operation, req)
}

func fetchEnvelope(
	ctx context.Context,
	transport Transport,
	m *metrics.Metrics,
	log infralogger.Logger,
	operation string,
	req sru.Request,
) (*sru.Envelope, error) {
	started := time.Now()
	body, err := transport.Execute(ctx, req)
	if err != nil {
		m.ObserveUpstream(operation, metrics.ResultError, time.Since(started))
		log.Error("SRU request failed",
			infralogger.String("operation", operation),
			infralogger.String("query", req.Query),
			infralogger.Error(err),
		)
		return nil, err
	}
	m.ObserveUpstream(operation, metrics.ResultOK, time.Since(started))

	env, err := sru.ReadEnvelope(body)
	if err != nil {
		var diag *sru.DiagnosticError
		if errors.As(err, &diag) {
			log.Warn("SRU diagnostic",
				infralogger.String("operation", operation),
				infralogger.String("code", diag.Code),
				infralogger.String("message", diag.Message),
				infralogger.String("details", diag.Details),
			)
			return nil, err
		}
		log.Error("Failed to parse SRU response",
			infralogger.String("operation", operation),
			infralogger.String("preview", preview(body)),
			infralogger.Error(err),
		)
		return nil, fmt.Errorf("parse sru response: %w", err)
	}
	return env, nil
}

func (s *SearchService) assemble(spec domain.FilterSpec, compiled domain.CompiledQuery, env *sru.Envelope) *domain.SearchResponse {
	records := make([]domain.Document, 0, len(env.Records))
	fallbacks := 0
	for i, record := range env.Records {
		doc, ok := s.documents.Extract(record, spec.StartRecord+i)
		if !ok {
			fallbacks++
		}
		records = append(records, doc)
	}
	s.metrics.ObserveRecords(len(records)-fallbacks, fallbacks)

	facets := make([]domain.Facet, 0, len(env.Facets))
	for _, node := range env.Facets {
		if facet, ok := s.facets.Extract(node); ok {
			facets = append(facets, facet)
		}
	}
	s.metrics.ObserveFacetsDropped(len(env.Facets) - len(facets))

	return Assemble(AssembleInput{
		TotalRecords: env.NumberOfRecords,
		StartRecord:  spec.StartRecord,
		PageSize:     spec.PageSize,
		Records:      records,
		Facets:       facets,
		Compiled:     compiled,
		Endpoint:     s.transport.Endpoint(),
	})
}

func preview(body []byte) string {
	if len(body) > bodyPreviewLength {
		body = body[:bodyPreviewLength]
	}
	return string(body)
}
