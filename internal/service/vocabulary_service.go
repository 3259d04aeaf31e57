package service

import (
	"context"
	"fmt"
	"slices"

	infralogger "github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/internal/cql"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/extract"
	"github.com/jonesrussell/overheid-search/internal/metrics"
	"github.com/jonesrussell/overheid-search/internal/sru"
)

// Vocabulary lookups ask for one record and up to this many terms.
const vocabularyTermLimit = 100

// VocabularyStore caches vocabularies. *cache.VocabularyCache implements it.
type VocabularyStore interface {
	Get(ctx context.Context, index, collection, documentType string) (*domain.Vocabulary, bool, error)
	Set(ctx context.Context, v *domain.Vocabulary) error
}

// VocabularyService looks up the term list of a facet index.
type VocabularyService struct {
	transport Transport
	store     VocabularyStore
	facets    *extract.FacetExtractor
	metrics   *metrics.Metrics
	logger    infralogger.Logger
}

// NewVocabularyService creates a VocabularyService. store and m may be nil.
func NewVocabularyService(
	transport Transport,
	store VocabularyStore,
	m *metrics.Metrics,
	log infralogger.Logger,
) *VocabularyService {
	if log == nil {
		log = infralogger.NewNop()
	}
	return &VocabularyService{
		transport: transport,
		store:     store,
		facets:    extract.NewFacetExtractor(vocabularyTermLimit, vocabularyTermLimit, log),
		metrics:   m,
		logger:    log,
	}
}

// Lookup returns the terms of index within the optional collection and
// document type. When the upstream call fails for dt.type and the
// collection has built-in types, those are returned with Fallback set.
func (s *VocabularyService) Lookup(ctx context.Context, index, collection, documentType string) (*domain.Vocabulary, error) {
	if !slices.Contains(domain.VocabularyIndexes, index) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFacetIndex, index)
	}
	if !domain.IsSet(collection) {
		collection = ""
	}
	if !domain.IsSet(documentType) {
		documentType = ""
	}

	if cached := s.cached(ctx, index, collection, documentType); cached != nil {
		return cached, nil
	}

	vocab, err := s.fetch(ctx, index, collection, documentType)
	if err != nil {
		if fallback := fallbackVocabulary(index, collection, documentType); fallback != nil {
			s.logger.Warn("Serving fallback vocabulary",
				infralogger.String("index", index),
				infralogger.String("collection", collection),
				infralogger.Error(err),
			)
			return fallback, nil
		}
		return nil, err
	}

	if s.store != nil {
		if setErr := s.store.Set(ctx, vocab); setErr != nil {
			s.logger.Warn("Failed to cache vocabulary",
				infralogger.String("index", index),
				infralogger.Error(setErr),
			)
		}
	}
	return vocab, nil
}

func (s *VocabularyService) cached(ctx context.Context, index, collection, documentType string) *domain.Vocabulary {
	if s.store == nil {
		return nil
	}
	vocab, found, err := s.store.Get(ctx, index, collection, documentType)
	switch {
	case err != nil:
		s.metrics.ObserveCache(metrics.ResultError)
		s.logger.Warn("Vocabulary cache lookup failed",
			infralogger.String("index", index),
			infralogger.Error(err),
		)
		return nil
	case !found:
		s.metrics.ObserveCache(metrics.ResultMiss)
		return nil
	default:
		s.metrics.ObserveCache(metrics.ResultHit)
		return vocab
	}
}

func (s *VocabularyService) fetch(ctx context.Context, index, collection, documentType string) (*domain.Vocabulary, error) {
	query := cql.Compile(domain.FilterSpec{Collection: collection, DocumentType: documentType})
	req := sru.Request{
		Query:          query,
		StartRecord:    1,
		MaximumRecords: 1,
		FacetLimit:     fmt.Sprintf("%d:%s", vocabularyTermLimit, index),
	}

	env, err := fetchEnvelope(ctx, s.transport, s.metrics, s.logger, operationVocabulary, req)
	if err != nil {
		return nil, err
	}

	vocab := &domain.Vocabulary{
		Index:        index,
		Collection:   collection,
		DocumentType: documentType,
		Terms:        []domain.Term{},
	}
	for _, node := range env.Facets {
		facet, ok := s.facets.Extract(node)
		if ok && facet.Index == index {
			vocab.Terms = facet.Terms
			break
		}
	}
	return vocab, nil
}

func fallbackVocabulary(index, collection, documentType string) *domain.Vocabulary {
	if index != domain.FacetDocumentType {
		return nil
	}
	terms := domain.FallbackDocumentTypes(collection)
	if terms == nil {
		return nil
	}
	return &domain.Vocabulary{
		Index:        index,
		Collection:   collection,
		DocumentType: documentType,
		Terms:        terms,
		Fallback:     true,
	}
}

