package domain

import "errors"

var (
	// ErrMissingQueryOrFilters means neither free text nor any filter was given.
	ErrMissingQueryOrFilters = errors.New("missing query or filters")

	// ErrInvalidFacetFilters means the facetFilters input could not be used.
	ErrInvalidFacetFilters = errors.New("invalid facet filters")

	// ErrUnknownFacetIndex means a vocabulary was requested for an index
	// outside VocabularyIndexes.
	ErrUnknownFacetIndex = errors.New("unknown facet index")
)
