package service

import (
	"errors"

	infraerrors "github.com/jonesrussell/overheid-search/infrastructure/errors"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/sru"
	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

// Search outcome labels for failed requests.
const (
	OutcomeValidation  = "validation"
	OutcomeDiagnostic  = "diagnostic"
	OutcomeParse       = "parse"
	OutcomeTimeout     = "timeout"
	OutcomeUnreachable = "unreachable"
	OutcomeUpstream    = "upstream"
	OutcomeUnknown     = "unknown"
)

// Outcome classifies a pipeline error for metrics.
func Outcome(err error) string {
	var (
		diag     *sru.DiagnosticError
		parseErr *xmltree.ParseError
		httpErr  *infraerrors.HTTPError
	)
	switch {
	case errors.Is(err, domain.ErrMissingQueryOrFilters), errors.Is(err, domain.ErrInvalidFacetFilters):
		return OutcomeValidation
	case errors.As(err, &diag):
		return OutcomeDiagnostic
	case errors.As(err, &parseErr):
		return OutcomeParse
	case errors.Is(err, sru.ErrTimeout):
		return OutcomeTimeout
	case errors.Is(err, sru.ErrUnreachable):
		return OutcomeUnreachable
	case errors.As(err, &httpErr), errors.Is(err, sru.ErrResponseTooLarge):
		return OutcomeUpstream
	default:
		return OutcomeUnknown
	}
}
