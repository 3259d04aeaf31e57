package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	infraerrors "github.com/jonesrussell/overheid-search/infrastructure/errors"
	infragin "github.com/jonesrussell/overheid-search/infrastructure/gin"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/sru"
	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

// Error codes returned in ErrorResponse.Code. Upstream diagnostics use the
// diagnostic's own code instead.
const (
	CodeMissingQueryOrFilters = "MISSING_QUERY_OR_FILTERS"
	CodeFilterError           = "FILTER_ERROR"
	CodeXMLParseError         = "XML_PARSE_ERROR"
	CodeTimeout               = "TIMEOUT"
	CodeConnectionError       = "CONNECTION_ERROR"
	CodeAPIError              = "API_ERROR"
	CodeUnknownError          = "UNKNOWN_ERROR"
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUnknownFacetIndex     = "UNKNOWN_FACET_INDEX"
)

const (
	titleMissingQuery = "Query or filters required"
	titleDiagnostic   = "API Error"
	titleParse        = "Failed to parse API response"
	titleSearchFailed = "Search failed"
	titleBadRequest   = "Invalid request"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId,omitempty"`
}

// apiError is the HTTP rendering of a pipeline error.
type apiError struct {
	Status  int
	Title   string
	Code    string
	Message string
}

var (
	errTimeout = apiError{
		Status: http.StatusGatewayTimeout, Title: titleSearchFailed, Code: CodeTimeout,
		Message: "De zoekopdracht duurde te lang. Probeer het opnieuw.",
	}
	errConnection = apiError{
		Status: http.StatusBadGateway, Title: titleSearchFailed, Code: CodeConnectionError,
		Message: "Kan geen verbinding maken met de overheids-API. Controleer uw internetverbinding.",
	}
	errUpstream = apiError{
		Status: http.StatusBadGateway, Title: titleSearchFailed, Code: CodeAPIError,
		Message: "De overheids-API gaf een foutmelding. Probeer het later opnieuw.",
	}
	errFilter = apiError{
		Status: http.StatusBadRequest, Title: titleSearchFailed, Code: CodeFilterError,
		Message: "Fout bij het verwerken van facet filters. Controleer uw invoer.",
	}
	errUnknown = apiError{
		Status: http.StatusInternalServerError, Title: titleSearchFailed, Code: CodeUnknownError,
		Message: "Er is een onbekende fout opgetreden.",
	}
)

// classifyError maps err onto status, code and Dutch message.
func classifyError(err error) apiError {
	var (
		diag     *sru.DiagnosticError
		parseErr *xmltree.ParseError
		httpErr  *infraerrors.HTTPError
	)

	switch {
	case errors.Is(err, domain.ErrMissingQueryOrFilters):
		return apiError{
			Status:  http.StatusBadRequest,
			Title:   titleMissingQuery,
			Code:    CodeMissingQueryOrFilters,
			Message: "Voer een zoekterm in OF selecteer minimaal één filter om te zoeken.",
		}
	case errors.Is(err, domain.ErrInvalidFacetFilters):
		return errFilter
	case errors.Is(err, domain.ErrUnknownFacetIndex):
		return apiError{
			Status:  http.StatusBadRequest,
			Title:   titleBadRequest,
			Code:    CodeUnknownFacetIndex,
			Message: "Deze facet kan niet worden opgevraagd.",
		}
	case errors.As(err, &diag):
		return apiError{
			Status:  http.StatusBadRequest,
			Title:   titleDiagnostic,
			Code:    diag.Code,
			Message: "API fout: " + diag.Message,
		}
	case errors.As(err, &parseErr):
		return apiError{
			Status:  http.StatusInternalServerError,
			Title:   titleParse,
			Code:    CodeXMLParseError,
			Message: "Er ging iets mis bij het verwerken van de zoekresultaten.",
		}
	case errors.Is(err, sru.ErrTimeout):
		return errTimeout
	case errors.Is(err, sru.ErrUnreachable):
		return errConnection
	case errors.As(err, &httpErr), errors.Is(err, sru.ErrResponseTooLarge):
		return errUpstream
	default:
		return errUnknown
	}
}

// respondError writes the ErrorResponse for err.
func respondError(c *gin.Context, err error) {
	writeError(c, classifyError(err))
}

func writeError(c *gin.Context, e apiError) {
	c.JSON(e.Status, ErrorResponse{
		Error:     e.Title,
		Message:   e.Message,
		Code:      e.Code,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString(infragin.RequestIDKey),
	})
}
