// Package api exposes the search pipeline over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	infralogger "github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/service"
)

// Handler holds HTTP request handlers.
type Handler struct {
	searchService     *service.SearchService
	vocabularyService *service.VocabularyService
}

// NewHandler creates a new handler instance.
func NewHandler(searchService *service.SearchService, vocabularyService *service.VocabularyService) *Handler {
	return &Handler{
		searchService:     searchService,
		vocabularyService: vocabularyService,
	}
}

// Search handles search requests (both GET and POST).
func (h *Handler) Search(c *gin.Context) {
	spec, ok := h.bindSpec(c)
	if !ok {
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), spec)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Compile returns the CQL query for the request without running it.
func (h *Handler) Compile(c *gin.Context) {
	spec, ok := h.bindSpec(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.searchService.Compile(spec))
}

// Vocabulary returns the terms of one facet index.
func (h *Handler) Vocabulary(c *gin.Context) {
	vocab, err := h.vocabularyService.Lookup(
		c.Request.Context(),
		c.Param("index"),
		c.Query("collection"),
		c.Query("documentType"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vocab)
}

// Collections lists the known product areas.
func (h *Handler) Collections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"collections": domain.Collections})
}

// bindSpec reads the FilterSpec from the query string or JSON body and
// writes the error response itself when that fails.
func (h *Handler) bindSpec(c *gin.Context) (domain.FilterSpec, bool) {
	log := infralogger.FromContext(c.Request.Context())

	var req searchRequest
	if c.Request.Method == http.MethodGet {
		parsed, err := parseQueryParams(c)
		if err != nil {
			log.Warn("Invalid facet filters", infralogger.Error(err))
			respondError(c, err)
			return domain.FilterSpec{}, false
		}
		req = parsed
	} else if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid search request body", infralogger.Error(err))
		writeError(c, apiError{
			Status:  http.StatusBadRequest,
			Title:   titleBadRequest,
			Code:    CodeInvalidRequest,
			Message: "De zoekopdracht kon niet worden gelezen.",
		})
		return domain.FilterSpec{}, false
	}

	spec, err := req.filterSpec(h.searchService.Normalize)
	if err != nil {
		log.Warn("Invalid facet filters", infralogger.Error(err))
		respondError(c, err)
		return domain.FilterSpec{}, false
	}
	return spec, true
}
