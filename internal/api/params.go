package api

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/overheid-search/internal/domain"
)

// searchRequest carries the raw search parameters of GET query strings and
// POST bodies alike.
type searchRequest struct {
	Query          string              `json:"query"`
	StartRecord    int                 `json:"startRecord"`
	MaximumRecords int                 `json:"maximumRecords"`
	Page           int                 `json:"page"`
	FacetLimit     string              `json:"facetLimit"`
	Collection     string              `json:"collection"`
	DocumentType   string              `json:"documentType"`
	Organization   string              `json:"organization"`
	SortBy         string              `json:"sortBy"`
	StartDate      string              `json:"startDate"`
	EndDate        string              `json:"endDate"`
	DateType       string              `json:"dateType"`
	Location       string              `json:"location"`
	FacetFilters   map[string][]string `json:"facetFilters"`
}

// parseQueryParams reads a searchRequest from the query string. Numbers
// that do not parse are treated as absent.
func parseQueryParams(c *gin.Context) (searchRequest, error) {
	req := searchRequest{
		Query:          c.Query("query"),
		StartRecord:    queryInt(c, "startRecord"),
		MaximumRecords: queryInt(c, "maximumRecords"),
		Page:           queryInt(c, "page"),
		FacetLimit:     c.Query("facetLimit"),
		Collection:     c.Query("collection"),
		DocumentType:   c.Query("documentType"),
		Organization:   c.Query("organization"),
		SortBy:         c.Query("sortBy"),
		StartDate:      c.Query("startDate"),
		EndDate:        c.Query("endDate"),
		DateType:       c.Query("dateType"),
		Location:       c.Query("location"),
	}

	if raw := c.Query("facetFilters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.FacetFilters); err != nil {
			return searchRequest{}, fmt.Errorf("%w: %w", domain.ErrInvalidFacetFilters, err)
		}
	}
	return req, nil
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// filterSpec builds the FilterSpec. normalize applies the pagination
// bounds; page is converted to startRecord afterwards so it uses the
// bounded page size.
func (r searchRequest) filterSpec(normalize func(domain.FilterSpec) domain.FilterSpec) (domain.FilterSpec, error) {
	for index := range r.FacetFilters {
		if !domain.ValidFacetIndex(index) {
			return domain.FilterSpec{}, fmt.Errorf("%w: invalid facet index %q", domain.ErrInvalidFacetFilters, index)
		}
	}

	spec := normalize(domain.FilterSpec{
		FreeText:     r.Query,
		Collection:   r.Collection,
		DocumentType: r.DocumentType,
		Organization: r.Organization,
		DateType:     domain.ParseDateType(r.DateType),
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Location:     r.Location,
		FacetFilters: r.FacetFilters,
		SortBy:       domain.ParseSortBy(r.SortBy),
		StartRecord:  r.StartRecord,
		PageSize:     r.MaximumRecords,
		FacetLimit:   r.FacetLimit,
	})
	if r.StartRecord < 1 && r.Page > 1 {
		spec.StartRecord = domain.StartRecordForPage(r.Page, spec.PageSize)
	}
	return spec, nil
}
