package common

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/overheid-search/internal/domain"
)

// FilterFlags are the search filter flags shared by compile and search.
type FilterFlags struct {
	Query        string
	Collection   string
	DocumentType string
	Organization string
	DateType     string
	StartDate    string
	EndDate      string
	Location     string
	SortBy       string
	FacetLimit   string
	Facets       []string
	StartRecord  int
	PageSize     int
	Page         int
}

// Register adds the filter flags to cmd.
func (f *FilterFlags) Register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.Query, "query", "q", "", "free text; quote it for a phrase search")
	flags.StringVarP(&f.Collection, "collection", "c", "", "collection (product area), e.g. officielepublicaties")
	flags.StringVarP(&f.DocumentType, "type", "t", "", "document type, e.g. Wet")
	flags.StringVarP(&f.Organization, "organization", "o", "", "creating organisation or authority")
	flags.StringVar(&f.DateType, "date-type", "", "date field for --from/--to: created, issued, available or modified")
	flags.StringVar(&f.StartDate, "from", "", "earliest date (YYYY-MM-DD)")
	flags.StringVar(&f.EndDate, "to", "", "latest date (YYYY-MM-DD)")
	flags.StringVarP(&f.Location, "location", "l", "", "place name or Dutch postcode")
	flags.StringVar(&f.SortBy, "sort", "", "relevance, date, title, modified, issued, available or creator")
	flags.StringVar(&f.FacetLimit, "facet-limit", "", "SRU facetLimit, e.g. 50:dt.type")
	flags.StringArrayVarP(&f.Facets, "facet", "f", nil, "facet filter as index=value; repeatable")
	flags.IntVar(&f.StartRecord, "start", 0, "first record (1-based)")
	flags.IntVarP(&f.PageSize, "size", "s", 0, "records per page")
	flags.IntVarP(&f.Page, "page", "p", 0, "page number; ignored when --start is set")
}

// Spec builds the FilterSpec. normalize applies the pagination bounds
// before --page is converted.
func (f *FilterFlags) Spec(normalize func(domain.FilterSpec) domain.FilterSpec) (domain.FilterSpec, error) {
	facets, err := parseFacets(f.Facets)
	if err != nil {
		return domain.FilterSpec{}, err
	}

	spec := normalize(domain.FilterSpec{
		FreeText:     f.Query,
		Collection:   f.Collection,
		DocumentType: f.DocumentType,
		Organization: f.Organization,
		DateType:     domain.ParseDateType(f.DateType),
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		Location:     f.Location,
		FacetFilters: facets,
		SortBy:       domain.ParseSortBy(f.SortBy),
		StartRecord:  f.StartRecord,
		PageSize:     f.PageSize,
		FacetLimit:   f.FacetLimit,
	})
	if f.StartRecord < 1 && f.Page > 1 {
		spec.StartRecord = domain.StartRecordForPage(f.Page, spec.PageSize)
	}
	return spec, nil
}

func parseFacets(raw []string) (map[string][]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	facets := make(map[string][]string, len(raw))
	for _, entry := range raw {
		index, value, ok := strings.Cut(entry, "=")
		index = strings.TrimSpace(index)
		if !ok || !domain.ValidFacetIndex(index) {
			return nil, fmt.Errorf("%w: expected index=value, got %q", domain.ErrInvalidFacetFilters, entry)
		}
		facets[index] = append(facets[index], value)
	}
	return facets, nil
}
