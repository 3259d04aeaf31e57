package extract

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

// Facet extraction limits.
const (
	DefaultMaxTerms = 50
	DefaultTopTerms = 10
)

var facetDisplayNames = map[string]string{
	domain.FacetDocumentType:     "Documenttype",
	domain.FacetOrganisationType: "Type Organisatie",
	domain.FacetProductArea:      "Collectie",
	domain.FacetCreator:          "Organisatie",
	domain.FacetLanguage:         "Taal",
	domain.FacetPublicationName:  "Publicatie",
}

var facetIcons = map[string]string{
	domain.FacetDocumentType:     "📋",
	domain.FacetOrganisationType: "🏢",
	domain.FacetProductArea:      "📚",
	domain.FacetCreator:          "👥",
	domain.FacetLanguage:         "🌐",
	domain.FacetPublicationName:  "📰",
}

var organisationTypeNames = map[string]string{
	"ministerie": "Ministerie",
	"gemeente":   "Gemeente",
	"provincie":  "Provincie",
	"waterschap": "Waterschap",
	"zbo":        "Zelfstandig Bestuursorgaan",
}

// FacetDisplayName returns the Dutch label of a facet index, or the index.
func FacetDisplayName(index string) string {
	if name, ok := facetDisplayNames[index]; ok {
		return name
	}
	return index
}

// FacetExtractor builds Facets from facet:facet elements.
type FacetExtractor struct {
	maxTerms int
	topTerms int
	log      logger.Logger
}

// NewFacetExtractor creates a FacetExtractor. Non-positive limits take the
// defaults.
func NewFacetExtractor(maxTerms, topTerms int, log logger.Logger) *FacetExtractor {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	if topTerms <= 0 {
		topTerms = DefaultTopTerms
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &FacetExtractor{maxTerms: maxTerms, topTerms: topTerms, log: log}
}

// Extract returns the facet, or ok=false when it has no index, no usable
// terms, or could not be read.
func (e *FacetExtractor) Extract(node *xmltree.Node) (facet domain.Facet, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("Facet extraction failed", logger.Error(fmt.Errorf("panic: %v", r)))
			facet, ok = domain.Facet{}, false
		}
	}()

	index := OptionalText(node.Child("facet:index"))
	if index == "" {
		return domain.Facet{}, false
	}

	raw := node.Path("facet:terms").All("facet:term")
	terms := e.Terms(index, raw)
	if len(terms) == 0 {
		e.log.Debug("Facet dropped without terms", logger.String("index", index))
		return domain.Facet{}, false
	}

	expanded := index == domain.FacetDocumentType || index == domain.FacetProductArea
	return domain.Facet{
		Index:       index,
		DisplayName: FacetDisplayName(index),
		Icon:        facetIcon(index),
		Expanded:    expanded,
		Terms:       terms,
		TotalTerms:  len(raw),
		TopTerms:    slices.Clone(terms[:min(e.topTerms, len(terms))]),
	}, true
}

// Terms filters, ranks, truncates and weighs the raw term elements of one
// facet. Percentages are relative to the retained terms only.
func (e *FacetExtractor) Terms(index string, raw []*xmltree.Node) []domain.Term {
	titler := cases.Title(language.Dutch)

	terms := make([]domain.Term, 0, len(raw))
	for _, t := range raw {
		actual := OptionalText(t.Child("facet:actualTerm"))
		count, err := strconv.Atoi(strings.TrimSpace(OptionalText(t.Child("facet:count"))))
		if actual == "" || err != nil || count <= 0 {
			continue
		}
		terms = append(terms, domain.Term{
			ActualTerm:  actual,
			Query:       OptionalText(t.Child("facet:query")),
			Count:       count,
			DisplayName: termDisplayName(index, actual, titler),
		})
	}

	slices.SortStableFunc(terms, func(a, b domain.Term) int { return b.Count - a.Count })
	terms = terms[:min(e.maxTerms, len(terms))]

	total := 0
	for _, t := range terms {
		total += t.Count
	}
	for i := range terms {
		if total > 0 {
			terms[i].Percentage = int(math.Round(float64(terms[i].Count) / float64(total) * 100))
		}
	}
	return terms
}

func termDisplayName(index, term string, titler cases.Caser) string {
	if index != domain.FacetOrganisationType {
		return term
	}
	if name, ok := organisationTypeNames[strings.ToLower(term)]; ok {
		return name
	}
	return titler.String(term)
}

func facetIcon(index string) string {
	if icon, ok := facetIcons[index]; ok {
		return icon
	}
	return "🔍"
}
