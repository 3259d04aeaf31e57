package domain

// Facet is a categorical breakdown of the result set for one index.
type Facet struct {
	Index       string `json:"index"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
	Expanded    bool   `json:"expanded"`
	// Terms are sorted by descending count.
	Terms []Term `json:"terms"`
	// TotalTerms counts the terms upstream returned, before filtering.
	TotalTerms int    `json:"totalTerms"`
	TopTerms   []Term `json:"topTerms"`
}

// Term is one value of a facet. Percentage is relative to the summed
// counts of the retained terms of the same facet.
type Term struct {
	ActualTerm  string `json:"actualTerm"`
	Query       string `json:"query,omitempty"`
	Count       int    `json:"count"`
	Percentage  int    `json:"percentage"`
	DisplayName string `json:"displayName"`
}

// Facet indexes known to the SRU endpoint.
const (
	FacetDocumentType     = "dt.type"
	FacetOrganisationType = "w.organisatietype"
	FacetProductArea      = "c.product-area"
	FacetCreator          = "dt.creator"
	FacetLanguage         = "dt.language"
	FacetPublicationName  = "w.publicatienaam"
)

// VocabularyIndexes are the indexes whose term lists may be looked up.
var VocabularyIndexes = []string{
	FacetDocumentType,
	FacetCreator,
	FacetOrganisationType,
	FacetLanguage,
	FacetPublicationName,
	FacetProductArea,
}

// Vocabulary is the term list of one facet index, optionally scoped to a
// collection and document type.
type Vocabulary struct {
	Index        string `json:"index"`
	Collection   string `json:"collection,omitempty"`
	DocumentType string `json:"documentType,omitempty"`
	Terms        []Term `json:"terms"`
	// Fallback is set when Terms come from the built-in list because the
	// upstream lookup failed.
	Fallback bool `json:"fallback,omitempty"`
}
