package domain

// Placeholders used when a record lacks a field.
const (
	PlaceholderTitle   = "Titel niet beschikbaar"
	PlaceholderCreator = "Onbekende organisatie"
	PlaceholderType    = "Onbekend documenttype"
	PlaceholderDate    = "Datum onbekend"
	PlaceholderUnknown = "Onbekend"
	DefaultLanguage    = "nl"
)

// Fallback document values.
const (
	FallbackTitle     = "Fout bij laden van document"
	FallbackMessage   = "Dit document kon niet correct worden verwerkt"
	FallbackIcon      = "❌"
	FallbackTypeClass = "error"
	UnknownDateClass  = "unknown-date"
)

const (
	identifierPrefix      = "record-"
	errorIdentifierPrefix = "error-record-"
)

// Document is one normalized search hit. Required fields are always
// populated; optional ones are omitted from JSON when empty.
type Document struct {
	Position   int    `json:"position"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Creator    string `json:"creator"`
	Type       string `json:"type"`
	Language   string `json:"language,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Abstract   string `json:"abstract,omitempty"`

	Date        string `json:"date,omitempty"`
	Issued      string `json:"issued,omitempty"`
	Modified    string `json:"modified,omitempty"`
	Available   string `json:"available,omitempty"`
	DisplayDate string `json:"displayDate"`

	PreferredURL   string `json:"preferredUrl,omitempty"`
	PDFURL         string `json:"pdfUrl,omitempty"`
	AlternativeURL string `json:"alternativeUrl,omitempty"`
	HasURL         bool   `json:"hasUrl"`

	OrganisationType string `json:"organisationType,omitempty"`
	PublicatieNaam   string `json:"publicatieNaam,omitempty"`
	PublicatieNummer string `json:"publicatieNummer,omitempty"`
	ProductArea      string `json:"productArea,omitempty"`
	VergaderJaar     string `json:"vergaderJaar,omitempty"`
	Dossiernummer    string `json:"dossiernummer,omitempty"`
	Ondernummer      string `json:"ondernummer,omitempty"`
	Spatial          string `json:"spatial,omitempty"`
	Temporal         string `json:"temporal,omitempty"`
	CollectionName   string `json:"collectionName,omitempty"`

	DocumentIcon   string `json:"documentIcon"`
	TypeClass      string `json:"typeClass"`
	DateClass      string `json:"dateClass"`
	IsRecent       bool   `json:"isRecent"`
	HasGeographic  bool   `json:"hasGeographic"`
	DocumentSize   string `json:"documentSize,omitempty"`
	RelevanceScore int    `json:"relevanceScore"`

	Error        bool   `json:"error,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// RecordIdentifier synthesizes an identifier for a record that has none.
func RecordIdentifier(position int) string {
	return identifierPrefix + itoa(position)
}

// FallbackDocument is the placeholder for a record that failed extraction.
func FallbackDocument(position int) Document {
	return Document{
		Position:     position,
		Identifier:   errorIdentifierPrefix + itoa(position),
		Title:        FallbackTitle,
		Creator:      PlaceholderUnknown,
		Type:         PlaceholderUnknown,
		DisplayDate:  PlaceholderUnknown,
		DocumentIcon: FallbackIcon,
		TypeClass:    FallbackTypeClass,
		DateClass:    UnknownDateClass,
		Error:        true,
		ErrorMessage: FallbackMessage,
	}
}
