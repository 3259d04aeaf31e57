package extract

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

// Metadata blocks inside sru:recordData.
const (
	elemRecordData   = "sru:recordData"
	elemGZD          = "gzd:gzd"
	elemOriginalData = "gzd:originalData"
	elemEnrichedData = "gzd:enrichedData"
	elemMeta         = "overheidwetgeving:meta"
	elemKern         = "overheidwetgeving:owmskern"
	elemMantel       = "overheidwetgeving:owmsmantel"
	elemTPMeta       = "overheidwetgeving:tpmeta"
	elemDiagnostic   = "diag:diagnostic"
)

// ErrSurrogateDiagnostic marks a record replaced by a diagnostic upstream.
var ErrSurrogateDiagnostic = errors.New("record is a surrogate diagnostic")

// DocumentExtractor builds Documents from sru:record elements.
type DocumentExtractor struct {
	now func() time.Time
	log logger.Logger
}

// DocumentOption customizes a DocumentExtractor.
type DocumentOption func(*DocumentExtractor)

// WithClock sets the reference time for date classes.
func WithClock(now func() time.Time) DocumentOption {
	return func(e *DocumentExtractor) { e.now = now }
}

// NewDocumentExtractor creates a DocumentExtractor.
func NewDocumentExtractor(log logger.Logger, opts ...DocumentOption) *DocumentExtractor {
	if log == nil {
		log = logger.NewNop()
	}
	e := &DocumentExtractor{now: time.Now, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the Document for record at the given 1-based position.
// It never fails: when the record is a diagnostic or extraction panics, the
// fallback document is returned with ok set to false.
func (e *DocumentExtractor) Extract(record *xmltree.Node, position int) (doc domain.Document, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("Record extraction failed",
				logger.Int("position", position),
				logger.Error(fmt.Errorf("panic: %v", r)),
			)
			doc, ok = domain.FallbackDocument(position), false
		}
	}()

	d, err := e.extract(record, position)
	if err != nil {
		e.log.Warn("Record replaced by fallback",
			logger.Int("position", position),
			logger.Error(err),
		)
		return domain.FallbackDocument(position), false
	}
	return d, true
}

func (e *DocumentExtractor) extract(record *xmltree.Node, position int) (domain.Document, error) {
	recordData := record.Child(elemRecordData)
	if diag := recordData.Child(elemDiagnostic); diag != nil {
		return domain.Document{}, fmt.Errorf("%w: %s", ErrSurrogateDiagnostic, OptionalText(diag.Child("diag:message")))
	}

	gzd := recordData.Child(elemGZD)
	meta := gzd.Path(elemOriginalData, elemMeta)
	kern := meta.Child(elemKern)
	mantel := meta.Child(elemMantel)
	tp := meta.Child(elemTPMeta)
	enriched := gzd.Child(elemEnrichedData)

	field := func(block *xmltree.Node, name string) string { return OptionalText(block.Child(name)) }

	title := firstText(kern.Child("dcterms:title"), mantel.Child("dcterms:title"))
	creator := firstText(kern.Child("dcterms:creator"), mantel.Child("dcterms:publisher"))
	docType := field(kern, "dcterms:type")
	date := firstText(mantel.Child("dcterms:date"), kern.Child("dcterms:date"))
	issued := field(mantel, "dcterms:issued")
	available := field(mantel, "dcterms:available")
	modified := field(kern, "dcterms:modified")
	subject := field(kern, "dcterms:subject")
	abstract := plainText(field(mantel, "dcterms:abstract"))
	spatial := field(kern, "dcterms:spatial")
	productArea := field(tp, "c:product-area")

	preferredURL := field(enriched, "gzd:preferredUrl")
	pdfURL := field(enriched, "gzd:url")
	alternativeURL := field(enriched, "gzd:alternativeUrl")

	preferred := preferredDate(date, issued, available, modified)
	now := e.now()

	doc := domain.Document{
		Position:   position,
		Identifier: orDefault(field(kern, "dcterms:identifier"), domain.RecordIdentifier(position)),
		Title:      orDefault(title, domain.PlaceholderTitle),
		Creator:    orDefault(creator, domain.PlaceholderCreator),
		Type:       orDefault(docType, domain.PlaceholderType),
		Language:   orDefault(field(kern, "dcterms:language"), domain.DefaultLanguage),
		Subject:    subject,
		Abstract:   abstract,

		Date:        date,
		Issued:      issued,
		Modified:    modified,
		Available:   available,
		DisplayDate: displayDate(preferred),

		PreferredURL:   preferredURL,
		PDFURL:         pdfURL,
		AlternativeURL: alternativeURL,
		HasURL:         preferredURL != "" || pdfURL != "" || alternativeURL != "",

		OrganisationType: field(tp, "overheidwetgeving:organisatietype"),
		PublicatieNaam:   field(tp, "overheidwetgeving:publicatienaam"),
		PublicatieNummer: field(tp, "overheidwetgeving:publicatienummer"),
		ProductArea:      productArea,
		VergaderJaar:     field(tp, "overheidwetgeving:vergaderjaar"),
		Dossiernummer:    field(tp, "overheidwetgeving:dossiernummer"),
		Ondernummer:      field(tp, "overheidwetgeving:ondernummer"),
		Spatial:          spatial,
		Temporal:         field(kern, "dcterms:temporal"),
		CollectionName:   domain.CollectionName(productArea),

		DocumentIcon:   DocumentIcon(docType),
		TypeClass:      TypeClass(docType),
		DateClass:      DateClass(preferred, now),
		IsRecent:       IsRecent(preferred, now),
		HasGeographic:  spatial != "" || field(tp, "w.locatiepunt") != "",
		DocumentSize:   DocumentSize(title, abstract),
		RelevanceScore: RelevanceScore(title, abstract, subject),
	}
	return doc, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
