package extract_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/overheid-search/infrastructure/logger"
	"github.com/jonesrussell/overheid-search/internal/domain"
	"github.com/jonesrussell/overheid-search/internal/extract"
	"github.com/jonesrussell/overheid-search/internal/sru"
	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

var fixedNow = time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)

func loadEnvelope(t *testing.T) *sru.Envelope {
	t.Helper()

	data, err := os.ReadFile("../sru/testdata/searchretrieve.xml")
	require.NoError(t, err)

	env, err := sru.ReadEnvelope(data)
	require.NoError(t, err)
	return env
}

func newDocumentExtractor() *extract.DocumentExtractor {
	return extract.NewDocumentExtractor(logger.NewNop(), extract.WithClock(func() time.Time { return fixedNow }))
}

func TestDocumentExtractor_FullRecord(t *testing.T) {
	t.Parallel()

	env := loadEnvelope(t)
	doc, ok := newDocumentExtractor().Extract(env.Records[0], 1)
	require.True(t, ok)

	assert.Equal(t, 1, doc.Position)
	assert.Equal(t, "stb-2024-1", doc.Identifier)
	assert.Equal(t, "Wet van 20 december 2023 tot wijziging van de Gemeentewet", doc.Title)
	assert.Equal(t, "Ministerie van Binnenlandse Zaken en Koninkrijksrelaties", doc.Creator)
	assert.Equal(t, "Wet", doc.Type)
	assert.Equal(t, "nl", doc.Language)
	assert.Equal(t, "Openbaar bestuur", doc.Subject)
	assert.Equal(t, "Deze wet wijzigt de Gemeentewet in verband met de digitale vergadering van de gemeenteraad.", doc.Abstract)

	assert.Equal(t, "2023-12-20", doc.Date)
	assert.Equal(t, "2024-01-03", doc.Issued)
	assert.Equal(t, "2024-01-04", doc.Available)
	assert.Equal(t, "2024-01-05", doc.Modified)
	assert.Equal(t, "3 januari 2024", doc.DisplayDate)

	assert.Equal(t, "https://zoek.officielebekendmakingen.nl/stb-2024-1.html", doc.PreferredURL)
	assert.Equal(t, "https://zoek.officielebekendmakingen.nl/stb-2024-1.pdf", doc.PDFURL)
	assert.True(t, doc.HasURL)

	assert.Equal(t, "officielepublicaties", doc.ProductArea)
	assert.Equal(t, "Officiële Publicaties", doc.CollectionName)
	assert.Equal(t, "ministerie", doc.OrganisationType)
	assert.Equal(t, "Staatsblad", doc.PublicatieNaam)
	assert.Equal(t, "1", doc.PublicatieNummer)
	assert.Equal(t, "2023-2024", doc.VergaderJaar)
	assert.Equal(t, "36123", doc.Dossiernummer)
	assert.Equal(t, "Nederland", doc.Spatial)

	assert.Equal(t, "⚖️", doc.DocumentIcon)
	assert.Equal(t, "law", doc.TypeClass)
	assert.Equal(t, "recent", doc.DateClass)
	assert.True(t, doc.IsRecent)
	assert.True(t, doc.HasGeographic)
	assert.Equal(t, "small", doc.DocumentSize)
	assert.Equal(t, 5, doc.RelevanceScore)
	assert.False(t, doc.Error)
}

func TestDocumentExtractor_MissingMetadataUsesPlaceholders(t *testing.T) {
	t.Parallel()

	env := loadEnvelope(t)
	doc, ok := newDocumentExtractor().Extract(env.Records[1], 22)
	require.True(t, ok)

	assert.Equal(t, "record-22", doc.Identifier)
	assert.Equal(t, domain.PlaceholderTitle, doc.Title)
	assert.Equal(t, domain.PlaceholderCreator, doc.Creator)
	assert.Equal(t, domain.PlaceholderType, doc.Type)
	assert.Equal(t, "nl", doc.Language)
	assert.Equal(t, "Datum onbekend", doc.DisplayDate)
	assert.Equal(t, "no-date", doc.DateClass)
	assert.Equal(t, "unknown", doc.TypeClass)
	assert.Equal(t, "📄", doc.DocumentIcon)
	assert.Equal(t, "Onbekende collectie", doc.CollectionName)
	assert.False(t, doc.HasURL)
	assert.False(t, doc.Error, "missing metadata is not an extraction error")
	assert.Zero(t, doc.RelevanceScore)
}

func TestDocumentExtractor_SurrogateDiagnosticFallsBack(t *testing.T) {
	t.Parallel()

	env := loadEnvelope(t)
	doc, ok := newDocumentExtractor().Extract(env.Records[2], 3)

	assert.False(t, ok)
	assert.Equal(t, domain.FallbackDocument(3), doc)
	assert.True(t, doc.Error)
	assert.Equal(t, "Fout bij laden van document", doc.Title)
}

func TestDocumentExtractor_FallbackFields(t *testing.T) {
	t.Parallel()

	root, err := sru.NewParser().Parse([]byte(`<sru:record>
  <sru:recordData>
    <gzd:gzd>
      <gzd:originalData>
        <overheidwetgeving:meta>
          <overheidwetgeving:owmskern>
            <dcterms:creator><rdf:value> Gemeente Utrecht </rdf:value></dcterms:creator>
            <dcterms:type>Gemeenteblad</dcterms:type>
          </overheidwetgeving:owmskern>
          <overheidwetgeving:owmsmantel>
            <dcterms:title>Titel uit de mantel</dcterms:title>
            <dcterms:modified>2019-05-01</dcterms:modified>
          </overheidwetgeving:owmsmantel>
          <overheidwetgeving:tpmeta>
            <w.locatiepunt>52.09 5.12</w.locatiepunt>
          </overheidwetgeving:tpmeta>
        </overheidwetgeving:meta>
      </gzd:originalData>
      <gzd:enrichedData><gzd:alternativeUrl>https://example.nl/alt</gzd:alternativeUrl></gzd:enrichedData>
    </gzd:gzd>
  </sru:recordData>
</sru:record>`))
	require.NoError(t, err)

	doc, ok := newDocumentExtractor().Extract(root, 1)
	require.True(t, ok)

	assert.Equal(t, "Titel uit de mantel", doc.Title)
	assert.Equal(t, "Gemeente Utrecht", doc.Creator)
	assert.True(t, doc.HasURL)
	assert.True(t, doc.HasGeographic)
	assert.Equal(t, "document", doc.TypeClass)
	assert.Equal(t, "Datum onbekend", doc.DisplayDate, "modified lives in the kern block")
}

func TestOptionalText(t *testing.T) {
	t.Parallel()

	root, err := xmltree.NewParser().Parse([]byte(`<a><direct> x </direct><wrapped><inner><deep>y</deep></inner></wrapped><empty/></a>`))
	require.NoError(t, err)

	assert.Equal(t, "x", extract.OptionalText(root.Child("direct")))
	assert.Equal(t, "y", extract.OptionalText(root.Child("wrapped")))
	assert.Empty(t, extract.OptionalText(root.Child("empty")))
	assert.Empty(t, extract.OptionalText(root.Child("missing")))
}
