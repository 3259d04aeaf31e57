package domain

// Collection is a top-level document collection (an SRU product area).
type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UnknownCollection labels a record without a product area.
const UnknownCollection = "Onbekende collectie"

// Collections lists the known product areas in display order.
var Collections = []Collection{
	{ID: "officielepublicaties", Name: "Officiële Publicaties", Description: "Staatsblad, Staatscourant, wetten, besluiten"},
	{ID: "sgd", Name: "Staten-Generaal Digitaal", Description: "Kamerstukken, debatten, parlementaire documenten"},
	{ID: "tuchtrecht", Name: "Tuchtrecht", Description: "Uitspraken van tuchtcolleges"},
	{ID: "samenwerkendecatalogi", Name: "Samenwerkende Catalogi", Description: "Lokale overheidsinformatie"},
	{ID: "verdragenbank", Name: "Verdragenbank", Description: "Internationale verdragen"},
	{ID: "plooi", Name: "PLOOI", Description: "Publieke Open Overheidsinformatie"},
	{ID: "cvdr", Name: "CVDR"},
	{ID: "bwb", Name: "Basiswettenbestand"},
}

// CollectionName returns the Dutch label for a product area. Unknown areas
// are returned as-is; an empty area yields UnknownCollection.
func CollectionName(productArea string) string {
	for _, c := range Collections {
		if c.ID == productArea {
			return c.Name
		}
	}
	if productArea == "" {
		return UnknownCollection
	}
	return productArea
}

// fallbackDocumentTypes are served when the dt.type vocabulary lookup fails.
var fallbackDocumentTypes = map[string][]Term{
	"officielepublicaties": {
		{ActualTerm: "Wet", DisplayName: "Wetten"},
		{ActualTerm: "Besluit", DisplayName: "Besluiten"},
		{ActualTerm: "Regeling", DisplayName: "Regelingen"},
		{ActualTerm: "Bekendmaking", DisplayName: "Bekendmakingen"},
	},
	"sgd": {
		{ActualTerm: "Kamerstuk", DisplayName: "Kamerstukken"},
		{ActualTerm: "Handelingen", DisplayName: "Handelingen"},
		{ActualTerm: "Brief", DisplayName: "Kamerbrieven"},
		{ActualTerm: "Nota", DisplayName: "Nota's"},
	},
	"tuchtrecht": {
		{ActualTerm: "Uitspraak", DisplayName: "Uitspraken"},
		{ActualTerm: "Beslissing", DisplayName: "Beslissingen"},
	},
}

// FallbackDocumentTypes returns a copy of the built-in document types for a
// collection, or nil when there are none.
func FallbackDocumentTypes(collection string) []Term {
	terms, ok := fallbackDocumentTypes[collection]
	if !ok {
		return nil
	}
	return append([]Term(nil), terms...)
}
