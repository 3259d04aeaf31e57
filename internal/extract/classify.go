package extract

import (
	"strings"
	"time"
)

const day = 24 * time.Hour

type keywordClass struct {
	keywords []string
	value    string
}

// Order matters: the first matching keyword wins.
var iconRules = []keywordClass{
	{[]string{"wet", "regeling"}, "⚖️"},
	{[]string{"besluit", "verordening"}, "📋"},
	{[]string{"kamerstuk", "handelingen"}, "🏛️"},
	{[]string{"bijlage"}, "📎"},
	{[]string{"brief", "circulaire"}, "✉️"},
	{[]string{"bekendmaking", "kennisgeving"}, "📢"},
	{[]string{"verdrag", "tractaat"}, "🤝"},
	{[]string{"advies"}, "💭"},
	{[]string{"uitspraak"}, "⚖️"},
	{[]string{"rapport"}, "📊"},
	{[]string{"nota"}, "📝"},
	{[]string{"plan"}, "🗺️"},
}

var typeClassRules = []keywordClass{
	{[]string{"wet"}, "law"},
	{[]string{"besluit"}, "decision"},
	{[]string{"kamerstuk"}, "parliament"},
	{[]string{"brief"}, "letter"},
	{[]string{"bekendmaking"}, "announcement"},
	{[]string{"uitspraak"}, "verdict"},
	{[]string{"rapport"}, "report"},
	{[]string{"plan"}, "plan"},
}

func matchKeyword(rules []keywordClass, docType, fallback string) string {
	lower := strings.ToLower(docType)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.value
			}
		}
	}
	return fallback
}

// DocumentIcon picks an icon for a raw document type.
func DocumentIcon(docType string) string {
	return matchKeyword(iconRules, docType, "📄")
}

// TypeClass buckets a raw document type for styling. An absent type is
// "unknown".
func TypeClass(docType string) string {
	if docType == "" {
		return "unknown"
	}
	return matchKeyword(typeClassRules, docType, "document")
}

// DateClass buckets the preferred date by age relative to now.
func DateClass(preferred string, now time.Time) string {
	if preferred == "" {
		return "no-date"
	}
	t, ok := parseDate(preferred)
	if !ok {
		return "unknown-date"
	}

	age := now.Sub(t)
	switch {
	case age <= 30*day:
		return "recent"
	case age <= 365*day:
		return "this-year"
	case age <= 1095*day:
		return "recent-years"
	default:
		return "older"
	}
}

// IsRecent reports whether the preferred date lies within 90 days of now.
func IsRecent(preferred string, now time.Time) bool {
	t, ok := parseDate(preferred)
	return ok && now.Sub(t) <= 90*day
}

// DocumentSize estimates size from the title and abstract length.
func DocumentSize(title, abstract string) string {
	switch n := len([]rune(title)) + len([]rune(abstract)); {
	case n < 200:
		return "small"
	case n < 500:
		return "medium"
	default:
		return "large"
	}
}

// RelevanceScore is a 0..5 completeness score.
func RelevanceScore(title, abstract, subject string) int {
	score := 0
	if len([]rune(title)) > 10 {
		score += 2
	}
	if len([]rune(abstract)) > 50 {
		score += 2
	}
	if subject != "" {
		score++
	}
	return min(score, 5)
}
