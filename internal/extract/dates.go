package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/overheid-search/internal/domain"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"2006-01",
	"2006",
}

var dutchMonths = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// parseDate accepts the ISO 8601 shapes the repository emits.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// preferredDate applies the display priority issued > available > date > modified.
func preferredDate(date, issued, available, modified string) string {
	for _, d := range []string{issued, available, date, modified} {
		if d != "" {
			return d
		}
	}
	return ""
}

// formatDutchDate renders t as "3 januari 2024".
func formatDutchDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + " " + dutchMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// displayDate is the Dutch long form of the preferred date. An unparsable
// date is shown verbatim.
func displayDate(preferred string) string {
	if preferred == "" {
		return domain.PlaceholderDate
	}
	t, ok := parseDate(preferred)
	if !ok {
		return preferred
	}
	return formatDutchDate(t)
}
