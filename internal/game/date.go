package game

import (
	"strings"
	"time"
)

// gameDateLayouts are the date texts seen on FIBA preview tabs, most
// common first.
var gameDateLayouts = []string{
	"Mon 2 January 2006",
	"Monday 2 January 2006",
	"Mon 2 Jan 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"02/01/2006",
	"2006-01-02",
}

// ParseGameDate attempts to parse a preview-tab date into a time.Time.
// Returns time.Time{} (zero value) if parsing fails.
// Supports formats: "Sat 26 August 2023", "26 August 2023", "26/08/2023", "2023-08-26"
func ParseGameDate(dateText string) time.Time {
	dateText = strings.Join(strings.Fields(dateText), " ")
	if dateText == "" {
		return time.Time{}
	}

	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, dateText); err == nil {
			return t
		}
	}

	// Could not parse, return zero time
	return time.Time{}
}
