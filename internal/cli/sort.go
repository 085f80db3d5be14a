package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/fiba-stats/internal/game"
	"github.com/pfrederiksen/fiba-stats/internal/runner"
)

// SortOrder represents the available report orderings
type SortOrder string

const (
	SortByInput SortOrder = "input"
	SortByDate  SortOrder = "date"
	SortByTeam  SortOrder = "team"
)

// ParseSortOrder validates a --sort value.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortByInput, SortByDate, SortByTeam:
		return o, nil
	case "":
		return SortByInput, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'input', 'date' or 'team')", s)
}

// sortGames sorts game reports based on the specified sort order. Input
// order leaves the slice untouched; failed games always go last.
func sortGames(games []runner.GameReport, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(games, func(i, j int) bool {
			return compareByDate(games[i], games[j])
		})
	case SortByTeam:
		sort.SliceStable(games, func(i, j int) bool {
			if games[i].Failed() != games[j].Failed() {
				return !games[i].Failed()
			}
			a, b := strings.ToLower(games[i].TeamA), strings.ToLower(games[j].TeamA)
			if a != b {
				return a < b
			}
			// If teams are equal, sort by date
			return compareByDate(games[i], games[j])
		})
	}
}

// compareByDate compares two games by their date
// Returns true if game i should come before game j
func compareByDate(i, j runner.GameReport) bool {
	if i.Failed() != j.Failed() {
		return !i.Failed()
	}

	dateI := game.ParseGameDate(i.Date)
	dateJ := game.ParseGameDate(j.Date)

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() {
		return dateI.Before(dateJ)
	}

	// If only one date is valid, put the valid one first
	return !dateI.IsZero() && dateJ.IsZero()
}
