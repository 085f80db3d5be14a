package game

import (
	"strconv"
	"strings"
)

const (
	ResultWin  = "W"
	ResultLoss = "L"
)

// TournamentID derives the tournament identifier from a game URL: path
// segments 3 to 5 of the slash-split URL, joined with hyphens, prefixed
// "fiba-" and lower-cased. Short URLs contribute whatever segments exist.
//
//	https://www.fiba.basketball/basketballworldcup/2023/game/2508/...
//	-> fiba-basketballworldcup-2023-game
func TournamentID(gameURL string) string {
	parts := strings.Split(gameURL, "/")
	if len(parts) > 6 {
		parts = parts[:6]
	}
	if len(parts) > 3 {
		parts = parts[3:]
	} else {
		parts = nil
	}
	return strings.ToLower("FIBA-" + strings.Join(parts, "-"))
}

// NormalizeLabel turns a display label such as "Fast Break Points" into the
// column key "fast_break_points".
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Split(strings.TrimSpace(label), " "), "_"))
}

// Result returns "W" when score is strictly greater than opponent, else "L".
// Scores are compared as integers. A score that is not a number, such as
// Unknown, never wins, and equal scores give "L" to both sides.
func Result(score, opponent string) string {
	a, errA := strconv.Atoi(strings.TrimSpace(score))
	b, errB := strconv.Atoi(strings.TrimSpace(opponent))
	if errA != nil || errB != nil || a <= b {
		return ResultLoss
	}
	return ResultWin
}

// DatePrefix builds the file-name prefix for a game's raw outputs from its
// date text. "Sat 26 August 2023" becomes "26_August_2023". Unparseable
// dates drop their first word and join the rest with underscores; "Unknown"
// and empty dates give an empty prefix.
func DatePrefix(date string) string {
	date = strings.TrimSpace(date)
	if date == "" || date == "Unknown" {
		return ""
	}
	if t := ParseGameDate(date); !t.IsZero() {
		return t.Format("2_January_2006")
	}
	parts := strings.Split(date, " ")
	return strings.Join(parts[1:], "_")
}
