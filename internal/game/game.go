package game

import (
	"fmt"
	"strings"
)

// TeamLabel identifies a side on a FIBA game page. The site marks team
// elements with "-A" and "-B" class suffixes.
type TeamLabel string

const (
	TeamA TeamLabel = "A"
	TeamB TeamLabel = "B"
)

// Teams lists both labels in page order.
var Teams = []TeamLabel{TeamA, TeamB}

// ParseTeamLabel accepts "a", "B", " A " etc.
func ParseTeamLabel(s string) (TeamLabel, error) {
	switch TeamLabel(strings.ToUpper(strings.TrimSpace(s))) {
	case TeamA:
		return TeamA, nil
	case TeamB:
		return TeamB, nil
	}
	return "", fmt.Errorf("invalid team label %q (must be A or B)", s)
}

// Opponent returns the other side's label.
func (t TeamLabel) Opponent() TeamLabel {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Class returns the class suffix used by the site, e.g. "team-A".
func (t TeamLabel) Class(prefix string) string {
	return prefix + "-" + string(t)
}

// PlayerRecord is one member card of a national-team roster.
// Missing fields are empty strings.
type PlayerRecord struct {
	JerseyNumber string `csv:"jersey_number" json:"jersey_number"`
	FirstName    string `csv:"first_name" json:"first_name"`
	LastName     string `csv:"last_name" json:"last_name"`
	Position     string `csv:"position" json:"position"`
	Height       string `csv:"height" json:"height"`
	Team         string `csv:"team" json:"team"`
	DateOfBirth  string `csv:"dob" json:"dob"`
	Competition  string `csv:"competition" json:"competition"`
	ImageURL     string `csv:"player_img" json:"player_img"`
}

// FullName joins first and last name, skipping empty parts.
func (p PlayerRecord) FullName() string {
	return strings.TrimSpace(strings.Join([]string{p.FirstName, p.LastName}, " "))
}

// GameSummary is one team's view of a game. Text fields hold "Unknown" when
// they could not be extracted; quarter scores are nil when the period list
// had no entry for that quarter.
type GameSummary struct {
	Date            string `csv:"date" json:"date"`
	Time            string `csv:"time" json:"time"`
	Arena           string `csv:"arena" json:"arena"`
	CityOrCountry   string `csv:"city_or_country" json:"city_or_country"`
	Phase           string `csv:"phase" json:"phase"`
	Group           string `csv:"group" json:"group"`
	Tournament      string `csv:"tournament" json:"tournament"`
	Team            string `csv:"team" json:"team"`
	Opponent        string `csv:"opponent" json:"opponent"`
	FinalScore      string `csv:"final_score" json:"final_score"`
	Result          string `csv:"result" json:"result"`
	TopPerformer    string `csv:"top_performer" json:"top_performer"`
	TopPerformerImg string `csv:"top_performer_img" json:"top_performer_img"`

	Q1 *string `csv:"Q1,omitempty" json:"Q1"`
	Q2 *string `csv:"Q2,omitempty" json:"Q2"`
	Q3 *string `csv:"Q3,omitempty" json:"Q3"`
	Q4 *string `csv:"Q4,omitempty" json:"Q4"`

	PointsFromTurnover string `csv:"points_from_turnover" json:"points_from_turnover"`
	SecondChancePoints string `csv:"second_chance_points" json:"second_chance_points"`
	FastBreakPoints    string `csv:"fast_break_points" json:"fast_break_points"`
	PointsInThePaint   string `csv:"points_in_the_paint" json:"points_in_the_paint"`
	PointsFromTheBench string `csv:"points_from_the_bench" json:"points_from_the_bench"`
	BiggestLead        string `csv:"biggest_lead" json:"biggest_lead"`
	BiggestScoringRun  string `csv:"biggest_scoring_run" json:"biggest_scoring_run"`
	TimesLeading       string `csv:"times_leading" json:"times_leading"`
}

// Comparison stat keys, as produced by NormalizeLabel on the comparison tab.
const (
	StatPointsFromTurnover = "points_from_turnover"
	StatSecondChancePoints = "second_chance_points"
	StatFastBreakPoints    = "fast_break_points"
	StatPointsInThePaint   = "points_in_the_paint"
	StatPointsFromTheBench = "points_from_the_bench"
)

// Lead stat keys.
const (
	StatBiggestLead       = "biggest_lead"
	StatBiggestScoringRun = "biggest_scoring_run"
	StatTimesLeading      = "times_leading"
)

// ComparisonStats lists the comparison keys in column order.
var ComparisonStats = []string{
	StatPointsFromTurnover,
	StatSecondChancePoints,
	StatFastBreakPoints,
	StatPointsInThePaint,
	StatPointsFromTheBench,
}

// LeadStats lists the lead keys in column order.
var LeadStats = []string{
	StatBiggestLead,
	StatBiggestScoringRun,
	StatTimesLeading,
}

// SetStat stores value under a normalized stat key. It reports false for
// keys that have no column.
func (g *GameSummary) SetStat(key, value string) bool {
	switch key {
	case StatPointsFromTurnover:
		g.PointsFromTurnover = value
	case StatSecondChancePoints:
		g.SecondChancePoints = value
	case StatFastBreakPoints:
		g.FastBreakPoints = value
	case StatPointsInThePaint:
		g.PointsInThePaint = value
	case StatPointsFromTheBench:
		g.PointsFromTheBench = value
	case StatBiggestLead:
		g.BiggestLead = value
	case StatBiggestScoringRun:
		g.BiggestScoringRun = value
	case StatTimesLeading:
		g.TimesLeading = value
	default:
		return false
	}
	return true
}

// Quarter returns the score for quarter name ("Q1".."Q4") and whether the
// name is a regulation quarter at all.
func (g *GameSummary) Quarter(name string) (*string, bool) {
	switch name {
	case "Q1":
		return g.Q1, true
	case "Q2":
		return g.Q2, true
	case "Q3":
		return g.Q3, true
	case "Q4":
		return g.Q4, true
	}
	return nil, false
}

// SetQuarter stores a regulation quarter score. Overtime periods report false.
func (g *GameSummary) SetQuarter(name, score string) bool {
	s := score
	switch name {
	case "Q1":
		g.Q1 = &s
	case "Q2":
		g.Q2 = &s
	case "Q3":
		g.Q3 = &s
	case "Q4":
		g.Q4 = &s
	default:
		return false
	}
	return true
}

// Summary is the per-game output: one GameSummary per team.
type Summary struct {
	A GameSummary `json:"team_a"`
	B GameSummary `json:"team_b"`
}

// Rows returns the two summaries in page order, ready for CSV.
func (s Summary) Rows() []GameSummary {
	return []GameSummary{s.A, s.B}
}

// Team returns the summary for label.
func (s Summary) Team(label TeamLabel) GameSummary {
	if label == TeamB {
		return s.B
	}
	return s.A
}

// CoachAthlete is the athlete name recorded for team-level entries such as
// bench technical fouls, which have no athlete element.
const CoachAthlete = "Coach"

// PlayEvent is one play-by-play row for a team.
type PlayEvent struct {
	Quarter      string `csv:"quarter" json:"quarter"`
	Time         string `csv:"time" json:"time"`
	AthleteName  string `csv:"athlete_name" json:"athlete_name"`
	Description  string `csv:"description" json:"description"`
	Opponent     string `csv:"opponent" json:"opponent"`
	TeamScore    string `csv:"team_score" json:"team_score"`
	OppScore     string `csv:"opp_score" json:"opp_score"`
	AthleteImage string `csv:"athlete_image" json:"athlete_image"`
}

// IsCoach reports whether the row was attributed to the bench.
func (p PlayEvent) IsCoach() bool {
	return p.AthleteName == CoachAthlete
}

// GameLink is one row of the input file listing games to scrape.
type GameLink struct {
	URL string `csv:"url"`
}
