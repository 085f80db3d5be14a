package scraper

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/fiba-stats/internal/extract"
	"github.com/pfrederiksen/fiba-stats/internal/game"
)

const gameURL = "https://www.fiba.basketball/basketballworldcup/2023/game/2508/South-Sudan-China"

func TestCollectRoster(t *testing.T) {
	players, warnings := CollectRoster(fixtureDoc(t, "roster.html"), "")

	if len(players) != 2 {
		t.Fatalf("CollectRoster() returned %d players, want 2 (template container must be skipped)", len(players))
	}

	want := game.PlayerRecord{
		JerseyNumber: "5",
		FirstName:    "Carlik",
		LastName:     "Jones",
		Position:     "G",
		Height:       "1.85",
		Team:         "Louisville Cardinals",
		DateOfBirth:  "23/12/1997",
		Competition:  DefaultCompetition,
		ImageURL:     "https://www.fiba.basketball/img/carlik-jones.png",
	}
	if players[0] != want {
		t.Errorf("players[0] = %+v, want %+v", players[0], want)
	}

	// second card has no height and an untrimmed first name
	if players[1].FirstName != "Wenyen" {
		t.Errorf("FirstName = %q, want trimmed Wenyen", players[1].FirstName)
	}
	if players[1].Height != "" {
		t.Errorf("missing height should be empty, got %q", players[1].Height)
	}
	if len(warnings) != 1 || warnings[0].Field != "height" {
		t.Errorf("warnings = %v, want one height warning", warnings)
	}
}

func TestCollectRoster_SingleContainer(t *testing.T) {
	html := `<div class="country_roster_team">
		<div class="roster_member_container"><img src="a.png"><div class="num">7</div><div class="firstname">Nuni</div><div class="lastname">Omot</div></div>
	</div>`

	players, _ := CollectRoster(htmlDoc(t, html), "AfroBasket 2025")
	if len(players) != 1 {
		t.Fatalf("got %d players, want 1", len(players))
	}
	if players[0].Competition != "AfroBasket 2025" {
		t.Errorf("Competition = %q", players[0].Competition)
	}
	if players[0].FullName() != "Nuni Omot" {
		t.Errorf("FullName() = %q", players[0].FullName())
	}
}

func TestCollectRoster_NoContainer(t *testing.T) {
	players, warnings := CollectRoster(htmlDoc(t, "<p>maintenance</p>"), "")
	if len(players) != 0 {
		t.Errorf("expected empty roster, got %d", len(players))
	}
	if !hasWarning(warnings, "container") {
		t.Errorf("expected container warning, got %v", warnings)
	}
}

func TestCollectSummary(t *testing.T) {
	summary, warnings := CollectSummary(SummaryInput{
		GameURL:    gameURL,
		Page:       fixtureDoc(t, "game_page.html"),
		Preview:    fixtureDoc(t, "preview.html"),
		Comparison: fixtureDoc(t, "team_comparison.html"),
	})

	a, b := summary.A, summary.B

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"date", a.Date, "Sat 2 September 2023"},
		{"time", a.Time, "16:45 (UTC+8)"},
		{"arena", a.Arena, "Araneta Coliseum"},
		{"city", a.CityOrCountry, "Philippines"},
		{"phase from page", a.Phase, "Classification 17-32"},
		{"group from page", a.Group, "Group N"},
		{"tournament", a.Tournament, "fiba-basketballworldcup-2023-game"},
		{"team A", a.Team, "South Sudan"},
		{"opponent A", a.Opponent, "China"},
		{"team B", b.Team, "China"},
		{"opponent B", b.Opponent, "South Sudan"},
		{"final A", a.FinalScore, "89"},
		{"final B", b.FinalScore, "69"},
		{"result A", a.Result, game.ResultWin},
		{"result B", b.Result, game.ResultLoss},
		{"performer A", a.TopPerformer, "Carlik Jones"},
		{"performer B", b.TopPerformer, "Zhou Qi"},
		{"performer img B", b.TopPerformerImg, "https://www.fiba.basketball/img/zhou-qi.png"},
		{"turnover A", a.PointsFromTurnover, "20"},
		{"second chance B", b.SecondChancePoints, "9"},
		{"fast break A", a.FastBreakPoints, "17"},
		{"paint B", b.PointsInThePaint, "32"},
		{"bench A", a.PointsFromTheBench, "27"},
		{"biggest lead A", a.BiggestLead, "25"},
		{"scoring run B", b.BiggestScoringRun, "7"},
		{"times leading A", a.TimesLeading, "35:12"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}

	quarters := map[string][2]string{
		"Q1": {"25", "17"},
		"Q2": {"20", "18"},
		"Q3": {"26", "16"},
		"Q4": {"18", "18"},
	}
	for q, want := range quarters {
		qa, _ := a.Quarter(q)
		qb, _ := b.Quarter(q)
		if qa == nil || *qa != want[0] || qb == nil || *qb != want[1] {
			t.Errorf("%s = %v/%v, want %v", q, qa, qb, want)
		}
	}

	// "Assists to turnovers" has no column, once per team
	unknown := 0
	for _, w := range warnings {
		if w.Field == "assists_to_turnovers" {
			unknown++
		}
	}
	if unknown != 2 {
		t.Errorf("got %d unrecognized label warnings, want 2: %v", unknown, warnings)
	}
}

func TestCollectSummary_MissingDocuments(t *testing.T) {
	summary, warnings := CollectSummary(SummaryInput{GameURL: gameURL})

	a := summary.A
	for name, got := range map[string]string{
		"date":        a.Date,
		"time":        a.Time,
		"arena":       a.Arena,
		"phase":       a.Phase,
		"team":        a.Team,
		"final_score": a.FinalScore,
		"fast_break":  a.FastBreakPoints,
		"times_lead":  a.TimesLeading,
	} {
		if got != extract.Unknown {
			t.Errorf("%s = %q, want %q", name, got, extract.Unknown)
		}
	}
	if a.Tournament != "fiba-basketballworldcup-2023-game" {
		t.Errorf("tournament should not depend on documents, got %q", a.Tournament)
	}
	if a.Q1 != nil || a.Q4 != nil {
		t.Error("quarters should be nil without a period list")
	}
	if a.Result != game.ResultLoss || summary.B.Result != game.ResultLoss {
		t.Errorf("results = %q/%q, want L/L for equal unknown scores", a.Result, summary.B.Result)
	}
	if len(warnings) == 0 {
		t.Error("expected warnings for every missing field")
	}
}

func TestCollectSummary_PhaseFromPreview(t *testing.T) {
	preview := htmlDoc(t, `<div><span class="phase">Final Phase</span><span class="group">Semi-Finals</span></div>`)
	page := htmlDoc(t, `<div><span class="phase">Group Phase</span></div>`)

	summary, _ := CollectSummary(SummaryInput{GameURL: gameURL, Page: page, Preview: preview})
	if summary.A.Phase != "Final Phase" || summary.B.Group != "Semi-Finals" {
		t.Errorf("phase/group = %q/%q, want preview values", summary.A.Phase, summary.B.Group)
	}
}

func TestCollectSummary_TimeWithoutTimezone(t *testing.T) {
	preview := htmlDoc(t, `<div class="date_infos"><div class="date">Sat 2 September 2023</div><div class="time">16:45</div></div>`)

	summary, warnings := CollectSummary(SummaryInput{GameURL: gameURL, Page: htmlDoc(t, "<div></div>"), Preview: preview})
	if summary.A.Time != "16:45" || summary.B.Time != "16:45" {
		t.Errorf("Time = %q/%q, want the bare time", summary.A.Time, summary.B.Time)
	}
	if !hasWarning(warnings, "timezone") {
		t.Errorf("expected timezone warning, got %v", warnings)
	}
}

func TestCollectSummary_PartialRows(t *testing.T) {
	page := htmlDoc(t, `
		<div class="team-A"><span class="team-name">Serbia</span></div>
		<div class="team-B"><span class="team-name">Canada</span></div>
		<div class="final-score"><span class="score-A">95</span><span class="score-B">86</span></div>
		<ul class="period-list">
			<li class="period-item"><span class="period-name">Q1</span><span class="score-A">23</span><span class="score-B">13</span></li>
			<li class="period-item"><span class="period-name">Q2</span><span class="score-B">17</span></li>
			<li class="period-item"><span class="period-name">OT1</span><span class="score-A">8</span><span class="score-B">6</span></li>
		</ul>`)
	comparison := htmlDoc(t, `
		<li class="comparison">
			<div><span class="team-A">3</span></div>
			<div><span class="compare-label">Fast break points</span><span class="team-B">12</span></div>
			<div><span class="compare-label">Points in the paint</span><span class="team-A">40</span><span class="team-B">34</span></div>
		</li>`)

	summary, warnings := CollectSummary(SummaryInput{GameURL: gameURL, Page: page, Comparison: comparison})
	a := summary.A

	if a.Q1 == nil || *a.Q1 != "23" {
		t.Errorf("Q1 = %v, want 23", a.Q1)
	}
	if a.Q2 != nil {
		t.Errorf("Q2 without a team A score should stay nil, got %q", *a.Q2)
	}
	if b := summary.B; b.Q2 == nil || *b.Q2 != "17" {
		t.Errorf("B Q2 = %v, want 17", b.Q2)
	}
	if a.PointsInThePaint != "40" {
		t.Errorf("PointsInThePaint = %q, want 40", a.PointsInThePaint)
	}
	if a.FastBreakPoints != extract.Unknown || summary.B.FastBreakPoints != "12" {
		t.Errorf("FastBreakPoints = %q/%q", a.FastBreakPoints, summary.B.FastBreakPoints)
	}
	if !hasWarning(warnings, "fast_break_points") {
		t.Errorf("expected warning for missing team A value, got %v", warnings)
	}
	if !hasWarning(warnings, "lead") {
		t.Errorf("expected warning for missing lead list, got %v", warnings)
	}
}

func TestCollectPlays(t *testing.T) {
	doc := fixtureDoc(t, "play_by_play.html")

	playsA, warningsA, err := CollectPlays(doc, game.TeamA, "China")
	if err != nil {
		t.Fatalf("CollectPlays(A) error: %v", err)
	}
	playsB, warningsB, err := CollectPlays(doc, game.TeamB, "South Sudan")
	if err != nil {
		t.Fatalf("CollectPlays(B) error: %v", err)
	}

	if len(playsA) != 2 || len(playsB) != 2 {
		t.Fatalf("got %d/%d plays, want 2/2", len(playsA), len(playsB))
	}

	wantFirst := game.PlayEvent{
		Quarter:      "Q1",
		Time:         "09:41",
		AthleteName:  "C. Jones",
		Description:  "2pt jump shot made",
		Opponent:     "China",
		TeamScore:    "2",
		OppScore:     "0",
		AthleteImage: "https://www.fiba.basketball/img/carlik-jones.png",
	}
	if playsA[0] != wantFirst {
		t.Errorf("playsA[0] = %+v, want %+v", playsA[0], wantFirst)
	}

	coach := playsB[1]
	if !coach.IsCoach() {
		t.Errorf("bench entry athlete = %q, want %q", coach.AthleteName, game.CoachAthlete)
	}
	if coach.AthleteImage != "https://www.fiba.basketball/img/flags/chn.png" {
		t.Errorf("coach image = %q, want the national flag", coach.AthleteImage)
	}
	if len(warningsB) != 0 {
		t.Errorf("unexpected warnings for team B: %v", warningsB)
	}

	// damaged entry is kept with defaults in the missing fields
	partial := playsA[1]
	if partial.AthleteName != "M. Shayok" || partial.TeamScore != "3" {
		t.Errorf("partial row lost its present fields: %+v", partial)
	}
	if partial.Time != extract.Unknown || partial.OppScore != extract.Unknown {
		t.Errorf("partial row defaults = %q/%q, want Unknown", partial.Time, partial.OppScore)
	}
	if !hasWarning(warningsA, "time[1]") || !hasWarning(warningsA, "opp_score[1]") {
		t.Errorf("expected warnings for the damaged row, got %v", warningsA)
	}
}

func TestCollectPlays_Empty(t *testing.T) {
	plays, warnings, err := CollectPlays(htmlDoc(t, "<ul></ul>"), game.TeamA, "China")
	if err != nil || len(plays) != 0 || len(warnings) != 0 {
		t.Errorf("got %d plays, %d warnings, err %v; want none", len(plays), len(warnings), err)
	}

	plays, _, err = CollectPlays(nil, game.TeamB, "China")
	if err != nil || plays != nil {
		t.Errorf("nil document should give no plays, got %d (err %v)", len(plays), err)
	}
}

func TestCollectPlays_InvalidLabel(t *testing.T) {
	doc := fixtureDoc(t, "play_by_play.html")

	for _, label := range []game.TeamLabel{"", "C", "team-A"} {
		plays, warnings, err := CollectPlays(doc, label, "China")
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("CollectPlays(%q) error = %v, want ErrInvalidArgument", label, err)
		}
		if plays != nil || warnings != nil {
			t.Errorf("CollectPlays(%q) should return nothing on error", label)
		}
	}

	plays, _, err := CollectPlays(doc, "a", "China")
	if err != nil || len(plays) != 2 {
		t.Errorf("lower-case label: got %d plays, err %v; want 2", len(plays), err)
	}
}

func TestBoxScore(t *testing.T) {
	doc := fixtureDoc(t, "boxscore.html")

	for _, label := range game.Teams {
		html, ok := BoxScore(doc, label)
		if !ok {
			t.Fatalf("BoxScore(%s) not found", label)
		}
		if !strings.HasPrefix(html, `<section class="box-score_team-`+string(label)+`">`) {
			t.Errorf("BoxScore(%s) = %q, want the section's outer HTML", label, html)
		}
	}

	if _, ok := BoxScore(htmlDoc(t, "<div></div>"), game.TeamA); ok {
		t.Error("BoxScore on a fragment without sections should report not found")
	}
}
