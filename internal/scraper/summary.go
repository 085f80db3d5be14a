package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fiba-stats/internal/extract"
	"github.com/pfrederiksen/fiba-stats/internal/game"
	"github.com/pfrederiksen/fiba-stats/internal/logger"
)

// Lead rows that have no column in the summary.
var skippedLeadLabels = map[string]bool{
	"Lead changes": true,
	"Times tied":   true,
}

// SummaryInput holds the documents a game summary is built from. Any of them
// may be nil; the affected fields then fall back to Unknown.
type SummaryInput struct {
	GameURL    string
	Page       *goquery.Selection
	Preview    *goquery.Selection
	Comparison *goquery.Selection
}

// CollectSummary builds the two per-team summaries of a game.
func CollectSummary(in SummaryInput) (game.Summary, []extract.Warning) {
	shared := extract.New("summary", extract.Unknown)
	base := collectGameInfo(shared, in)
	warnings := shared.Warnings()

	var summary game.Summary
	for _, label := range game.Teams {
		x := extract.New("summary."+string(label), extract.Unknown)
		row := collectTeam(x, in, base, label)
		if label == game.TeamA {
			summary.A = row
		} else {
			summary.B = row
		}
		warnings = append(warnings, x.Warnings()...)
	}

	return summary, warnings
}

// collectGameInfo reads the fields both teams share.
func collectGameInfo(x *extract.Extractor, in SummaryInput) game.GameSummary {
	g := game.GameSummary{
		Date:          x.Text("date", in.Preview, "div.date_infos", "div.date"),
		Arena:         x.Text("arena", in.Preview, "div.location"),
		CityOrCountry: x.Text("city_or_country", in.Preview, "div.date_infos", "span.country_name"),
		Phase:         previewOrPage(x, "phase", in, "span.phase"),
		Group:         previewOrPage(x, "group", in, "span.group"),
		Tournament:    game.TournamentID(in.GameURL),
	}

	// A missing timezone keeps the bare time.
	g.Time = x.Text("time", in.Preview, "div.date_infos", "div.time")
	if g.Time != x.Default() {
		if tz := x.Resolve("timezone", in.Preview, extract.Select("span.timezone")); tz.Found {
			g.Time += " " + tz.Value
		}
	}

	return g
}

// previewOrPage reads a field from the preview fragment, falling back to the
// main page. Only the main page lookup records a warning.
func previewOrPage(x *extract.Extractor, field string, in SummaryInput, steps ...string) string {
	if r := extract.Lookup(in.Preview, extract.Select(steps...)); r.Found {
		return r.Value
	}
	return x.Text(field, in.Page, steps...)
}

func collectTeam(x *extract.Extractor, in SummaryInput, g game.GameSummary, label game.TeamLabel) game.GameSummary {
	opp := label.Opponent()

	g.Team = teamName(x, "team", in.Page, label)
	g.Opponent = teamName(x, "opponent", in.Page, opp)
	g.FinalScore = finalScore(x, "final_score", in.Page, label)
	g.Result = game.Result(g.FinalScore, finalScore(x, "opponent_score", in.Page, opp))
	g.TopPerformer = x.Text("top_performer", in.Page, "div."+label.Class("athlete"), "span.name")
	g.TopPerformerImg = x.Attr("top_performer_img", in.Page, "src", "div.performer-content", "div."+label.Class("team"), "img")

	collectQuarters(x, &g, in.Page, label)

	for _, key := range game.ComparisonStats {
		g.SetStat(key, x.Default())
	}
	for _, key := range game.LeadStats {
		g.SetStat(key, x.Default())
	}
	collectStatRows(x, &g, in.Comparison, "comparison", "li.comparison", "div", "span.compare-label", label)
	collectStatRows(x, &g, in.Comparison, "lead", "ul.lead-stats-list", "li", "span.lead-label", label)

	return g
}

func teamName(x *extract.Extractor, field string, page *goquery.Selection, label game.TeamLabel) string {
	return x.Text(field, page, "div."+label.Class("team"), "span.team-name")
}

func finalScore(x *extract.Extractor, field string, page *goquery.Selection, label game.TeamLabel) string {
	return x.Text(field, page, "div.final-score", "span."+label.Class("score"))
}

// collectQuarters fills Q1..Q4 from the period list. Quarters the list does
// not mention stay nil; overtime periods are ignored.
func collectQuarters(x *extract.Extractor, g *game.GameSummary, page *goquery.Selection, label game.TeamLabel) {
	if page == nil {
		x.Warn("quarters", "no document")
		return
	}
	list := page.Find("ul.period-list").First()
	if list.Length() == 0 {
		x.Warn("quarters", "ul.period-list not found")
		return
	}

	list.Find("li.period-item").Each(func(_ int, item *goquery.Selection) {
		name := x.Resolve("period_name", item, extract.Select("span.period-name"))
		if !name.Found {
			return
		}
		score := x.Resolve(name.Value, item, extract.Select("span."+label.Class("score")))
		if !score.Found {
			return
		}
		if !g.SetQuarter(name.Value, score.Value) {
			logger.Debug("ignoring period", logger.Fields{"period": name.Value, "team": string(label)})
		}
	})
}

// collectStatRows reads label/value rows from the comparison fragment into
// g. A row without a label or value is skipped on its own; labels with no
// summary column are reported and dropped.
func collectStatRows(x *extract.Extractor, g *game.GameSummary, doc *goquery.Selection, kind, listSel, rowSel, labelSel string, label game.TeamLabel) {
	if doc == nil {
		x.Warn(kind, "no document")
		return
	}
	list := doc.Find(listSel).First()
	if list.Length() == 0 {
		x.Warn(kind, listSel+" not found")
		return
	}

	list.Find(rowSel).Each(func(_ int, row *goquery.Selection) {
		name := extract.Lookup(row, extract.Select(labelSel))
		if !name.Found {
			logger.Debug("skipping stat row without label", logger.Fields{"kind": kind})
			return
		}
		if skippedLeadLabels[name.Value] {
			return
		}

		key := game.NormalizeLabel(name.Value)
		val := x.Resolve(key, row, extract.Select("span."+label.Class("team")))
		if !val.Found {
			return
		}
		if !g.SetStat(key, val.Value) {
			x.Warn(key, "unrecognized "+kind+" label "+name.Value)
		}
	})
}
