package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/fiba-stats/internal/extract"
	"github.com/pfrederiksen/fiba-stats/internal/game"
)

// CollectPlays extracts the play-by-play entries of one team in document
// order. opponent is written into every row. Entries without an athlete
// element are bench actions and are attributed to the coach. Each field
// falls back to Unknown on its own, so a damaged entry still yields a row.
// A label other than A or B is an ErrInvalidArgument.
func CollectPlays(doc *goquery.Selection, label game.TeamLabel, opponent string) ([]game.PlayEvent, []extract.Warning, error) {
	label, err := game.ParseTeamLabel(string(label))
	if err != nil {
		return nil, nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}

	x := extract.New("pbp."+string(label), extract.Unknown)
	if doc == nil {
		return nil, nil, nil
	}

	var plays []game.PlayEvent
	doc.Find("li." + label.Class("x--team")).Each(func(i int, li *goquery.Selection) {
		field := func(name string) string {
			return fmt.Sprintf("%s[%d]", name, i)
		}

		p := game.PlayEvent{
			Quarter:     x.Text(field("quarter"), li, "span.period"),
			Time:        x.Text(field("time"), li, "span.time"),
			Description: x.Text(field("description"), li, "span.action-description"),
			Opponent:    opponent,
		}

		if name := extract.Lookup(li, extract.Select("span.athlete-name")); name.Found {
			p.AthleteName = name.Value
			p.AthleteImage = x.Attr(field("athlete_image"), li, "src", "div.athlete-info", "img")
		} else {
			p.AthleteName = game.CoachAthlete
			p.AthleteImage = x.Attr(field("athlete_image"), li, "src", "div.action-scores", "img.nat-flag")
		}

		scores := li.Find("div.score-info").First().Find("span")
		p.TeamScore = nthText(x, field("team_score"), scores, 0)
		p.OppScore = nthText(x, field("opp_score"), scores, 1)

		plays = append(plays, p)
	})

	return plays, x.Warnings(), nil
}

func nthText(x *extract.Extractor, field string, sel *goquery.Selection, n int) string {
	if sel.Length() <= n {
		x.Warn(field, fmt.Sprintf("div.score-info has %d spans", sel.Length()))
		return x.Default()
	}
	return extract.Lookup(sel.Eq(n), extract.Path{}).Or(x.Default())
}
