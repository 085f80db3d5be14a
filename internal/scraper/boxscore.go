package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fiba-stats/internal/game"
)

// BoxScore returns the outer HTML of a team's box-score section. ok is false
// when the fragment has no section for label.
func BoxScore(doc *goquery.Selection, label game.TeamLabel) (string, bool) {
	if doc == nil {
		return "", false
	}
	section := doc.Find("section." + label.Class("box-score_team")).First()
	if section.Length() == 0 {
		return "", false
	}
	html, err := goquery.OuterHtml(section)
	if err != nil {
		return "", false
	}
	return html, true
}
