package scraper

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fiba-stats/internal/extract"
	"github.com/pfrederiksen/fiba-stats/internal/game"
)

// DefaultCompetition tags roster rows when no competition is given.
const DefaultCompetition = "FIBA World Cup 2023"

// CollectRoster extracts the players of a national-team roster page. When
// the page carries more than one roster container the second is used; the
// first is the site's template. Missing fields are empty strings.
func CollectRoster(page *goquery.Selection, competition string) ([]game.PlayerRecord, []extract.Warning) {
	x := extract.New("roster", "")
	if competition == "" {
		competition = DefaultCompetition
	}

	if page == nil {
		x.Warn("container", "no document")
		return nil, x.Warnings()
	}

	containers := page.Find("div.country_roster_team")
	if containers.Length() == 0 {
		x.Warn("container", "div.country_roster_team not found")
		return nil, x.Warnings()
	}
	container := containers.First()
	if containers.Length() > 1 {
		container = containers.Eq(1)
	}

	var players []game.PlayerRecord
	container.Find("div.roster_member_container").Each(func(_ int, m *goquery.Selection) {
		players = append(players, game.PlayerRecord{
			ImageURL:     x.Attr("player_img", m, "src", "img"),
			JerseyNumber: x.Text("jersey_number", m, "div.num"),
			FirstName:    x.Text("first_name", m, "div.firstname"),
			LastName:     x.Text("last_name", m, "div.lastname"),
			Position:     x.Text("position", m, "div.position"),
			Height:       x.Text("height", m, "div.height"),
			Team:         x.Text("team", m, "div.team"),
			DateOfBirth:  x.Text("dob", m, "div.birth"),
			Competition:  competition,
		})
	})

	return players, x.Warnings()
}
