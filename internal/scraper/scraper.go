package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/fiba-stats/internal/extract"
	"github.com/pfrederiksen/fiba-stats/internal/game"
	"github.com/pfrederiksen/fiba-stats/internal/logger"
)

// Scraper collects game and roster data through a Client.
type Scraper struct {
	client *Client
}

// New creates a new Scraper instance
func New(client *Client) *Scraper {
	return &Scraper{client: client}
}

// Client returns the underlying fetcher.
func (s *Scraper) Client() *Client {
	return s.client
}

// Game is everything collected for one game page. It is built once by
// FetchGame and not modified afterwards.
type Game struct {
	URL      string
	Tabs     Tabs
	Summary  game.Summary
	Warnings []extract.Warning

	// Raw fragments, empty when the tab was missing or failed to load.
	BoxScores      map[game.TeamLabel]string
	ComparisonHTML string

	Plays map[game.TeamLabel][]game.PlayEvent
}

// TeamName returns the scraped name of a side.
func (g *Game) TeamName(label game.TeamLabel) string {
	return g.Summary.Team(label).Team
}

// Roster is the result of FetchRoster.
type Roster struct {
	URL      string
	Players  []game.PlayerRecord
	Warnings []extract.Warning
}

// FetchGame fetches a game page and its tab fragments and runs every
// collector over them. Only a failure to load the game page itself is an
// error; missing or failing fragments degrade to defaults and warnings.
func (s *Scraper) FetchGame(ctx context.Context, link string) (*Game, error) {
	if strings.TrimSpace(link) == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "game url is required")
	}
	gameURL := s.client.Resolve(link)

	body, err := s.client.FetchPage(ctx, gameURL)
	if err != nil {
		return nil, errors.Wrap(err, "fetching game page")
	}
	page, err := parseHTML(body)
	if err != nil {
		return nil, err
	}

	g := &Game{
		URL:       gameURL,
		Tabs:      ResolveTabs(page.Selection),
		BoxScores: make(map[game.TeamLabel]string, 2),
		Plays:     make(map[game.TeamLabel][]game.PlayEvent, 2),
	}
	tabs := extract.New("tabs", "")

	preview, _ := s.fragment(ctx, tabs, g.Tabs, TabPreview)
	comparison, comparisonRaw := s.fragment(ctx, tabs, g.Tabs, TabTeamComparison)
	g.ComparisonHTML = comparisonRaw

	var warnings []extract.Warning
	g.Summary, warnings = CollectSummary(SummaryInput{
		GameURL:    gameURL,
		Page:       page.Selection,
		Preview:    preview,
		Comparison: comparison,
	})
	g.Warnings = append(g.Warnings, warnings...)

	boxscore, _ := s.fragment(ctx, tabs, g.Tabs, TabBoxScore)
	for _, label := range game.Teams {
		if html, ok := BoxScore(boxscore, label); ok {
			g.BoxScores[label] = html
		} else if boxscore != nil {
			tabs.Warn("boxscore."+string(label), "section."+label.Class("box-score_team")+" not found")
		}
	}

	pbp, _ := s.fragment(ctx, tabs, g.Tabs, TabPlayByPlay)
	for _, label := range game.Teams {
		plays, w, err := CollectPlays(pbp, label, g.TeamName(label.Opponent()))
		if err != nil {
			return nil, err
		}
		g.Plays[label] = plays
		g.Warnings = append(g.Warnings, w...)
	}

	g.Warnings = append(tabs.Warnings(), g.Warnings...)

	logger.Info("collected game", logger.Fields{
		"url":      gameURL,
		"team_a":   g.TeamName(game.TeamA),
		"team_b":   g.TeamName(game.TeamB),
		"plays_a":  len(g.Plays[game.TeamA]),
		"plays_b":  len(g.Plays[game.TeamB]),
		"warnings": len(g.Warnings),
	})
	return g, nil
}

// fragment loads one tab. A missing tab, a failed fetch or an unparseable
// body is recorded on x and yields a nil selection.
func (s *Scraper) fragment(ctx context.Context, x *extract.Extractor, tabs Tabs, tab Tab) (*goquery.Selection, string) {
	link, ok := tabs[tab]
	if !ok {
		x.Warn(string(tab), "tab has no ajax url")
		return nil, ""
	}

	body, err := s.client.FetchFragment(ctx, link)
	if err != nil {
		logger.Error("fetching tab fragment failed", logger.Fields{"tab": string(tab), "url": link}, err)
		x.Warn(string(tab), err.Error())
		return nil, ""
	}

	doc, err := parseHTML(body)
	if err != nil {
		x.Warn(string(tab), err.Error())
		return nil, ""
	}
	return doc.Selection, string(body)
}

// FetchRoster fetches a roster page and collects its players.
func (s *Scraper) FetchRoster(ctx context.Context, link, competition string) (*Roster, error) {
	if strings.TrimSpace(link) == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "roster url is required")
	}
	rosterURL := s.client.Resolve(link)

	body, err := s.client.FetchPage(ctx, rosterURL)
	if err != nil {
		return nil, errors.Wrap(err, "fetching roster page")
	}
	page, err := parseHTML(body)
	if err != nil {
		return nil, err
	}

	players, warnings := CollectRoster(page.Selection, competition)
	logger.Info("collected roster", logger.Fields{
		"url":      rosterURL,
		"players":  len(players),
		"warnings": len(warnings),
	})

	return &Roster{
		URL:      rosterURL,
		Players:  players,
		Warnings: warnings,
	}, nil
}
