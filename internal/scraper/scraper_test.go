package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/fiba-stats/internal/game"
)

const gamePath = "/basketballworldcup/2023/game/2508/South-Sudan-China"

// newGameServer serves the fixture game. Paths listed in broken answer 500.
func newGameServer(t *testing.T, broken ...string) *httptest.Server {
	t.Helper()

	routes := map[string]string{
		gamePath:                      "game_page.html",
		gamePath + "/preview":         "preview.html",
		gamePath + "/team-comparison": "team_comparison.html",
		gamePath + "/boxscore":        "boxscore.html",
		gamePath + "/play-by-play":    "play_by_play.html",
		"/team/south-sudan/roster":    "roster.html",
	}
	for _, p := range broken {
		delete(routes, p)
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if r.URL.Path != gamePath && !strings.Contains(r.URL.Path, "roster") {
			if r.Header.Get("X-Requested-With") != "XMLHttpRequest" {
				t.Errorf("fragment %s requested without X-Requested-With", r.URL.Path)
			}
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(loadFixture(t, name))
	}))
}

func newTestScraper(t *testing.T, server *httptest.Server) *Scraper {
	t.Helper()
	c, err := NewClient(ClientOptions{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return New(c)
}

func TestFetchGame(t *testing.T) {
	server := newGameServer(t)
	defer server.Close()

	s := newTestScraper(t, server)
	g, err := s.FetchGame(context.Background(), gamePath)
	if err != nil {
		t.Fatalf("FetchGame() error: %v", err)
	}

	if g.URL != server.URL+gamePath {
		t.Errorf("URL = %q, want %q", g.URL, server.URL+gamePath)
	}
	if g.TeamName(game.TeamA) != "South Sudan" || g.TeamName(game.TeamB) != "China" {
		t.Errorf("teams = %q/%q", g.TeamName(game.TeamA), g.TeamName(game.TeamB))
	}
	if g.Summary.A.Date != "Sat 2 September 2023" {
		t.Errorf("Date = %q", g.Summary.A.Date)
	}
	if g.Summary.A.BiggestLead != "25" {
		t.Errorf("BiggestLead = %q", g.Summary.A.BiggestLead)
	}
	if !strings.Contains(g.ComparisonHTML, `class="lead-stats-list"`) {
		t.Error("comparison fragment should be kept verbatim")
	}
	if len(g.BoxScores) != 2 {
		t.Errorf("got %d box scores, want 2", len(g.BoxScores))
	}
	if len(g.Plays[game.TeamA]) != 2 || len(g.Plays[game.TeamB]) != 2 {
		t.Errorf("plays = %d/%d, want 2/2", len(g.Plays[game.TeamA]), len(g.Plays[game.TeamB]))
	}
	if g.Plays[game.TeamA][0].Opponent != "China" || g.Plays[game.TeamB][0].Opponent != "South Sudan" {
		t.Error("play opponents should be the other team's name")
	}
	if _, ok := g.Tabs[TabVideos]; ok {
		t.Error("videos tab has no ajax url and should be absent")
	}
}

func TestFetchGame_PageFailure(t *testing.T) {
	server := newGameServer(t, gamePath)
	defer server.Close()

	s := newTestScraper(t, server)
	if _, err := s.FetchGame(context.Background(), gamePath); err == nil {
		t.Fatal("FetchGame() expected error when the game page fails")
	}
}

func TestFetchGame_BlankLink(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	s := newTestScraper(t, server)
	if _, err := s.FetchGame(context.Background(), " "); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FetchGame() error = %v, want ErrInvalidArgument", err)
	}
	if _, err := s.FetchRoster(context.Background(), "", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FetchRoster() error = %v, want ErrInvalidArgument", err)
	}
	if hits != 0 {
		t.Errorf("server received %d requests, want none", hits)
	}
}

func TestFetchGame_FragmentFailure(t *testing.T) {
	server := newGameServer(t, gamePath+"/preview", gamePath+"/boxscore")
	defer server.Close()

	s := newTestScraper(t, server)
	g, err := s.FetchGame(context.Background(), gamePath)
	if err != nil {
		t.Fatalf("FetchGame() error: %v", err)
	}

	if g.Summary.A.Date != "Unknown" || g.Summary.A.Arena != "Unknown" {
		t.Errorf("preview fields = %q/%q, want Unknown", g.Summary.A.Date, g.Summary.A.Arena)
	}
	if g.Summary.A.Team != "South Sudan" {
		t.Error("main page fields should survive a failed fragment")
	}
	if len(g.BoxScores) != 0 {
		t.Errorf("expected no box scores, got %d", len(g.BoxScores))
	}
	if !hasWarning(g.Warnings, string(TabPreview)) || !hasWarning(g.Warnings, string(TabBoxScore)) {
		t.Errorf("expected tab warnings, got %v", g.Warnings)
	}
}

func TestFetchRoster(t *testing.T) {
	server := newGameServer(t)
	defer server.Close()

	s := newTestScraper(t, server)
	r, err := s.FetchRoster(context.Background(), "/team/south-sudan/roster", "FIBA World Cup 2023")
	if err != nil {
		t.Fatalf("FetchRoster() error: %v", err)
	}
	if len(r.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(r.Players))
	}
	if r.Players[0].LastName != "Jones" {
		t.Errorf("LastName = %q", r.Players[0].LastName)
	}
}
