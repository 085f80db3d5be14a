// Package runner drives a scraping run: it walks the list of game links,
// collects each game through the scraper and writes the results with
// storage. Games are processed one at a time; a game that fails is recorded
// in the Report and the run moves on.
package runner

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/fiba-stats/internal/game"
	"github.com/pfrederiksen/fiba-stats/internal/logger"
	"github.com/pfrederiksen/fiba-stats/internal/scraper"
	"github.com/pfrederiksen/fiba-stats/internal/storage"
)

// GameReport is the outcome of one game link.
type GameReport struct {
	URL      string        `json:"url"`
	Date     string        `json:"date,omitempty"`
	TeamA    string        `json:"team_a,omitempty"`
	TeamB    string        `json:"team_b,omitempty"`
	PlaysA   int           `json:"plays_a"`
	PlaysB   int           `json:"plays_b"`
	Files    []string      `json:"files,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Failed reports whether the game could not be processed.
func (g GameReport) Failed() bool {
	return g.Error != ""
}

// Report summarizes a run.
type Report struct {
	StartedAt   time.Time              `json:"started_at"`
	FinishedAt  time.Time              `json:"finished_at"`
	SummaryFile string                 `json:"summary_file"`
	Games       []GameReport           `json:"games"`
	Succeeded   int                    `json:"succeeded"`
	Failed      int                    `json:"failed"`
	Metrics     map[string]interface{} `json:"metrics,omitempty"`
}

// HasFailures reports whether any game failed.
func (r *Report) HasFailures() bool {
	return r.Failed > 0
}

func (r *Report) add(g GameReport) {
	r.Games = append(r.Games, g)
	if g.Failed() {
		r.Failed++
	} else {
		r.Succeeded++
	}
}

// Runner processes game links sequentially.
type Runner struct {
	scraper     *scraper.Scraper
	store       *storage.Storage
	summaryFile string

	headerDone bool
}

// New creates a Runner writing per-game files into store and appending
// game summaries to summaryFile.
func New(s *scraper.Scraper, store *storage.Storage, summaryFile string) (*Runner, error) {
	if s == nil || store == nil {
		return nil, errors.Wrap(storage.ErrInvalidArgument, "scraper and storage are required")
	}
	if summaryFile == "" {
		return nil, errors.Wrap(storage.ErrInvalidArgument, "summary file is required")
	}
	return &Runner{
		scraper:     s,
		store:       store,
		summaryFile: summaryFile,
	}, nil
}

// RunFile reads game links from a CSV file with a url column and runs them.
func (r *Runner) RunFile(ctx context.Context, path string) (*Report, error) {
	links, err := storage.ReadGameLinks(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading game links")
	}
	logger.Info("loaded game links", logger.Fields{"file": path, "count": len(links)})
	return r.Run(ctx, links), nil
}

// Run processes links in order. It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context, links []string) *Report {
	report := &Report{
		StartedAt:   time.Now().UTC(),
		SummaryFile: r.summaryFile,
	}

	for i, link := range links {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled", logger.Fields{"remaining": len(links) - i})
			break
		}

		logger.Info("processing game", logger.Fields{"index": i + 1, "total": len(links), "url": link})
		g := r.processGame(ctx, link)
		report.add(g)

		if g.Failed() {
			logger.IncrCounter("games.failed")
		} else {
			logger.IncrCounter("games.succeeded")
		}
		logger.RecordTiming("game.duration", g.Duration)
	}

	report.FinishedAt = time.Now().UTC()
	report.Metrics = logger.GetMetricsSnapshot()
	return report
}

func (r *Runner) processGame(ctx context.Context, link string) GameReport {
	start := time.Now()
	rep := GameReport{URL: r.scraper.Client().Resolve(link)}

	g, err := r.scraper.FetchGame(ctx, link)
	if err != nil {
		logger.Error("game failed", logger.Fields{"url": rep.URL}, err)
		rep.Error = err.Error()
		rep.Duration = time.Since(start)
		return rep
	}

	rep.Date = g.Summary.A.Date
	rep.TeamA = g.TeamName(game.TeamA)
	rep.TeamB = g.TeamName(game.TeamB)
	rep.PlaysA = len(g.Plays[game.TeamA])
	rep.PlaysB = len(g.Plays[game.TeamB])
	for _, w := range g.Warnings {
		rep.Warnings = append(rep.Warnings, w.String())
	}

	files, err := r.writeGame(g)
	rep.Files = files
	if err != nil {
		logger.Error("writing game failed", logger.Fields{"url": rep.URL}, err)
		rep.Error = err.Error()
	}

	rep.Duration = time.Since(start)
	return rep
}

// writeGame persists one game: the summary rows, then the box scores and
// comparison fragment, then the play-by-play files. It stops at the first
// write error; files already written stay in place.
func (r *Runner) writeGame(g *scraper.Game) ([]string, error) {
	var files []string

	header := !r.headerDone && !storage.HasContent(r.summaryFile)
	if err := storage.AppendCSV(r.summaryFile, g.Summary.Rows(), header); err != nil {
		return files, errors.Wrap(err, "appending game summary")
	}
	r.headerDone = true
	files = append(files, r.summaryFile)

	prefix := game.DatePrefix(g.Summary.A.Date)
	teamA, teamB := g.TeamName(game.TeamA), g.TeamName(game.TeamB)

	for _, label := range game.Teams {
		html, ok := g.BoxScores[label]
		if !ok {
			continue
		}
		path := r.store.Path(storage.FileName(prefix, g.TeamName(label), "boxscore.html"))
		if err := storage.WriteHTML(path, html); err != nil {
			return files, errors.Wrapf(err, "writing box score for team %s", label)
		}
		files = append(files, storage.HTMLPath(path))
	}

	if g.ComparisonHTML != "" {
		path := r.store.Path(storage.FileName(prefix, teamA, teamB, "team_comparison.html"))
		if err := storage.WriteHTML(path, g.ComparisonHTML); err != nil {
			return files, errors.Wrap(err, "writing team comparison")
		}
		files = append(files, storage.HTMLPath(path))
	}

	for _, label := range game.Teams {
		plays := g.Plays[label]
		if len(plays) == 0 {
			continue
		}
		path := r.store.Path(storage.FileName(prefix, g.TeamName(label), "pbp.csv"))
		if err := storage.AppendCSV(path, plays, !storage.HasContent(path)); err != nil {
			return files, errors.Wrapf(err, "writing play-by-play for team %s", label)
		}
		files = append(files, path)
	}

	return files, nil
}
