package runner

import (
	"bytes"
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/fiba-stats/internal/game"
	"github.com/pfrederiksen/fiba-stats/internal/logger"
	"github.com/pfrederiksen/fiba-stats/internal/scraper"
	"github.com/pfrederiksen/fiba-stats/internal/storage"
)

// RosterOptions controls a roster download.
type RosterOptions struct {
	OutFile        string
	Competition    string
	DownloadImages bool
	ImageDir       string
}

// RosterReport is the outcome of a roster download.
type RosterReport struct {
	URL         string   `json:"url"`
	OutFile     string   `json:"out_file"`
	Players     int      `json:"players"`
	Images      []string `json:"images,omitempty"`
	ImageErrors int      `json:"image_errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Roster fetches a roster page and appends its players to opts.OutFile.
// Image downloads are best effort: failures are logged and counted.
func Roster(ctx context.Context, s *scraper.Scraper, link string, opts RosterOptions) (*RosterReport, error) {
	if strings.TrimSpace(link) == "" {
		return nil, errors.Wrap(storage.ErrInvalidArgument, "roster url is required")
	}

	roster, err := s.FetchRoster(ctx, link, opts.Competition)
	if err != nil {
		return nil, err
	}

	rep := &RosterReport{
		URL:     roster.URL,
		OutFile: opts.OutFile,
		Players: len(roster.Players),
	}
	for _, w := range roster.Warnings {
		rep.Warnings = append(rep.Warnings, w.String())
	}

	if len(roster.Players) == 0 {
		logger.Warn("roster page has no players", logger.Fields{"url": roster.URL})
		return rep, nil
	}

	if err := storage.AppendCSV(opts.OutFile, roster.Players, !storage.HasContent(opts.OutFile)); err != nil {
		return rep, errors.Wrap(err, "writing roster")
	}

	if !opts.DownloadImages {
		return rep, nil
	}

	for _, p := range roster.Players {
		if p.ImageURL == "" {
			continue
		}
		dest := filepath.Join(opts.ImageDir, ImageFileName(p))
		if err := downloadImage(ctx, s, p.ImageURL, dest); err != nil {
			logger.Error("error downloading image", logger.Fields{"player": p.FullName(), "url": p.ImageURL}, err)
			rep.ImageErrors++
			continue
		}
		rep.Images = append(rep.Images, dest)
	}

	return rep, nil
}

// ImageFileName names a player's image file after the player:
// "Carlik Jones" with a .png URL becomes "carlik_jones.png".
func ImageFileName(p game.PlayerRecord) string {
	name := strings.ToLower(strings.Join(strings.Fields(p.FullName()), "_"))
	if name == "" {
		name = "player_" + p.JerseyNumber
	}

	ext := ".png"
	if e := path.Ext(strings.SplitN(p.ImageURL, "?", 2)[0]); e != "" && len(e) <= 5 {
		ext = strings.ToLower(e)
	}
	return name + ext
}

func downloadImage(ctx context.Context, s *scraper.Scraper, link, dest string) error {
	var buf bytes.Buffer
	if err := s.Client().Download(ctx, link, &buf); err != nil {
		return err
	}
	return storage.SaveImage(dest, &buf)
}
