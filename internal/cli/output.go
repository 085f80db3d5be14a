package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/pfrederiksen/fiba-stats/internal/runner"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteGamesReport writes the run report in the specified format
func WriteGamesReport(w io.Writer, report *runner.Report, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		if !verbose {
			// metrics are only part of verbose output
			r := *report
			r.Metrics = nil
			report = &r
		}
		return writeJSON(w, report)
	case FormatText:
		return writeGamesText(w, report, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteRosterReport writes a roster result in the specified format
func WriteRosterReport(w io.Writer, report *runner.RosterReport, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeRosterText(w, report, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := sonic.ConfigDefault.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeGamesText outputs the run report as human-readable text
func writeGamesText(w io.Writer, report *runner.Report, verbose bool) error {
	if len(report.Games) == 0 {
		fmt.Fprintln(w, "No games processed.")
		return nil
	}

	for _, g := range report.Games {
		if g.Failed() {
			fmt.Fprintf(w, "FAIL %s\n", g.URL)
			fmt.Fprintf(w, "     Error: %s\n", g.Error)
			continue
		}

		fmt.Fprintf(w, "OK   %s: %s vs %s (%d/%d plays", g.Date, g.TeamA, g.TeamB, g.PlaysA, g.PlaysB)
		if n := len(g.Warnings); n > 0 {
			fmt.Fprintf(w, ", %d warnings", n)
		}
		fmt.Fprintln(w, ")")

		if verbose {
			fmt.Fprintf(w, "     URL: %s\n", g.URL)
			for _, f := range g.Files {
				fmt.Fprintf(w, "     File: %s\n", f)
			}
			for _, warning := range g.Warnings {
				fmt.Fprintf(w, "     Warning: %s\n", warning)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d games, %d succeeded, %d failed\n", len(report.Games), report.Succeeded, report.Failed)
	fmt.Fprintf(w, "Summary file: %s\n", report.SummaryFile)

	if verbose && len(report.Metrics) > 0 {
		writeMetrics(w, report.Metrics)
	}
	return nil
}

func writeMetrics(w io.Writer, metrics map[string]interface{}) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nMetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %v\n", name, metrics[name])
	}
}

// writeRosterText outputs a roster result as human-readable text
func writeRosterText(w io.Writer, report *runner.RosterReport, verbose bool) error {
	if report.Players == 0 {
		fmt.Fprintf(w, "No players found at %s\n", report.URL)
		return nil
	}

	fmt.Fprintf(w, "Saved %d players to %s\n", report.Players, report.OutFile)
	if len(report.Images) > 0 || report.ImageErrors > 0 {
		fmt.Fprintf(w, "Images: %d saved, %d failed\n", len(report.Images), report.ImageErrors)
	}

	if verbose {
		for _, img := range report.Images {
			fmt.Fprintf(w, "  Image: %s\n", img)
		}
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  Warning: %s\n", warning)
		}
	}
	return nil
}
