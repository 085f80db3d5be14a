// Package cli implements the command-line interface for fiba-stats.
//
// The cli package provides the Cobra-based CLI with a games command that
// scrapes every game of a link list and a roster command for national-team
// roster pages. It merges flags with environment configuration, sets up
// logging, and coordinates the scraper, runner and storage packages, then
// reports the outcome as text or JSON. The games command exits with status 2
// when some games failed.
package cli
