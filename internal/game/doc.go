// Package game defines the records extracted from FIBA game and roster pages.
//
// A game produces two GameSummary values (one per team), an ordered list of
// PlayEvent values per team, and raw box-score HTML. Roster pages produce
// PlayerRecord values. All records are plain values with CSV tags; the column
// order of the written files is the field order declared here.
//
// The package also holds the small derivations shared by collectors and the
// driver: tournament ids from game URLs, stat label normalization, win/loss
// results, and file-name prefixes from game dates.
package game
