// Package scraper fetches FIBA game and roster pages and turns them into
// records.
//
// A game page carries its statistics in lazily loaded tabs; each tab element
// names the URL of an HTML fragment in its data-ajax-url attribute. FetchGame
// loads the page, resolves the tabs, fetches the preview, team comparison,
// box score and play-by-play fragments one after another (spaced by the
// client's politeness delay) and runs the collectors over them:
//
//   - CollectSummary builds one GameSummary per team
//   - CollectPlays lists a team's play-by-play entries
//   - BoxScore selects a team's box-score section
//   - CollectRoster reads the member cards of a roster page
//
// Collectors never fail. Fields that cannot be found fall back to a default
// and are reported as extract.Warning values on the result.
package scraper
