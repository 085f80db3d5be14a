// Package storage writes scraped records to flat files.
//
// Game summaries and play-by-play events are appended to CSV files whose
// header is derived from the record type's csv tags. Box scores and team
// comparison fragments are dumped verbatim as HTML. Per-game outputs live in
// a data directory (default final/data/raw) that is created on demand; the
// cumulative summary file and the input link list are plain paths.
//
// Writes are not atomic: a failure in the middle of a batch leaves the rows
// written so far in place.
package storage
