// Package extract reads single values out of parsed HTML documents.
//
// Every lookup is fail-soft: a missing element or attribute resolves to a
// default value (Unknown unless configured otherwise) and is recorded as a
// Warning instead of aborting the caller. Collectors build whole records from
// many independent lookups, so one absent span only degrades one column.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fiba-stats/internal/logger"
)

// Unknown is the sentinel written for fields that could not be extracted.
const Unknown = "Unknown"

// Path locates a value: each step is a CSS selector resolved against the
// previous match (first descendant wins), optionally followed by an
// attribute read instead of text content.
type Path struct {
	Steps     []string
	Attribute string
}

// Select builds a text Path from selector steps.
func Select(steps ...string) Path {
	return Path{Steps: steps}
}

// Attr returns a copy of p that reads attribute name from the final match.
func (p Path) Attr(name string) Path {
	steps := make([]string, len(p.Steps))
	copy(steps, p.Steps)
	return Path{Steps: steps, Attribute: name}
}

func (p Path) String() string {
	s := strings.Join(p.Steps, " > ")
	if p.Attribute != "" {
		s += " @" + p.Attribute
	}
	return s
}

// Result is the outcome of a single lookup. Found is false when the default
// was substituted; Reason then says which step failed.
type Result struct {
	Value  string
	Found  bool
	Reason string
}

// Or returns the extracted value, or def when the lookup failed.
func (r Result) Or(def string) string {
	if r.Found {
		return r.Value
	}
	return def
}

// Lookup resolves path against sel. It never panics: an invalid selector
// simply matches nothing.
func Lookup(sel *goquery.Selection, path Path) Result {
	if sel == nil || sel.Length() == 0 {
		return Result{Reason: "empty selection"}
	}

	cur := sel
	for _, step := range path.Steps {
		cur = cur.Find(step).First()
		if cur.Length() == 0 {
			return Result{Reason: fmt.Sprintf("%q not found", step)}
		}
	}

	if path.Attribute != "" {
		v, ok := cur.Attr(path.Attribute)
		if !ok {
			return Result{Reason: fmt.Sprintf("attribute %q missing", path.Attribute)}
		}
		return Result{Value: strings.TrimSpace(v), Found: true}
	}

	return Result{Value: strings.TrimSpace(cur.Text()), Found: true}
}

// Warning describes one field that fell back to its default.
type Warning struct {
	Scope  string `json:"scope,omitempty"`
	Field  string `json:"field"`
	Path   string `json:"path,omitempty"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	name := w.Field
	if w.Scope != "" {
		name = w.Scope + "." + w.Field
	}
	if w.Path == "" {
		return fmt.Sprintf("%s: %s", name, w.Reason)
	}
	return fmt.Sprintf("%s (%s): %s", name, w.Path, w.Reason)
}

// Extractor runs lookups and collects a Warning for every fallback.
// An Extractor belongs to one collection pass and is not safe for
// concurrent use.
type Extractor struct {
	def      string
	scope    string
	warnings []Warning
}

// New creates an Extractor that substitutes def for missing values.
// scope prefixes warnings, e.g. "summary.A" or "roster".
func New(scope, def string) *Extractor {
	return &Extractor{def: def, scope: scope}
}

// Default returns the value substituted for missing fields.
func (x *Extractor) Default() string {
	return x.def
}

// Resolve runs Lookup and records a warning when it fails.
func (x *Extractor) Resolve(field string, sel *goquery.Selection, path Path) Result {
	r := Lookup(sel, path)
	if !r.Found {
		x.record(Warning{Scope: x.scope, Field: field, Path: path.String(), Reason: r.Reason})
	}
	return r
}

// Text returns the trimmed text at steps below sel, or the default.
func (x *Extractor) Text(field string, sel *goquery.Selection, steps ...string) string {
	return x.Resolve(field, sel, Select(steps...)).Or(x.def)
}

// Attr returns attribute attr of the element at steps below sel, or the default.
func (x *Extractor) Attr(field string, sel *goquery.Selection, attr string, steps ...string) string {
	return x.Resolve(field, sel, Select(steps...).Attr(attr)).Or(x.def)
}

// Warn records a warning that did not come from a Lookup, e.g. an
// unrecognized stat label.
func (x *Extractor) Warn(field, reason string) {
	x.record(Warning{Scope: x.scope, Field: field, Reason: reason})
}

// Warnings returns the warnings collected so far.
func (x *Extractor) Warnings() []Warning {
	out := make([]Warning, len(x.warnings))
	copy(out, x.warnings)
	return out
}

func (x *Extractor) record(w Warning) {
	x.warnings = append(x.warnings, w)
	logger.IncrCounter("extract.warnings")
	logger.Warn("field extraction fell back to default", logger.Fields{
		"scope":  w.Scope,
		"field":  w.Field,
		"path":   w.Path,
		"reason": w.Reason,
	})
}
