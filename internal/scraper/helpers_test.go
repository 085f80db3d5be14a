package scraper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fiba-stats/internal/extract"
)

const fixtureDir = "../../testdata/fixtures"

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir, name))
	if err != nil {
		t.Fatalf("failed to load test fixture %s: %v", name, err)
	}
	return data
}

func fixtureDoc(t *testing.T, name string) *goquery.Selection {
	t.Helper()
	return htmlDoc(t, string(loadFixture(t, name)))
}

func htmlDoc(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc.Selection
}

func hasWarning(warnings []extract.Warning, field string) bool {
	for _, w := range warnings {
		if w.Field == field {
			return true
		}
	}
	return false
}
