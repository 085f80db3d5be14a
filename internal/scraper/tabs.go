package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/pfrederiksen/fiba-stats/internal/logger"
)

// Tab names a lazily loaded section of a game page.
type Tab string

const (
	TabPreview        Tab = "preview"
	TabPlayByPlay     Tab = "play_by_play"
	TabBoxScore       Tab = "boxscore"
	TabVideos         Tab = "videos"
	TabShotChart      Tab = "shot_chart"
	TabTeamComparison Tab = "team_comparison"
)

// AllTabs lists the tabs a game page is searched for.
var AllTabs = []Tab{
	TabPreview,
	TabPlayByPlay,
	TabBoxScore,
	TabVideos,
	TabShotChart,
	TabTeamComparison,
}

// ErrUnknownTab is an invalid-argument error for tab names outside AllTabs.
var ErrUnknownTab = errors.New("unknown tab")

// Tabs maps each resolvable tab to its fragment URL. Tabs the page does not
// expose are absent.
type Tabs map[Tab]string

// ParseTab validates a tab name.
func ParseTab(name string) (Tab, error) {
	name = strings.TrimSpace(name)
	for _, t := range AllTabs {
		if string(t) == name {
			return t, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownTab, "tab %q (must be one of %v)", name, AllTabs)
}

// AjaxURL returns the data-ajax-url of the tab element for tab. ok is false
// when the page has no such element or the attribute is missing.
func AjaxURL(page *goquery.Selection, tab Tab) (link string, ok bool, err error) {
	if _, err := ParseTab(string(tab)); err != nil {
		return "", false, err
	}
	if page == nil {
		return "", false, nil
	}

	el := page.Find(`li[data-tab-content="` + string(tab) + `"]`).First()
	if el.Length() == 0 {
		return "", false, nil
	}
	link, ok = el.Attr("data-ajax-url")
	link = strings.TrimSpace(link)
	return link, ok && link != "", nil
}

// ResolveTabs looks up every known tab on a game page.
func ResolveTabs(page *goquery.Selection) Tabs {
	tabs := make(Tabs, len(AllTabs))
	for _, tab := range AllTabs {
		link, ok, _ := AjaxURL(page, tab)
		if !ok {
			logger.Debug("tab has no ajax url", logger.Fields{"tab": string(tab)})
			continue
		}
		tabs[tab] = link
	}
	return tabs
}
