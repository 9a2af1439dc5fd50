package storefront

import (
	"net/url"

	"github.com/matst80/car-finder/pkg/filterstate"
	"github.com/matst80/car-finder/pkg/slug"
	"github.com/matst80/car-finder/pkg/types"
)

// Tab is the condition switch above the results.
type Tab string

const (
	TabAll  Tab = "all"
	TabNew  Tab = "new"
	TabUsed Tab = "used"
)

// TabOf derives the active tab from the condition slug.
func TabOf(condition string) Tab {
	switch condition {
	case string(TabNew):
		return TabNew
	case string(TabUsed):
		return TabUsed
	}
	return TabAll
}

// TabPatch selects the condition for a tab and returns to the first page.
func TabPatch(tab Tab) filterstate.Patch {
	p := filterstate.Patch{Page: filterstate.Set(1)}
	switch tab {
	case TabNew:
		p.Condition = filterstate.Set(filterstate.Label("New"))
	case TabUsed:
		p.Condition = filterstate.Set(filterstate.Label("Used"))
	default:
		p.Condition = filterstate.Set(filterstate.Value{})
	}
	return p
}

type Crumb struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

const searchBase = "/search"

// Breadcrumb builds Home / Search / make / model from the committed slugs.
func Breadcrumb(c types.FilterCriteria) []Crumb {
	crumbs := []Crumb{
		{Label: "Home", Link: "/home"},
		{Label: "Search", Link: searchBase},
	}
	if c.Make != "" {
		crumbs = append(crumbs, Crumb{
			Label: slug.Humanize(c.Make),
			Link:  searchBase + "?make=" + url.QueryEscape(c.Make),
		})
	}
	if c.Model != "" {
		link := searchBase + "?"
		if c.Make != "" {
			link += "make=" + url.QueryEscape(c.Make) + "&"
		}
		crumbs = append(crumbs, Crumb{
			Label: slug.Humanize(c.Model),
			Link:  link + "model=" + url.QueryEscape(c.Model),
		})
	}
	return crumbs
}
