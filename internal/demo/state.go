package demo

import (
	"slices"

	"github.com/samber/lo"

	"github.com/vango-dev/viewkit/pkg/optics"
)

// Filter selects which items are listed.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterDone}

// Match reports whether it is listed under f.
func (f Filter) Match(it Item) bool {
	switch f {
	case FilterActive:
		return !it.Done
	case FilterDone:
		return it.Done
	default:
		return true
	}
}

// Item is one todo entry.
type Item struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`
}

// State is the whole application state.
type State struct {
	Title  string `json:"title" yaml:"title"`
	Filter Filter `json:"filter" yaml:"filter"`
	Items  []Item `json:"items" yaml:"items"`
}

// Initial returns the state of a fresh list.
func Initial() State {
	return State{Title: "Todos", Filter: FilterAll}
}

// Equal reports whether two states render identically.
func Equal(a, b State) bool {
	return a.Title == b.Title && a.Filter == b.Filter && slices.Equal(a.Items, b.Items)
}

func nextID(items []Item) int {
	return lo.Reduce(items, func(max int, it Item, _ int) int {
		if it.ID > max {
			return it.ID
		}
		return max
	}, 0) + 1
}

var (
	titleLens = optics.NewLens(
		func(s State) string { return s.Title },
		func(s State, title string) State { s.Title = title; return s },
	)
	filterLens = optics.NewLens(
		func(s State) Filter { return s.Filter },
		func(s State, f Filter) State { s.Filter = f; return s },
	)
	itemsLens = optics.NewLens(
		func(s State) []Item { return s.Items },
		func(s State, items []Item) State { s.Items = items; return s },
	)
	itemTitleLens = optics.NewLens(
		func(it Item) string { return it.Title },
		func(it Item, title string) Item { it.Title = title; return it },
	)
	doneLens = optics.NewLens(
		func(it Item) bool { return it.Done },
		func(it Item, done bool) Item { it.Done = done; return it },
	)

	// everyItem focuses on each item.
	everyItem = optics.ComposeLensTraversal(itemsLens, optics.Each[Item]())

	// everyDone focuses on the done flag of each item.
	everyDone = optics.ComposeTraversalLens(everyItem, doneLens)

	// completed focuses on the items that are done. Only lawful for updates
	// that keep them done, so reopening goes through everyDone.
	completed = optics.ComposeLensTraversal(itemsLens, optics.Filtered(func(it Item) bool { return it.Done }))
)

// itemByID focuses on the item with the given ID, if any.
func itemByID(id int) optics.Optional[State, Item] {
	return optics.ComposeLensOptional(itemsLens, optics.Find(func(it Item) bool { return it.ID == id }))
}
