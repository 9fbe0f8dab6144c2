package source

import (
	"sort"
	"time"
)

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Take returns at most the first n items.
func Take(items []Item, n int) []Item {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

// SortByFollowers orders items by author follower count, highest first.
// Ties keep their upstream order.
func SortByFollowers(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Followers > items[j].Followers
	})
}

// FreshSince keeps items published on or after day.
func FreshSince(items []Item, day time.Time) []Item {
	var out []Item
	for _, it := range items {
		if it.PublishedAt.IsZero() || it.PublishedAt.Before(day) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// FreshOn keeps items published within the calendar day starting at day.
func FreshOn(items []Item, day time.Time) []Item {
	end := day.AddDate(0, 0, 1)
	var out []Item
	for _, it := range FreshSince(items, day) {
		if it.PublishedAt.Before(end) {
			out = append(out, it)
		}
	}
	return out
}
