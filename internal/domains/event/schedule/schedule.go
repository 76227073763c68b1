// Package schedule classifies events against a reference time and derives
// countdown figures. Every function is pure: the clock is always injected, so
// callers and tests never depend on wall-clock time.
package schedule

import (
	"sort"
	"strings"
	"time"

	"carnaval/internal/domains/event/model"
)

// IsLive reports whether the event window contains now. Both bounds are
// inclusive: an event is live at the exact instant it starts or ends.
func IsLive(event model.Event, now time.Time) bool {
	return !now.Before(event.StartTime) && !now.After(event.EndTime)
}

// Live returns the events currently running, preserving input order.
func Live(events []model.Event, now time.Time) []model.Event {
	result := []model.Event{}

	for _, event := range events {
		if IsLive(event, now) {
			result = append(result, event)
		}
	}

	return result
}

// Upcoming returns events that start strictly after now, preserving input order.
func Upcoming(events []model.Event, now time.Time) []model.Event {
	result := []model.Event{}

	for _, event := range events {
		if event.StartTime.After(now) {
			result = append(result, event)
		}
	}

	return result
}

// Past returns events that ended strictly before now, preserving input order.
// An event sitting exactly on its end boundary is still live, not past.
func Past(events []model.Event, now time.Time) []model.Event {
	result := []model.Event{}

	for _, event := range events {
		if event.EndTime.Before(now) {
			result = append(result, event)
		}
	}

	return result
}

// Status classifies a single event as live, upcoming, or past. Exactly one
// state holds for any reference time.
func Status(event model.Event, now time.Time) string {
	switch {
	case IsLive(event, now):
		return model.StatusLive
	case event.StartTime.After(now):
		return model.StatusUpcoming
	default:
		return model.StatusPast
	}
}

// FilterByDateRange returns events whose window intersects [rangeStart,
// rangeEnd] with inclusive boundaries. This is the lenient display-side
// overlap; booking inventory uses a strict test instead.
func FilterByDateRange(events []model.Event, rangeStart, rangeEnd time.Time) []model.Event {
	result := []model.Event{}

	for _, event := range events {
		if !event.StartTime.After(rangeEnd) && !event.EndTime.Before(rangeStart) {
			result = append(result, event)
		}
	}

	return result
}

// SortByStartTime returns a copy of events ordered by start time. The sort is
// stable: events with equal start times keep their relative input order.
func SortByStartTime(events []model.Event, ascending bool) []model.Event {
	sorted := make([]model.Event, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].StartTime.Before(sorted[j].StartTime)
		}

		return sorted[i].StartTime.After(sorted[j].StartTime)
	})

	return sorted
}

// TimeUntil returns how long until the event starts, floored at zero once the
// event has started.
func TimeUntil(event model.Event, now time.Time) time.Duration {
	until := event.StartTime.Sub(now)
	if until < 0 {
		return 0
	}

	return until
}

// Countdown is an integer decomposition of a duration for display.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// FormatCountdown decomposes a duration using floor division throughout.
// Hours is 0-23, minutes and seconds 0-59. Negative durations decompose to
// all zeros.
func FormatCountdown(d time.Duration) Countdown {
	if d < 0 {
		d = 0
	}

	totalSeconds := int(d / time.Second)

	return Countdown{
		Days:    totalSeconds / (24 * 60 * 60),
		Hours:   totalSeconds / (60 * 60) % 24,
		Minutes: totalSeconds / 60 % 60,
		Seconds: totalSeconds % 60,
	}
}

// Search returns events whose name, description, or any tag contains the query
// case-insensitively. An empty query matches every event.
func Search(events []model.Event, query string) []model.Event {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		result := make([]model.Event, len(events))
		copy(result, events)

		return result
	}

	result := []model.Event{}

	for _, event := range events {
		if matchesQuery(event, needle) {
			result = append(result, event)
		}
	}

	return result
}

func matchesQuery(event model.Event, needle string) bool {
	if strings.Contains(strings.ToLower(event.Name), needle) {
		return true
	}

	if strings.Contains(strings.ToLower(event.Description), needle) {
		return true
	}

	for _, tag := range event.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}

	return false
}

// GroupByCategory partitions events by their own category. Every event lands
// in exactly one group, so group sizes always sum to the input length.
func GroupByCategory(events []model.Event) map[string][]model.Event {
	groups := map[string][]model.Event{}

	for _, event := range events {
		groups[event.Category] = append(groups[event.Category], event)
	}

	return groups
}
