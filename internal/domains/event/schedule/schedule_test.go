package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carnaval/internal/domains/event/model"
	"carnaval/internal/domains/event/schedule"
)

var baseTime = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

func makeEvent(id string, start, end time.Time) model.Event {
	return model.Event{
		ID:        id,
		Name:      "Event " + id,
		Category:  model.CategoryParade,
		StartTime: start,
		EndTime:   end,
	}
}

func TestIsLive(t *testing.T) {
	event := makeEvent("e1", baseTime, baseTime.Add(2*time.Hour))

	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{
			name:     "before start",
			now:      baseTime.Add(-time.Second),
			expected: false,
		},
		{
			name:     "exactly at start",
			now:      baseTime,
			expected: true,
		},
		{
			name:     "in the middle",
			now:      baseTime.Add(time.Hour),
			expected: true,
		},
		{
			name:     "exactly at end",
			now:      baseTime.Add(2 * time.Hour),
			expected: true,
		},
		{
			name:     "after end",
			now:      baseTime.Add(2*time.Hour + time.Second),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schedule.IsLive(event, tt.now))
		})
	}
}

func TestStatus_ExactlyOneStateHolds(t *testing.T) {
	event := makeEvent("e1", baseTime, baseTime.Add(time.Hour))

	instants := []time.Time{
		baseTime.Add(-24 * time.Hour),
		baseTime.Add(-time.Nanosecond),
		baseTime,
		baseTime.Add(30 * time.Minute),
		baseTime.Add(time.Hour),
		baseTime.Add(time.Hour + time.Nanosecond),
		baseTime.Add(24 * time.Hour),
	}

	for _, now := range instants {
		live := schedule.IsLive(event, now)
		upcoming := event.StartTime.After(now)
		past := event.EndTime.Before(now)

		count := 0
		for _, state := range []bool{live, upcoming, past} {
			if state {
				count++
			}
		}

		assert.Equal(t, 1, count, "instant %s must classify into exactly one state", now)
	}
}

func TestLiveUpcomingPast_Filters(t *testing.T) {
	past := makeEvent("past", baseTime.Add(-3*time.Hour), baseTime.Add(-time.Hour))
	live := makeEvent("live", baseTime.Add(-time.Hour), baseTime.Add(time.Hour))
	upcoming := makeEvent("upcoming", baseTime.Add(time.Hour), baseTime.Add(3*time.Hour))
	endingNow := makeEvent("ending-now", baseTime.Add(-time.Hour), baseTime)

	events := []model.Event{past, live, upcoming, endingNow}

	liveEvents := schedule.Live(events, baseTime)
	assert.Len(t, liveEvents, 2)
	assert.Equal(t, "live", liveEvents[0].ID)
	assert.Equal(t, "ending-now", liveEvents[1].ID, "an event at its end boundary is live, not past")

	upcomingEvents := schedule.Upcoming(events, baseTime)
	assert.Len(t, upcomingEvents, 1)
	assert.Equal(t, "upcoming", upcomingEvents[0].ID)

	pastEvents := schedule.Past(events, baseTime)
	assert.Len(t, pastEvents, 1)
	assert.Equal(t, "past", pastEvents[0].ID)
}

func TestFilterByDateRange(t *testing.T) {
	event := makeEvent("e1", baseTime, baseTime.Add(2*time.Hour))

	tests := []struct {
		name       string
		rangeStart time.Time
		rangeEnd   time.Time
		expected   int
	}{
		{
			name:       "range fully before",
			rangeStart: baseTime.Add(-4 * time.Hour),
			rangeEnd:   baseTime.Add(-2 * time.Hour),
			expected:   0,
		},
		{
			name:       "range end touches event start",
			rangeStart: baseTime.Add(-2 * time.Hour),
			rangeEnd:   baseTime,
			expected:   1,
		},
		{
			name:       "range inside event",
			rangeStart: baseTime.Add(30 * time.Minute),
			rangeEnd:   baseTime.Add(time.Hour),
			expected:   1,
		},
		{
			name:       "range start touches event end",
			rangeStart: baseTime.Add(2 * time.Hour),
			rangeEnd:   baseTime.Add(4 * time.Hour),
			expected:   1,
		},
		{
			name:       "range fully after",
			rangeStart: baseTime.Add(3 * time.Hour),
			rangeEnd:   baseTime.Add(4 * time.Hour),
			expected:   0,
		},
		{
			name:       "zero duration range at event start",
			rangeStart: baseTime,
			rangeEnd:   baseTime,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := schedule.FilterByDateRange([]model.Event{event}, tt.rangeStart, tt.rangeEnd)
			assert.Len(t, result, tt.expected)
		})
	}
}

func TestSortByStartTime_Stable(t *testing.T) {
	first := makeEvent("first", baseTime, baseTime.Add(time.Hour))
	second := makeEvent("second", baseTime, baseTime.Add(2*time.Hour))
	third := makeEvent("third", baseTime, baseTime.Add(3*time.Hour))
	earlier := makeEvent("earlier", baseTime.Add(-time.Hour), baseTime)

	events := []model.Event{first, second, third, earlier}

	ascending := schedule.SortByStartTime(events, true)
	assert.Equal(t, []string{"earlier", "first", "second", "third"}, eventIDs(ascending))

	descending := schedule.SortByStartTime(events, false)
	assert.Equal(t, []string{"first", "second", "third", "earlier"}, eventIDs(descending))

	// Input order untouched.
	assert.Equal(t, []string{"first", "second", "third", "earlier"}, eventIDs(events))
}

func TestTimeUntil_NeverNegative(t *testing.T) {
	event := makeEvent("e1", baseTime, baseTime.Add(time.Hour))

	assert.Equal(t, 2*time.Hour, schedule.TimeUntil(event, baseTime.Add(-2*time.Hour)))
	assert.Equal(t, time.Duration(0), schedule.TimeUntil(event, baseTime))
	assert.Equal(t, time.Duration(0), schedule.TimeUntil(event, baseTime.Add(30*time.Minute)))
	assert.Equal(t, time.Duration(0), schedule.TimeUntil(event, baseTime.Add(48*time.Hour)))
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected schedule.Countdown
	}{
		{
			name:     "zero",
			duration: 0,
			expected: schedule.Countdown{},
		},
		{
			name:     "negative floors to zero",
			duration: -time.Hour,
			expected: schedule.Countdown{},
		},
		{
			name:     "seconds only",
			duration: 59 * time.Second,
			expected: schedule.Countdown{Seconds: 59},
		},
		{
			name:     "sub-second truncates",
			duration: 900 * time.Millisecond,
			expected: schedule.Countdown{},
		},
		{
			name:     "full decomposition",
			duration: 2*24*time.Hour + 23*time.Hour + 59*time.Minute + 59*time.Second,
			expected: schedule.Countdown{Days: 2, Hours: 23, Minutes: 59, Seconds: 59},
		},
		{
			name:     "exact day rolls over",
			duration: 24 * time.Hour,
			expected: schedule.Countdown{Days: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schedule.FormatCountdown(tt.duration))
		})
	}
}

func TestSearch(t *testing.T) {
	events := []model.Event{
		{ID: "e1", Name: "Grand Parade", Description: "Opening march", Tags: []string{"family"}},
		{ID: "e2", Name: "Samba Night", Description: "Late night concert", Tags: []string{"music", "dance"}},
		{ID: "e3", Name: "Food Fair", Description: "Street food stalls", Tags: []string{"food"}},
	}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "empty query matches all",
			query:    "",
			expected: []string{"e1", "e2", "e3"},
		},
		{
			name:     "matches name case-insensitively",
			query:    "PARADE",
			expected: []string{"e1"},
		},
		{
			name:     "matches description",
			query:    "night",
			expected: []string{"e2"},
		},
		{
			name:     "matches tag",
			query:    "dance",
			expected: []string{"e2"},
		},
		{
			name:     "substring across fields",
			query:    "food",
			expected: []string{"e3"},
		},
		{
			name:     "no match",
			query:    "fireworks",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eventIDs(schedule.Search(events, tt.query)))
		})
	}
}

func TestGroupByCategory_Partition(t *testing.T) {
	events := []model.Event{
		{ID: "e1", Category: model.CategoryParade},
		{ID: "e2", Category: model.CategoryConcert},
		{ID: "e3", Category: model.CategoryParade},
		{ID: "e4", Category: model.CategoryFood},
	}

	groups := schedule.GroupByCategory(events)

	total := 0
	for _, group := range groups {
		total += len(group)
	}

	assert.Equal(t, len(events), total)
	assert.Equal(t, []string{"e1", "e3"}, eventIDs(groups[model.CategoryParade]))
	assert.Equal(t, []string{"e2"}, eventIDs(groups[model.CategoryConcert]))
	assert.Equal(t, []string{"e4"}, eventIDs(groups[model.CategoryFood]))
}

func TestMalformedEvent_DoesNotPanic(t *testing.T) {
	// End before start is a data-integrity violation upstream; the classifier
	// still computes deterministically.
	malformed := makeEvent("bad", baseTime, baseTime.Add(-time.Hour))

	assert.NotPanics(t, func() {
		schedule.IsLive(malformed, baseTime)
		schedule.Status(malformed, baseTime)
		schedule.Live([]model.Event{malformed}, baseTime)
		schedule.FilterByDateRange([]model.Event{malformed}, baseTime, baseTime.Add(time.Hour))
	})

	assert.False(t, schedule.IsLive(malformed, baseTime.Add(-30*time.Minute)))
}

func eventIDs(events []model.Event) []string {
	ids := []string{}
	for _, event := range events {
		ids = append(ids, event.ID)
	}

	return ids
}
