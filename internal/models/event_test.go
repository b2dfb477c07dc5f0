package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventStatusAt(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		closed   bool
		now      time.Time
		expected EventStatus
	}{
		{name: "Inside window", now: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), expected: EventOpen},
		{name: "At start", now: start, expected: EventOpen},
		{name: "At end", now: end, expected: EventOpen},
		{name: "Before start", now: start.Add(-time.Nanosecond), expected: EventUpcoming},
		{name: "After end", now: end.Add(time.Nanosecond), expected: EventClosed},
		{name: "Manually closed inside window", closed: true, now: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), expected: EventClosed},
		{name: "Manually closed before start", closed: true, now: start.AddDate(0, -1, 0), expected: EventClosed},
		{name: "Manually closed after end", closed: true, now: end.AddDate(1, 0, 0), expected: EventClosed},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := Event{StartDate: start, EndDate: end, ManuallyClosed: tc.closed}
			assert.Equal(t, tc.expected, e.StatusAt(tc.now))
		})
	}
}

func TestNewEventViews(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "a", StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1)},
		{ID: "b", StartDate: now.AddDate(0, 0, 1), EndDate: now.AddDate(0, 0, 2)},
	}

	views := NewEventViews(events, now)

	assert.Len(t, views, 2)
	assert.Equal(t, EventOpen, views[0].Status)
	assert.Equal(t, EventUpcoming, views[1].Status)
	assert.Equal(t, "b", views[1].ID)

	assert.NotNil(t, NewEventViews(nil, now))
}
