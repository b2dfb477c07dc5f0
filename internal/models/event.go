package models

import "time"

type EventStatus string

const (
	EventUpcoming EventStatus = "upcoming"
	EventOpen     EventStatus = "open"
	EventClosed   EventStatus = "closed"
)

type Event struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"application_start_date"`
	EndDate        time.Time `json:"application_end_date"`
	ManuallyClosed bool      `json:"is_manually_closed"`
}

// StatusAt derives the registration status of the event at now.
// Both window boundaries count as open.
func (e Event) StatusAt(now time.Time) EventStatus {
	if e.ManuallyClosed || now.After(e.EndDate) {
		return EventClosed
	}
	if now.Before(e.StartDate) {
		return EventUpcoming
	}

	return EventOpen
}

// EventView is an event as shown to clients, with its status resolved.
type EventView struct {
	Event
	Status EventStatus `json:"status"`
}

func NewEventView(e Event, now time.Time) EventView {
	return EventView{Event: e, Status: e.StatusAt(now)}
}

func NewEventViews(events []Event, now time.Time) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, NewEventView(e, now))
	}

	return views
}
