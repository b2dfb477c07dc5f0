package summary

import (
	"time"

	"eventRegistry/internal/models"
)

type Summary struct {
	TotalApplications int            `json:"total_applications"`
	OpenEvents        int            `json:"open_events"`
	UpcomingEvents    int            `json:"upcoming_events"`
	AvgGroupSize      float64        `json:"avg_group_size"`
	PerEvent          map[string]int `json:"applications_per_event"`
}

// Build aggregates dashboard statistics. A non-empty eventID restricts the
// application figures to that event; event counts always cover every event.
func Build(events []models.Event, apps []models.Application, eventID string, now time.Time) Summary {
	s := Summary{PerEvent: make(map[string]int, len(events))}

	for _, e := range events {
		s.PerEvent[e.ID] = 0

		switch e.StatusAt(now) {
		case models.EventOpen:
			s.OpenEvents++
		case models.EventUpcoming:
			s.UpcomingEvents++
		}
	}

	var groupTotal int
	for _, a := range apps {
		s.PerEvent[a.EventID]++

		if eventID != "" && a.EventID != eventID {
			continue
		}

		s.TotalApplications++
		groupTotal += a.GroupSize
	}

	s.AvgGroupSize = AverageGroupSize(groupTotal, s.TotalApplications)

	return s
}

func AverageGroupSize(total, count int) float64 {
	if count == 0 {
		return 0
	}

	return float64(total) / float64(count)
}
