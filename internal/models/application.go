package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// CanTransition reports whether a review decision may move an application
// from s to next. Only pending applications can be decided.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	if s != ApplicationPending {
		return false
	}

	return next == ApplicationApproved || next == ApplicationRejected
}

type Application struct {
	ID               string            `json:"id"`
	EventID          string            `json:"event_id"`
	ProjectName      string            `json:"project_name"`
	University       string            `json:"university"`
	GroupSize        int               `json:"group_size"`
	Members          Members           `json:"full_names"`
	LeaderEmail      string            `json:"group_leader_email"`
	LeaderPhone      string            `json:"group_leader_phone"`
	ProblemStatement string            `json:"problem_statement"`
	Solution         string            `json:"solution"`
	Status           ApplicationStatus `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
}

// Members is the ordered list of team member names; the first one leads the team.
//
// The backend keeps the list as a JSON-encoded string column, so decoding
// accepts both a plain array and a string holding an array.
type Members []string

func (m *Members) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*m = list
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("full_names: %w", err)
	}
	if encoded == "" {
		*m = nil
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &list); err != nil {
		return fmt.Errorf("full_names: %w", err)
	}
	*m = list

	return nil
}

// Encode returns the column representation of the member list.
func (m Members) Encode() (string, error) {
	list := []string(m)
	if list == nil {
		list = []string{}
	}

	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (m Members) Leader() string {
	if len(m) == 0 {
		return ""
	}

	return m[0]
}
