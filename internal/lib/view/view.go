// Package view holds the navigation state machine of the registration tool.
//
//	registration --navigate(admin), logged out--> login
//	login        --login-->                      admin
//	login        --cancel-->                     registration
//	admin        --logout-->                     registration
package view

import (
	"errors"
	"fmt"
)

type View string

const (
	Registration View = "registration"
	Login        View = "login"
	Admin        View = "admin"
)

type Action string

const (
	ActionNavigate Action = "navigate"
	ActionLogin    Action = "login"
	ActionLogout   Action = "logout"
	ActionCancel   Action = "cancel"
)

var (
	ErrUnknownView       = errors.New("unknown view")
	ErrUnknownAction     = errors.New("unknown action")
	ErrInvalidTransition = errors.New("invalid transition")
)

type State struct {
	Current  View `json:"view"`
	LoggedIn bool `json:"logged_in"`
}

func Initial() State {
	return State{Current: Registration}
}

func (v View) Valid() bool {
	switch v {
	case Registration, Login, Admin:
		return true
	}

	return false
}

// Apply returns the state reached from s by action. target is only used
// by ActionNavigate, which can only aim at the registration or admin view.
func (s State) Apply(action Action, target View) (State, error) {
	if !s.Current.Valid() {
		return s, fmt.Errorf("%w: %q", ErrUnknownView, s.Current)
	}

	switch action {
	case ActionNavigate:
		return s.navigate(target)
	case ActionLogin:
		if s.Current != Login {
			return s, fmt.Errorf("%w: login from %s", ErrInvalidTransition, s.Current)
		}
		return State{Current: Admin, LoggedIn: true}, nil
	case ActionLogout:
		if !s.LoggedIn {
			return s, fmt.Errorf("%w: logout while logged out", ErrInvalidTransition)
		}
		return State{Current: Registration}, nil
	case ActionCancel:
		if s.Current != Login {
			return s, fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, s.Current)
		}
		return State{Current: Registration, LoggedIn: s.LoggedIn}, nil
	}

	return s, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

func (s State) navigate(target View) (State, error) {
	switch target {
	case Registration:
		return State{Current: Registration, LoggedIn: s.LoggedIn}, nil
	case Admin:
		if !s.LoggedIn {
			return State{Current: Login}, nil
		}
		return State{Current: Admin, LoggedIn: true}, nil
	case Login:
		return s, fmt.Errorf("%w: navigate to login", ErrInvalidTransition)
	}

	return s, fmt.Errorf("%w: %q", ErrUnknownView, target)
}
