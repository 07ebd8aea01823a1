package session

import "github.com/Freeeeeet/sampark_kvk/internal/model"

// Status состояние сессии
type Status int

const (
	StatusLoading Status = iota
	StatusSignedOut
	StatusSignedIn
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSignedOut:
		return "signed_out"
	case StatusSignedIn:
		return "signed_in"
	default:
		return "unknown"
	}
}

// State состояние сессии; Profile заполнен только в StatusSignedIn
type State struct {
	Status  Status
	Profile *model.UserProfile
}

func Loading() State { return State{Status: StatusLoading} }

func SignedOut() State { return State{Status: StatusSignedOut} }

func SignedIn(p model.UserProfile) State {
	return State{Status: StatusSignedIn, Profile: &p}
}

func (s State) IsSignedIn() bool { return s.Status == StatusSignedIn && s.Profile != nil }
