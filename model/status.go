package model

// PartyStatus is the lifecycle state of a party.
type PartyStatus string

const (
	StatusPending    PartyStatus = "pending"
	StatusInProgress PartyStatus = "in_progress"
	StatusDone       PartyStatus = "done"
	StatusCancelled  PartyStatus = "cancelled"
)

// Statuses lists the lifecycle states in display order.
var Statuses = []PartyStatus{StatusPending, StatusInProgress, StatusDone, StatusCancelled}

func (s PartyStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// I18nKey is the translation key of the status label.
func (s PartyStatus) I18nKey() string {
	return "party.status." + string(s)
}

// IsUpcoming reports whether the party has not happened yet.
func (s PartyStatus) IsUpcoming() bool {
	return s == StatusPending || s == StatusInProgress
}

// StatusAction is a status change a user can request from a party view.
type StatusAction string

const (
	ActionStartProgress StatusAction = "start_progress"
	ActionMarkDone      StatusAction = "mark_done"
	ActionCancel        StatusAction = "cancel"
	ActionReactivate    StatusAction = "reactivate"
)

// Transition pairs an action with the status it requests.
type Transition struct {
	Action StatusAction `json:"action"`
	Target PartyStatus  `json:"target"`
}

// I18nKey is the translation key of the action's button label.
func (t Transition) I18nKey() string {
	switch t.Action {
	case ActionStartProgress:
		return "party.startProgress"
	case ActionMarkDone:
		return "party.markAsDone"
	case ActionCancel:
		return "party.cancel"
	case ActionReactivate:
		return "party.reactivate"
	}
	return ""
}

// Actions returns the transitions offered for a party in status s. This only
// decides which buttons are shown; the API decides whether a change is legal.
func (s PartyStatus) Actions() []Transition {
	actions := make([]Transition, 0, 2)
	switch s {
	case StatusPending:
		actions = append(actions, Transition{ActionStartProgress, StatusInProgress})
	case StatusInProgress:
		actions = append(actions, Transition{ActionMarkDone, StatusDone})
	}
	if s != StatusCancelled {
		actions = append(actions, Transition{ActionCancel, StatusCancelled})
	} else {
		actions = append(actions, Transition{ActionReactivate, StatusPending})
	}
	return actions
}
