package model

// Permission names one capability flag of an actor profile. The set is
// closed; PermissionNone means "no specific permission required".
type Permission int

const (
	PermissionNone Permission = iota
	ViewUpcomingParties
	ViewCompletedParties
	ViewAllActors
	ManageParties
	ManageActors
	AccessDashboard
	AccessActors
	AccessParties
	AccessSchedule
)

// Permissions lists every real permission in declaration order.
var Permissions = []Permission{
	ViewUpcomingParties,
	ViewCompletedParties,
	ViewAllActors,
	ManageParties,
	ManageActors,
	AccessDashboard,
	AccessActors,
	AccessParties,
	AccessSchedule,
}

// String returns the wire name of the flag.
func (p Permission) String() string {
	switch p {
	case PermissionNone:
		return ""
	case ViewUpcomingParties:
		return "can_view_upcoming_parties"
	case ViewCompletedParties:
		return "can_view_completed_parties"
	case ViewAllActors:
		return "can_view_all_actors"
	case ManageParties:
		return "can_manage_parties"
	case ManageActors:
		return "can_manage_actors"
	case AccessDashboard:
		return "can_access_dashboard"
	case AccessActors:
		return "can_access_actors"
	case AccessParties:
		return "can_access_parties"
	case AccessSchedule:
		return "can_access_schedule"
	}
	return "unknown"
}

// Granted reads the flag of actor that p names. A nil actor grants nothing;
// administrators are handled by Can.
func (p Permission) Granted(actor *ActorProfile) bool {
	if actor == nil {
		return false
	}
	switch p {
	case PermissionNone:
		return true
	case ViewUpcomingParties:
		return actor.CanViewUpcomingParties
	case ViewCompletedParties:
		return actor.CanViewCompletedParties
	case ViewAllActors:
		return actor.CanViewAllActors
	case ManageParties:
		return actor.CanManageParties
	case ManageActors:
		return actor.CanManageActors
	case AccessDashboard:
		return actor.CanAccessDashboard
	case AccessActors:
		return actor.CanAccessActors
	case AccessParties:
		return actor.CanAccessParties
	case AccessSchedule:
		return actor.CanAccessSchedule
	}
	return false
}

// Set writes the flag that p names.
func (p Permission) Set(actor *Capabilities, v bool) {
	switch p {
	case ViewUpcomingParties:
		actor.CanViewUpcomingParties = v
	case ViewCompletedParties:
		actor.CanViewCompletedParties = v
	case ViewAllActors:
		actor.CanViewAllActors = v
	case ManageParties:
		actor.CanManageParties = v
	case ManageActors:
		actor.CanManageActors = v
	case AccessDashboard:
		actor.CanAccessDashboard = v
	case AccessActors:
		actor.CanAccessActors = v
	case AccessParties:
		actor.CanAccessParties = v
	case AccessSchedule:
		actor.CanAccessSchedule = v
	}
}

// Can reports whether user may use whatever p guards. Users without an actor
// profile are administrators and may use everything.
func Can(user *User, p Permission) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() || p == PermissionNone {
		return true
	}
	return p.Granted(user.ActorProfile)
}
