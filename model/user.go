// Package model holds the resources exchanged with the party API: users and
// their actor profiles, parties with songs, dashboard statistics, and the
// closed enumerations (party status, capability permission) built on them.
package model

import "strings"

// User is the authenticated account as returned by /auth/me/.
type User struct {
	Id           int           `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	ActorProfile *ActorProfile `json:"actor_profile,omitempty"`
}

// IsAdmin reports whether the user has no actor profile. Administrators have
// implicit access to everything.
func (u *User) IsAdmin() bool {
	return u != nil && u.ActorProfile == nil
}

// DisplayName prefers the real name and falls back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}

// ActorProfile is a performer together with its nine capability flags. The
// flags are independent: no flag implies another.
type ActorProfile struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	Family       string `json:"family"`
	Age          int    `json:"age"`
	Role         string `json:"role"`
	Username     string `json:"username,omitempty"`
	PartiesCount int    `json:"parties_count,omitempty"`

	Capabilities
}

// Capabilities are the nine flags shared by the read and write actor shapes.
type Capabilities struct {
	CanViewUpcomingParties  bool `json:"can_view_upcoming_parties"`
	CanViewCompletedParties bool `json:"can_view_completed_parties"`
	CanViewAllActors        bool `json:"can_view_all_actors"`
	CanManageParties        bool `json:"can_manage_parties"`
	CanManageActors         bool `json:"can_manage_actors"`

	CanAccessDashboard bool `json:"can_access_dashboard"`
	CanAccessActors    bool `json:"can_access_actors"`
	CanAccessParties   bool `json:"can_access_parties"`
	CanAccessSchedule  bool `json:"can_access_schedule"`
}

// DefaultCapabilities are the flags a new actor starts with.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		CanViewUpcomingParties:  true,
		CanViewCompletedParties: true,
		CanAccessDashboard:      true,
	}
}

func (a *ActorProfile) FullName() string {
	return strings.TrimSpace(a.Name + " " + a.Family)
}

// ActorInput is the write shape for creating or patching an actor. Password
// is omitted on edit unless a new one was typed.
type ActorInput struct {
	Name     string `json:"name"`
	Family   string `json:"family"`
	Age      int    `json:"age"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`

	Capabilities
}

// Credentials are exchanged at /auth/login/ for a token pair.
type Credentials struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Registration creates an account at /auth/register/.
type Registration struct {
	Username  string `json:"username" form:"username" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required"`
	Password2 string `json:"password2" form:"password2" binding:"required,eqfield=Password"`
	FirstName string `json:"first_name,omitempty" form:"first_name"`
	LastName  string `json:"last_name,omitempty" form:"last_name"`
}

// TokenPair is the body of a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
