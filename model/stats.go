package model

// DashboardStats is the /auth/dashboard/stats/ payload. Administrators get the
// global counters and top actors; actors get the my_* counters.
type DashboardStats struct {
	TotalActors      int `json:"total_actors,omitempty"`
	TotalParties     int `json:"total_parties,omitempty"`
	UpcomingParties  int `json:"upcoming_parties,omitempty"`
	CompletedParties int `json:"completed_parties,omitempty"`

	MyTotalParties     int `json:"my_total_parties,omitempty"`
	MyUpcomingParties  int `json:"my_upcoming_parties,omitempty"`
	MyCompletedParties int `json:"my_completed_parties,omitempty"`

	TopActors          []ActorPartyCount `json:"top_actors,omitempty"`
	MonthlyActivity    []MonthlyCount    `json:"monthly_activity,omitempty"`
	StatusDistribution []StatusCount     `json:"status_distribution,omitempty"`
}

type ActorPartyCount struct {
	Name       string `json:"name"`
	Family     string `json:"family"`
	PartyCount int    `json:"party_count"`
}

type MonthlyCount struct {
	Month   string `json:"month"`
	Parties int    `json:"parties"`
}

type StatusCount struct {
	Status PartyStatus `json:"status"`
	Count  int         `json:"count"`
}

// Cards are the three headline counters shown on the dashboard, picked by
// whether the viewer is an administrator.
type Cards struct {
	Total     int
	Upcoming  int
	Third     int
	ThirdKey  string
	AdminView bool
}

// CardsFor selects the counters relevant to the viewer.
func (s *DashboardStats) CardsFor(admin bool) Cards {
	if admin {
		return Cards{
			Total:     s.TotalParties,
			Upcoming:  s.UpcomingParties,
			Third:     s.TotalActors,
			ThirdKey:  "dashboard.totalActors",
			AdminView: true,
		}
	}
	return Cards{
		Total:    s.MyTotalParties,
		Upcoming: s.MyUpcomingParties,
		Third:    s.MyCompletedParties,
		ThirdKey: "dashboard.completedParties",
	}
}
