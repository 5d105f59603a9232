package model

import (
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Song is one entry of a party's ordered set list.
type Song struct {
	Title string `json:"title"`
}

// Party is a booked event as returned by the API. Actors arrive unordered;
// songs keep their order.
type Party struct {
	Id               int            `json:"id"`
	Day              string         `json:"day"`
	Date             string         `json:"date"`
	Time             string         `json:"time"`
	Duration         string         `json:"duration"`
	Place            string         `json:"place"`
	Event            string         `json:"event"`
	NumberOfActors   int            `json:"number_of_actors"`
	Actors           []ActorProfile `json:"actors"`
	MeetingDate      string         `json:"meeting_date"`
	MeetingTime      string         `json:"meeting_time"`
	MeetingPlace     string         `json:"meeting_place"`
	TransportVehicle string         `json:"transport_vehicle"`
	CameraMan        string         `json:"camera_man"`
	Notes            string         `json:"notes"`
	DressDetails     string         `json:"dress_details"`
	Songs            []Song         `json:"songs"`
	Status           PartyStatus    `json:"status"`
	StatusDisplay    string         `json:"status_display,omitempty"`
}

// PartyInput is the write shape of a party. ActorIds must name existing
// actors; the API enforces that.
type PartyInput struct {
	Day              string      `json:"day"`
	Date             string      `json:"date"`
	Time             string      `json:"time"`
	Duration         string      `json:"duration"`
	Place            string      `json:"place"`
	Event            string      `json:"event"`
	NumberOfActors   int         `json:"number_of_actors"`
	ActorIds         []int       `json:"actor_ids"`
	MeetingDate      string      `json:"meeting_date"`
	MeetingTime      string      `json:"meeting_time"`
	MeetingPlace     string      `json:"meeting_place"`
	TransportVehicle string      `json:"transport_vehicle"`
	CameraMan        string      `json:"camera_man"`
	Notes            string      `json:"notes"`
	DressDetails     string      `json:"dress_details"`
	Songs            []Song      `json:"songs"`
	Status           PartyStatus `json:"status"`
}

// ActorNames returns "name family" for every actor of the party.
func (p *Party) ActorNames() []string {
	names := make([]string, 0, len(p.Actors))
	for i := range p.Actors {
		names = append(names, p.Actors[i].FullName())
	}
	return names
}

// ActorIds returns the ids of the party's actors.
func (p *Party) ActorIds() []int {
	ids := make([]int, 0, len(p.Actors))
	for _, a := range p.Actors {
		ids = append(ids, a.Id)
	}
	return ids
}

// HasActor reports whether the actor with id performs at the party.
func (p *Party) HasActor(id int) bool {
	for _, a := range p.Actors {
		if a.Id == id {
			return true
		}
	}
	return false
}

// ParsedDate returns the party date, or false when it does not parse.
func (p *Party) ParsedDate() (time.Time, bool) {
	return ParseDate(p.Date)
}

// ParseDate parses the API's date format, accepting a full timestamp too.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// VisibleTo mirrors the API's visibility rule for actors: party managers see
// everything, others only parties they perform at, filtered by the upcoming
// and completed view flags. Cancelled parties are hidden from them.
func (p *Party) VisibleTo(actor *ActorProfile) bool {
	if actor == nil || actor.CanManageParties {
		return true
	}
	return p.HasActor(actor.Id) && p.StatusVisibleTo(actor)
}

// StatusVisibleTo applies only the upcoming and completed view flags, for
// lists that are already limited to the actor's own parties.
func (p *Party) StatusVisibleTo(actor *ActorProfile) bool {
	if actor == nil || actor.CanManageParties {
		return true
	}
	switch {
	case p.Status.IsUpcoming():
		return actor.CanViewUpcomingParties
	case p.Status == StatusDone:
		return actor.CanViewCompletedParties
	}
	return false
}

// SongTitles joins the set list for compact display.
func (p *Party) SongTitles() string {
	titles := make([]string, 0, len(p.Songs))
	for _, s := range p.Songs {
		titles = append(titles, s.Title)
	}
	return strings.Join(titles, ", ")
}

// NumberOfActorsText is the count as the filter compares it.
func (p *Party) NumberOfActorsText() string {
	return strconv.Itoa(p.NumberOfActors)
}
