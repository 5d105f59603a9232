package entity

import (
	"strconv"
	"strings"

	"github.com/partyhub/party-panel/model"
)

// PartyFilter narrows the party list. Every non-empty field must match; an
// empty field matches everything.
type PartyFilter struct {
	Search           string `form:"search"`
	Day              string `form:"day"`
	Date             string `form:"date"`
	Time             string `form:"time"`
	Duration         string `form:"duration"`
	Place            string `form:"place"`
	Event            string `form:"event"`
	NumberOfActors   string `form:"numberOfActors"`
	Actor            string `form:"actor"`
	MeetingTime      string `form:"meetingTime"`
	MeetingDate      string `form:"meetingDate"`
	MeetingPlace     string `form:"meetingPlace"`
	TransportVehicle string `form:"transportVehicle"`
	CameraMan        string `form:"cameraMan"`
	Notes            string `form:"notes"`
	DressDetails     string `form:"dressDetails"`
	Songs            string `form:"songs"`
	Status           string `form:"status"`
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// matchText is the optional-field rule: empty wants nothing.
func matchText(want, got string) bool {
	return want == "" || containsFold(got, want)
}

func anyActor(p *model.Party, want string) bool {
	for i := range p.Actors {
		if containsFold(p.Actors[i].FullName(), want) {
			return true
		}
	}
	return false
}

func anySong(p *model.Party, want string) bool {
	for _, s := range p.Songs {
		if containsFold(s.Title, want) {
			return true
		}
	}
	return false
}

// matchSearch is the free-text search of the party list.
func (f *PartyFilter) matchSearch(p *model.Party) bool {
	q := f.Search
	return containsFold(p.Place, q) ||
		containsFold(p.Day, q) ||
		containsFold(p.CameraMan, q) ||
		containsFold(p.TransportVehicle, q) ||
		containsFold(p.Notes, q) ||
		containsFold(p.DressDetails, q) ||
		anyActor(p, q) ||
		anySong(p, q)
}

// Match reports whether p passes every active field of the filter.
func (f *PartyFilter) Match(p *model.Party) bool {
	if f.Search != "" && !f.matchSearch(p) {
		return false
	}

	// exact
	if f.Date != "" && p.Date != f.Date {
		return false
	}
	if f.MeetingDate != "" && p.MeetingDate != f.MeetingDate {
		return false
	}
	if f.NumberOfActors != "" && strconv.Itoa(p.NumberOfActors) != f.NumberOfActors {
		return false
	}
	if f.Status != "" && string(p.Status) != f.Status {
		return false
	}

	// case sensitive
	if f.Time != "" && !strings.Contains(p.Time, f.Time) {
		return false
	}
	if f.Duration != "" && !strings.Contains(p.Duration, f.Duration) {
		return false
	}
	if f.MeetingTime != "" && !strings.Contains(p.MeetingTime, f.MeetingTime) {
		return false
	}

	if f.Actor != "" && !anyActor(p, f.Actor) {
		return false
	}
	if f.Songs != "" && !anySong(p, f.Songs) {
		return false
	}

	return matchText(f.Day, p.Day) &&
		matchText(f.Place, p.Place) &&
		matchText(f.Event, p.Event) &&
		matchText(f.MeetingPlace, p.MeetingPlace) &&
		matchText(f.TransportVehicle, p.TransportVehicle) &&
		matchText(f.CameraMan, p.CameraMan) &&
		matchText(f.Notes, p.Notes) &&
		matchText(f.DressDetails, p.DressDetails)
}

// IsEmpty reports a filter with no active field.
func (f *PartyFilter) IsEmpty() bool {
	return *f == (PartyFilter{})
}

// FilterParties returns the parties passing f, in their original order.
func FilterParties(parties []model.Party, f PartyFilter) []model.Party {
	out := make([]model.Party, 0, len(parties))
	for i := range parties {
		if f.Match(&parties[i]) {
			out = append(out, parties[i])
		}
	}
	return out
}

// ActorFilter is the actor list search over name, family, role and username.
type ActorFilter struct {
	Search string `form:"search"`
}

func (f *ActorFilter) Match(a *model.ActorProfile) bool {
	q := f.Search
	if q == "" {
		return true
	}
	return containsFold(a.Name, q) ||
		containsFold(a.Family, q) ||
		containsFold(a.Role, q) ||
		containsFold(a.Username, q)
}

func FilterActors(actors []model.ActorProfile, f ActorFilter) []model.ActorProfile {
	out := make([]model.ActorProfile, 0, len(actors))
	for i := range actors {
		if f.Match(&actors[i]) {
			out = append(out, actors[i])
		}
	}
	return out
}

// StatusAll disables the schedule's status filter.
const StatusAll = "all"

// ScheduleFilter narrows the schedule by status, an inclusive date range and
// a search over place, day, actors, notes and camera man.
type ScheduleFilter struct {
	Status string `form:"status"`
	From   string `form:"from"`
	To     string `form:"to"`
	Search string `form:"search"`
}

// ServerStatus is the status forwarded to the API, empty for all.
func (f *ScheduleFilter) ServerStatus() model.PartyStatus {
	if f.Status == "" || f.Status == StatusAll {
		return ""
	}
	return model.PartyStatus(f.Status)
}

func (f *ScheduleFilter) Match(p *model.Party) bool {
	if s := f.ServerStatus(); s != "" && p.Status != s {
		return false
	}

	// Bounds only apply when both sides parse.
	if date, ok := p.ParsedDate(); ok {
		if from, ok := model.ParseDate(f.From); ok && date.Before(from) {
			return false
		}
		if to, ok := model.ParseDate(f.To); ok && date.After(to) {
			return false
		}
	}

	q := f.Search
	if q == "" {
		return true
	}
	return containsFold(p.Place, q) ||
		containsFold(p.Day, q) ||
		anyActor(p, q) ||
		containsFold(p.Notes, q) ||
		containsFold(p.CameraMan, q)
}

func FilterSchedule(parties []model.Party, f ScheduleFilter) []model.Party {
	out := make([]model.Party, 0, len(parties))
	for i := range parties {
		if f.Match(&parties[i]) {
			out = append(out, parties[i])
		}
	}
	return out
}
