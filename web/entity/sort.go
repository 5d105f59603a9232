package entity

import (
	"sort"
	"strconv"

	"github.com/partyhub/party-panel/model"
)

// Sort orders a list by one key.
type Sort struct {
	Key  string `form:"sort"`
	Desc bool   `form:"desc"`
}

// Toggle returns the sort after clicking key: the same key flips direction,
// another key starts ascending.
func (s Sort) Toggle(key string) Sort {
	if s.Key == key {
		return Sort{Key: key, Desc: !s.Desc}
	}
	return Sort{Key: key}
}

// Party sort keys. Date keys compare as dates.
var partySortKeys = map[string]func(*model.Party) string{
	"date":              func(p *model.Party) string { return p.Date },
	"meeting_date":      func(p *model.Party) string { return p.MeetingDate },
	"day":               func(p *model.Party) string { return p.Day },
	"time":              func(p *model.Party) string { return p.Time },
	"duration":          func(p *model.Party) string { return p.Duration },
	"place":             func(p *model.Party) string { return p.Place },
	"event":             func(p *model.Party) string { return p.Event },
	"number_of_actors":  func(p *model.Party) string { return strconv.Itoa(p.NumberOfActors) },
	"meeting_time":      func(p *model.Party) string { return p.MeetingTime },
	"meeting_place":     func(p *model.Party) string { return p.MeetingPlace },
	"transport_vehicle": func(p *model.Party) string { return p.TransportVehicle },
	"camera_man":        func(p *model.Party) string { return p.CameraMan },
	"status":            func(p *model.Party) string { return string(p.Status) },
}

func isDateKey(key string) bool {
	return key == "date" || key == "meeting_date"
}

// IsPartySortKey reports whether key can order parties.
func IsPartySortKey(key string) bool {
	_, ok := partySortKeys[key]
	return ok
}

// SortParties sorts a copy of parties. Unknown keys keep the input order.
// Unparsable dates go last in either direction.
func SortParties(parties []model.Party, s Sort) []model.Party {
	out := make([]model.Party, len(parties))
	copy(out, parties)

	field, ok := partySortKeys[s.Key]
	if !ok {
		return out
	}

	if isDateKey(s.Key) {
		sort.SliceStable(out, func(i, j int) bool {
			a, aok := model.ParseDate(field(&out[i]))
			b, bok := model.ParseDate(field(&out[j]))
			switch {
			case !aok || !bok:
				return aok && !bok
			case s.Desc:
				return a.After(b)
			}
			return a.Before(b)
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := field(&out[i]), field(&out[j])
		if s.Desc {
			return a > b
		}
		return a < b
	})
	return out
}

// SortDir is the state of a tri-state table column.
type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

// TableSort is the generic table's column sort: asc, then desc, then off.
type TableSort struct {
	Key string
	Dir SortDir
}

// Next returns the state after clicking key.
func (t TableSort) Next(key string) TableSort {
	if t.Key != key || t.Dir == SortNone {
		return TableSort{Key: key, Dir: SortAsc}
	}
	if t.Dir == SortAsc {
		return TableSort{Key: key, Dir: SortDesc}
	}
	return TableSort{}
}

// Active reports whether the table is sorted at all.
func (t TableSort) Active() bool {
	return t.Key != "" && t.Dir != SortNone
}

// Sort returns the equivalent single-key sort, false when off.
func (t TableSort) Sort() (Sort, bool) {
	if !t.Active() {
		return Sort{}, false
	}
	return Sort{Key: t.Key, Desc: t.Dir == SortDesc}, true
}

// SortActors orders actors by a table sort. Missing values go last.
func SortActors(actors []model.ActorProfile, t TableSort) []model.ActorProfile {
	out := make([]model.ActorProfile, len(actors))
	copy(out, actors)
	if !t.Active() {
		return out
	}

	var field func(*model.ActorProfile) string
	switch t.Key {
	case "name":
		field = func(a *model.ActorProfile) string { return a.Name }
	case "family":
		field = func(a *model.ActorProfile) string { return a.Family }
	case "role":
		field = func(a *model.ActorProfile) string { return a.Role }
	case "username":
		field = func(a *model.ActorProfile) string { return a.Username }
	case "age":
		sort.SliceStable(out, func(i, j int) bool {
			if t.Dir == SortDesc {
				return out[i].Age > out[j].Age
			}
			return out[i].Age < out[j].Age
		})
		return out
	case "parties_count":
		sort.SliceStable(out, func(i, j int) bool {
			if t.Dir == SortDesc {
				return out[i].PartiesCount > out[j].PartiesCount
			}
			return out[i].PartiesCount < out[j].PartiesCount
		})
		return out
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := field(&out[i]), field(&out[j])
		switch {
		case a == "" || b == "":
			return a != "" && b == ""
		case t.Dir == SortDesc:
			return a > b
		}
		return a < b
	})
	return out
}

// ParseTableSort reads "key" and "dir" (asc|desc) query values.
func ParseTableSort(key, dir string) TableSort {
	switch {
	case key == "":
		return TableSort{}
	case dir == "desc":
		return TableSort{Key: key, Dir: SortDesc}
	case dir == "asc":
		return TableSort{Key: key, Dir: SortAsc}
	}
	return TableSort{}
}

// DirParam is the query value of the state.
func (t TableSort) DirParam() string {
	switch t.Dir {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	}
	return ""
}
