package entity

import (
	"testing"

	"github.com/partyhub/party-panel/model"
	"github.com/stretchr/testify/assert"
)

func fixtures() []model.Party {
	return []model.Party{
		{
			Id: 1, Day: "Friday", Date: "2025-03-14", Time: "18:30", Duration: "02:00:00",
			Place: "Grand Hall", Event: "Wedding", NumberOfActors: 2,
			Actors:      []model.ActorProfile{{Id: 1, Name: "Ali", Family: "Rezaei"}},
			MeetingDate: "2025-03-14", MeetingTime: "16:00", MeetingPlace: "Office",
			TransportVehicle: "Van", CameraMan: "Hassan", Notes: "Bring lights",
			DressDetails: "Black suits", Songs: []model.Song{{Title: "Happy Day"}},
			Status: model.StatusPending,
		},
		{
			Id: 2, Day: "Saturday", Date: "2025-04-01", Time: "20:00", Duration: "03:30:00",
			Place: "Garden", Event: "Birthday", NumberOfActors: 1,
			Actors:      []model.ActorProfile{{Id: 2, Name: "Sara", Family: "Karimi"}},
			MeetingDate: "2025-04-01", MeetingTime: "18:00", MeetingPlace: "Garden gate",
			TransportVehicle: "Bus", CameraMan: "Omid", Notes: "",
			DressDetails: "Costumes", Songs: []model.Song{{Title: "Birthday Song"}},
			Status: model.StatusDone,
		},
	}
}

func ids(parties []model.Party) []int {
	out := make([]int, 0, len(parties))
	for _, p := range parties {
		out = append(out, p.Id)
	}
	return out
}

func TestPartyFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter PartyFilter
		want   []int
	}{
		{"empty", PartyFilter{}, []int{1, 2}},
		{"search place folds case", PartyFilter{Search: "grand"}, []int{1}},
		{"search actor full name", PartyFilter{Search: "sara kar"}, []int{2}},
		{"search song", PartyFilter{Search: "happy"}, []int{1}},
		{"search skips event", PartyFilter{Search: "wedding"}, []int{}},
		{"date exact", PartyFilter{Date: "2025-04-01"}, []int{2}},
		{"date no prefix", PartyFilter{Date: "2025-04"}, []int{}},
		{"time case sensitive substring", PartyFilter{Time: "18:"}, []int{1}},
		{"number exact", PartyFilter{NumberOfActors: "2"}, []int{1}},
		{"status exact", PartyFilter{Status: "done"}, []int{2}},
		{"status case sensitive", PartyFilter{Status: "Done"}, []int{}},
		{"actor", PartyFilter{Actor: "ALI"}, []int{1}},
		{"songs", PartyFilter{Songs: "birthday"}, []int{2}},
		{"conjunctive", PartyFilter{Place: "garden", CameraMan: "hassan"}, []int{}},
		{"conjunctive match", PartyFilter{Place: "garden", CameraMan: "omid", Event: "birth"}, []int{2}},
		{"meeting place", PartyFilter{MeetingPlace: "gate"}, []int{2}},
		{"dress", PartyFilter{DressDetails: "suits"}, []int{1}},
		{"vehicle", PartyFilter{TransportVehicle: "van"}, []int{1}},
		{"notes", PartyFilter{Notes: "lights"}, []int{1}},
		{"duration", PartyFilter{Duration: "03:30"}, []int{2}},
		{"meeting date", PartyFilter{MeetingDate: "2025-03-14"}, []int{1}},
		{"meeting time", PartyFilter{MeetingTime: "16"}, []int{1}},
		{"day", PartyFilter{Day: "sat"}, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterParties(fixtures(), tt.filter)))
		})
	}
}

func TestPartyFilterIsEmpty(t *testing.T) {
	assert.True(t, (&PartyFilter{}).IsEmpty())
	assert.False(t, (&PartyFilter{Songs: "x"}).IsEmpty())
}

func TestActorFilter(t *testing.T) {
	actors := []model.ActorProfile{
		{Id: 1, Name: "Ali", Family: "Rezaei", Role: "Singer", Username: "ali"},
		{Id: 2, Name: "Sara", Family: "Karimi", Role: "Dancer", Username: "skarimi"},
	}

	assert.Len(t, FilterActors(actors, ActorFilter{}), 2)
	assert.Equal(t, 2, FilterActors(actors, ActorFilter{Search: "dance"})[0].Id)
	assert.Equal(t, 2, FilterActors(actors, ActorFilter{Search: "SKAR"})[0].Id)
	assert.Empty(t, FilterActors(actors, ActorFilter{Search: "drummer"}))
}

func TestScheduleFilter(t *testing.T) {
	withBadDate := append(fixtures(), model.Party{Id: 3, Date: "someday", Status: model.StatusPending})

	tests := []struct {
		name   string
		filter ScheduleFilter
		want   []int
	}{
		{"all", ScheduleFilter{Status: StatusAll}, []int{1, 2, 3}},
		{"status", ScheduleFilter{Status: "pending"}, []int{1, 3}},
		{"from inclusive", ScheduleFilter{From: "2025-04-01"}, []int{2, 3}},
		{"to inclusive", ScheduleFilter{To: "2025-03-14"}, []int{1, 3}},
		{"range", ScheduleFilter{From: "2025-03-15", To: "2025-03-31"}, []int{3}},
		{"search camera man", ScheduleFilter{Search: "omid"}, []int{2}},
		{"search skips songs", ScheduleFilter{Search: "happy"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterSchedule(withBadDate, tt.filter)))
		})
	}

	assert.Equal(t, model.PartyStatus(""), (&ScheduleFilter{Status: "all"}).ServerStatus())
	assert.Equal(t, model.StatusDone, (&ScheduleFilter{Status: "done"}).ServerStatus())
}
