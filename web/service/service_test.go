package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/remote"
	"github.com/partyhub/party-panel/web/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T, h http.HandlerFunc) *remote.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return remote.NewClient(srv.URL+"/api", 2*time.Second)
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

var ctx = context.Background()

func parties() []model.Party {
	return []model.Party{
		{Id: 1, Date: "2025-01-10", Place: "Hall", Status: model.StatusDone},
		{Id: 2, Date: "2025-03-02", Place: "Garden", Status: model.StatusPending},
		{Id: 3, Date: "2025-02-20", Place: "Hall B", Status: model.StatusCancelled},
	}
}

func validParty() *entity.PartyForm {
	return &entity.PartyForm{
		Day: "Friday", Date: "2025-03-14", Time: "18:30", Duration: "2",
		Place: "Hall", NumberOfActors: 1, MeetingDate: "2025-03-14", MeetingTime: "16:00",
		MeetingPlace: "Office", TransportVehicle: "Van", CameraMan: "Hassan", DressDetails: "Suits",
	}
}

func TestPartyListDefaultsToNewestFirst(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/parties/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		reply(w, 200, map[string]any{"results": parties()})
	})

	list, err := NewPartyService(api).List(ctx, "tok", PartyQuery{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, entity.Sort{Key: "date", Desc: true}, list.Query.Sort)
	assert.Equal(t, 2, list.Page.PageCount)
	require.Len(t, list.Page.Items, 2)
	assert.Equal(t, 2, list.Page.Items[0].Id)
	assert.Equal(t, 3, list.Page.Items[1].Id)
}

func TestPartyListFilters(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, parties())
	})

	list, err := NewPartyService(api).List(ctx, "tok", PartyQuery{
		Filter: entity.PartyFilter{Place: "hall"},
		Sort:   entity.Sort{Key: "date"},
		Page:   1,
	})
	require.NoError(t, err)
	require.Len(t, list.Page.Items, 2)
	assert.Equal(t, 1, list.Page.Items[0].Id)
	assert.Equal(t, 3, list.Page.Items[1].Id)
}

func TestPartyListFailureIsGeneric(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, 500, map[string]string{"detail": "boom"})
	})

	_, err := NewPartyService(api).List(ctx, "tok", PartyQuery{})
	assert.ErrorIs(t, err, ErrFailed)
}

func TestPartySaveValidatesLocally(t *testing.T) {
	var calls atomic.Int32
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	form := validParty()
	form.Place = ""
	_, err := NewPartyService(api).Save(ctx, "tok", 0, form)

	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"place: is required"}, ve.Messages)
	assert.Zero(t, calls.Load())
}

func TestPartySaveCreateAndUpdate(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var in model.PartyInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "02:00:00", in.Duration)
		assert.Equal(t, model.StatusPending, in.Status)

		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/api/auth/parties/", r.URL.Path)
			reply(w, 201, model.Party{Id: 11, Place: in.Place})
		case http.MethodPut:
			assert.Equal(t, "/api/auth/parties/11/", r.URL.Path)
			reply(w, 200, model.Party{Id: 11, Place: in.Place})
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})
	svc := NewPartyService(api)

	created, err := svc.Save(ctx, "tok", 0, validParty())
	require.NoError(t, err)
	assert.Equal(t, 11, created.Id)

	updated, err := svc.Save(ctx, "tok", 11, validParty())
	require.NoError(t, err)
	assert.Equal(t, "Hall", updated.Place)
}

func TestPartySaveServerValidation(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, 400, map[string]any{"actor_ids": []string{"Invalid pk \"99\"."}})
	})

	_, err := NewPartyService(api).Save(ctx, "tok", 0, validParty())
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{`actor_ids: Invalid pk "99".`}, ve.Messages)
}

func TestChangeStatus(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/auth/parties/4/", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "in_progress", body["status"])
		reply(w, 200, map[string]any{})
	})

	party, err := NewPartyService(api).ChangeStatus(ctx, "tok", 4, model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, 4, party.Id)
	assert.Equal(t, model.StatusInProgress, party.Status)
}

func TestChangeStatusFailures(t *testing.T) {
	var calls atomic.Int32
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		reply(w, 409, map[string]string{"detail": "not allowed"})
	})
	svc := NewPartyService(api)

	_, err := svc.ChangeStatus(ctx, "tok", 4, "archived")
	assert.ErrorIs(t, err, ErrFailed)
	assert.Zero(t, calls.Load())

	_, err = svc.ChangeStatus(ctx, "tok", 4, model.StatusDone)
	assert.ErrorIs(t, err, ErrFailed)
	assert.EqualValues(t, 1, calls.Load())
}

func TestPartyDelete(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, NewPartyService(api).Delete(ctx, "tok", 2))
}

func TestScheduleForwardsStatus(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		reply(w, 200, parties())
	})

	list, err := NewPartyService(api).Schedule(ctx, "tok", entity.ScheduleFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Id)
}

func TestScheduleAllSendsNoStatus(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("status"))
		reply(w, 200, parties())
	})

	list, err := NewPartyService(api).Schedule(ctx, "tok", entity.ScheduleFilter{Status: entity.StatusAll})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{1, 3, 2}, []int{list[0].Id, list[1].Id, list[2].Id})
}

func TestMyPartiesHonoursViewFlags(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/actors/8/parties/", r.URL.Path)
		reply(w, 200, parties())
	})
	actor := &model.ActorProfile{Id: 8, Capabilities: model.Capabilities{CanViewUpcomingParties: true}}

	list, err := NewPartyService(api).MyParties(ctx, "tok", actor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Id)

	none, err := NewPartyService(api).MyParties(ctx, "tok", nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestActorSave(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "secret", body["password"])
			reply(w, 201, model.ActorProfile{Id: 5, Name: "Ali"})
		case http.MethodPatch:
			assert.NotContains(t, body, "password")
			assert.Equal(t, true, body["can_access_dashboard"])
			reply(w, 200, model.ActorProfile{Id: 5, Name: "Ali"})
		}
	})
	svc := NewActorService(api)

	form := entity.NewActorForm()
	form.Name, form.Family, form.Age, form.Role, form.Username = "Ali", "Rezaei", 30, "Singer", "ali"

	_, err := svc.Save(ctx, "tok", 0, &form)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"password: is required"}, ve.Messages)

	form.Password = "secret"
	created, err := svc.Save(ctx, "tok", 0, &form)
	require.NoError(t, err)
	assert.Equal(t, 5, created.Id)

	form.Password = ""
	_, err = svc.Save(ctx, "tok", 5, &form)
	require.NoError(t, err)
}

func TestActorList(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, 200, []model.ActorProfile{
			{Id: 1, Name: "Sara", Role: "Dancer"},
			{Id: 2, Name: "Ali", Role: "Singer"},
			{Id: 3, Name: "Reza", Role: "Dancer"},
		})
	})

	list, err := NewActorService(api).List(ctx, "tok",
		entity.ActorFilter{Search: "dancer"},
		entity.TableSort{Key: "name", Dir: entity.SortAsc})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Reza", list[0].Name)
	assert.Equal(t, "Sara", list[1].Name)
}

func TestDashboardForbiddenShowsZeros(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, 403, map[string]string{"detail": "You do not have permission."})
	})

	stats, err := NewDashboardService(api).Stats(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, &model.DashboardStats{}, stats)
}

func TestDashboardStats(t *testing.T) {
	api := fakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/dashboard/stats/", r.URL.Path)
		reply(w, 200, map[string]any{"my_total_parties": 4, "my_upcoming_parties": 1})
	})

	stats, err := NewDashboardService(api).Stats(ctx, "tok")
	require.NoError(t, err)
	cards := stats.CardsFor(false)
	assert.Equal(t, 4, cards.Total)
	assert.Equal(t, 1, cards.Upcoming)
}

func TestPartyPreview(t *testing.T) {
	svc := NewPartyService(nil)

	in, err := svc.Preview(validParty())
	require.NoError(t, err)
	assert.Equal(t, "02:00:00", in.Duration)

	form := validParty()
	form.MeetingPlace = ""
	_, err = svc.Preview(form)
	_, ok := AsValidation(err)
	assert.True(t, ok)
}
