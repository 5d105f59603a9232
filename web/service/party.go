package service

import (
	"context"

	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/remote"
	"github.com/partyhub/party-panel/web/entity"
)

// PartyService reads and writes parties through the party API. Lists are
// fetched whole and narrowed in memory.
type PartyService struct {
	api *remote.Client
}

func NewPartyService(api *remote.Client) *PartyService {
	return &PartyService{api: api}
}

// PartyQuery is everything the party table needs to derive its view.
type PartyQuery struct {
	Filter entity.PartyFilter
	Sort   entity.Sort
	Page   int
	Size   int
}

// PartyList is one rendered view of the party table.
type PartyList struct {
	Query PartyQuery
	Page  entity.Page[model.Party]
}

// List fetches every party and applies the filter, the sort and the page.
// The table opens sorted by date, newest first.
func (s *PartyService) List(ctx context.Context, token string, q PartyQuery) (*PartyList, error) {
	parties, err := s.api.Parties(ctx, token, remote.PartyQuery{})
	if err != nil {
		return nil, collapse("list parties", err)
	}
	if q.Sort.Key == "" || !entity.IsPartySortKey(q.Sort.Key) {
		q.Sort = entity.Sort{Key: "date", Desc: true}
	}
	view := entity.SortParties(entity.FilterParties(parties, q.Filter), q.Sort)
	return &PartyList{
		Query: q,
		Page:  entity.Paginate(view, q.Page, q.Size),
	}, nil
}

func (s *PartyService) Get(ctx context.Context, token string, id int) (*model.Party, error) {
	party, err := s.api.Party(ctx, token, id)
	if err != nil {
		return nil, collapse("get party", err)
	}
	return party, nil
}

// Preview validates a new party and returns what would be sent, for the
// summary the user confirms before the party is created.
func (s *PartyService) Preview(form *entity.PartyForm) (model.PartyInput, error) {
	if err := invalid(entity.Validate(form)); err != nil {
		return model.PartyInput{}, err
	}
	return form.Input(), nil
}

// Save validates the form locally, then creates the party (id 0) or replaces
// it.
func (s *PartyService) Save(ctx context.Context, token string, id int, form *entity.PartyForm) (*model.Party, error) {
	if err := invalid(entity.Validate(form)); err != nil {
		return nil, err
	}
	in := form.Input()

	var (
		party *model.Party
		err   error
	)
	if id == 0 {
		party, err = s.api.CreateParty(ctx, token, in)
	} else {
		party, err = s.api.UpdateParty(ctx, token, id, in)
	}
	if err != nil {
		return nil, collapse("save party", err)
	}
	return party, nil
}

func (s *PartyService) Delete(ctx context.Context, token string, id int) error {
	return collapse("delete party", s.api.DeleteParty(ctx, token, id))
}

// ChangeStatus moves a party to status. The API decides whether the move is
// allowed. When its answer carries no party the returned one is built from
// the request.
func (s *PartyService) ChangeStatus(ctx context.Context, token string, id int, status model.PartyStatus) (*model.Party, error) {
	if !status.Valid() {
		return nil, ErrFailed
	}
	party, err := s.api.SetPartyStatus(ctx, token, id, status)
	if err != nil {
		return nil, collapse("change party status", err)
	}
	if party == nil || party.Id == 0 {
		party = &model.Party{Id: id}
	}
	party.Status = status
	return party, nil
}

// Schedule lists parties for the calendar view. The status filter goes to
// the API; the rest is applied here. Parties are ordered by date, oldest
// first.
func (s *PartyService) Schedule(ctx context.Context, token string, f entity.ScheduleFilter) ([]model.Party, error) {
	parties, err := s.api.Parties(ctx, token, remote.PartyQuery{Status: f.ServerStatus()})
	if err != nil {
		return nil, collapse("load schedule", err)
	}
	view := entity.FilterSchedule(parties, f)
	return entity.SortParties(view, entity.Sort{Key: "date"}), nil
}

// MyParties lists the parties of the signed-in actor, hiding the ones its
// flags do not let it see.
func (s *PartyService) MyParties(ctx context.Context, token string, actor *model.ActorProfile) ([]model.Party, error) {
	if actor == nil {
		return []model.Party{}, nil
	}
	parties, err := s.api.ActorParties(ctx, token, actor.Id)
	if err != nil {
		return nil, collapse("list my parties", err)
	}
	visible := make([]model.Party, 0, len(parties))
	for i := range parties {
		if parties[i].StatusVisibleTo(actor) {
			visible = append(visible, parties[i])
		}
	}
	return entity.SortParties(visible, entity.Sort{Key: "date"}), nil
}
