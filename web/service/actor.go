package service

import (
	"context"

	"github.com/partyhub/party-panel/model"
	"github.com/partyhub/party-panel/remote"
	"github.com/partyhub/party-panel/web/entity"
)

type ActorService struct {
	api *remote.Client
}

func NewActorService(api *remote.Client) *ActorService {
	return &ActorService{api: api}
}

// List fetches every actor, then searches and sorts in memory.
func (s *ActorService) List(ctx context.Context, token string, f entity.ActorFilter, sort entity.TableSort) ([]model.ActorProfile, error) {
	actors, err := s.api.Actors(ctx, token)
	if err != nil {
		return nil, collapse("list actors", err)
	}
	return entity.SortActors(entity.FilterActors(actors, f), sort), nil
}

func (s *ActorService) Get(ctx context.Context, token string, id int) (*model.ActorProfile, error) {
	actor, err := s.api.Actor(ctx, token, id)
	if err != nil {
		return nil, collapse("get actor", err)
	}
	return actor, nil
}

// Save creates the actor (id 0) or patches it. A password is required on
// create and sent on edit only when one was typed.
func (s *ActorService) Save(ctx context.Context, token string, id int, form *entity.ActorForm) (*model.ActorProfile, error) {
	if err := invalid(form.Check(id == 0)); err != nil {
		return nil, err
	}
	in := form.Input()

	var (
		actor *model.ActorProfile
		err   error
	)
	if id == 0 {
		actor, err = s.api.CreateActor(ctx, token, in)
	} else {
		actor, err = s.api.UpdateActor(ctx, token, id, in)
	}
	if err != nil {
		return nil, collapse("save actor", err)
	}
	return actor, nil
}

func (s *ActorService) Delete(ctx context.Context, token string, id int) error {
	return collapse("delete actor", s.api.DeleteActor(ctx, token, id))
}

// Parties lists the parties an actor is booked on.
func (s *ActorService) Parties(ctx context.Context, token string, id int) ([]model.Party, error) {
	parties, err := s.api.ActorParties(ctx, token, id)
	if err != nil {
		return nil, collapse("list actor parties", err)
	}
	return entity.SortParties(parties, entity.Sort{Key: "date"}), nil
}
