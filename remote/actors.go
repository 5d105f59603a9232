package remote

import (
	"context"
	"fmt"

	"github.com/partyhub/party-panel/model"
	"github.com/valyala/fasthttp"
)

func actorPath(id int) string {
	return fmt.Sprintf("/auth/actors/%d/", id)
}

func (c *Client) Actors(ctx context.Context, token string) ([]model.ActorProfile, error) {
	return getList[model.ActorProfile](ctx, c, call{
		endpoint: "actors.list",
		path:     "/auth/actors/",
		token:    token,
	})
}

func (c *Client) Actor(ctx context.Context, token string, id int) (*model.ActorProfile, error) {
	var actor model.ActorProfile
	err := c.doJSON(ctx, call{
		endpoint: "actors.get",
		method:   fasthttp.MethodGet,
		path:     actorPath(id),
		token:    token,
	}, &actor)
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

func (c *Client) CreateActor(ctx context.Context, token string, in model.ActorInput) (*model.ActorProfile, error) {
	var actor model.ActorProfile
	err := c.doJSON(ctx, call{
		endpoint: "actors.create",
		method:   fasthttp.MethodPost,
		path:     "/auth/actors/",
		token:    token,
		body:     in,
	}, &actor)
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// UpdateActor patches an actor. An empty password is left out of the body
// and keeps the current one.
func (c *Client) UpdateActor(ctx context.Context, token string, id int, in model.ActorInput) (*model.ActorProfile, error) {
	var actor model.ActorProfile
	err := c.doJSON(ctx, call{
		endpoint: "actors.update",
		method:   fasthttp.MethodPatch,
		path:     actorPath(id),
		token:    token,
		body:     in,
	}, &actor)
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

func (c *Client) DeleteActor(ctx context.Context, token string, id int) error {
	return c.doJSON(ctx, call{
		endpoint: "actors.delete",
		method:   fasthttp.MethodDelete,
		path:     actorPath(id),
		token:    token,
	}, nil)
}

// ActorParties lists the parties an actor performs at.
func (c *Client) ActorParties(ctx context.Context, token string, id int) ([]model.Party, error) {
	return getList[model.Party](ctx, c, call{
		endpoint: "actors.parties",
		path:     actorPath(id) + "parties/",
		token:    token,
	})
}
