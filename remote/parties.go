package remote

import (
	"context"
	"fmt"

	"github.com/partyhub/party-panel/model"
	"github.com/valyala/fasthttp"
)

// PartyQuery narrows a party listing on the server side. Free-text search
// stays in the panel, whose search covers more fields than the API's.
type PartyQuery struct {
	Status model.PartyStatus
}

func partyPath(id int) string {
	return fmt.Sprintf("/auth/parties/%d/", id)
}

func (c *Client) Parties(ctx context.Context, token string, q PartyQuery) ([]model.Party, error) {
	return getList[model.Party](ctx, c, call{
		endpoint: "parties.list",
		path:     "/auth/parties/",
		token:    token,
		query: map[string]string{
			"status": string(q.Status),
		},
	})
}

func (c *Client) Party(ctx context.Context, token string, id int) (*model.Party, error) {
	var party model.Party
	err := c.doJSON(ctx, call{
		endpoint: "parties.get",
		method:   fasthttp.MethodGet,
		path:     partyPath(id),
		token:    token,
	}, &party)
	if err != nil {
		return nil, err
	}
	return &party, nil
}

func (c *Client) CreateParty(ctx context.Context, token string, in model.PartyInput) (*model.Party, error) {
	var party model.Party
	err := c.doJSON(ctx, call{
		endpoint: "parties.create",
		method:   fasthttp.MethodPost,
		path:     "/auth/parties/",
		token:    token,
		body:     in,
	}, &party)
	if err != nil {
		return nil, err
	}
	return &party, nil
}

// UpdateParty replaces a party with a full write shape.
func (c *Client) UpdateParty(ctx context.Context, token string, id int, in model.PartyInput) (*model.Party, error) {
	var party model.Party
	err := c.doJSON(ctx, call{
		endpoint: "parties.update",
		method:   fasthttp.MethodPut,
		path:     partyPath(id),
		token:    token,
		body:     in,
	}, &party)
	if err != nil {
		return nil, err
	}
	return &party, nil
}

// SetPartyStatus patches only the status. Whether the change is legal is
// decided by the API.
func (c *Client) SetPartyStatus(ctx context.Context, token string, id int, status model.PartyStatus) (*model.Party, error) {
	var party model.Party
	err := c.doJSON(ctx, call{
		endpoint: "parties.status",
		method:   fasthttp.MethodPatch,
		path:     partyPath(id),
		token:    token,
		body:     map[string]model.PartyStatus{"status": status},
	}, &party)
	if err != nil {
		return nil, err
	}
	return &party, nil
}

func (c *Client) DeleteParty(ctx context.Context, token string, id int) error {
	return c.doJSON(ctx, call{
		endpoint: "parties.delete",
		method:   fasthttp.MethodDelete,
		path:     partyPath(id),
		token:    token,
	}, nil)
}
