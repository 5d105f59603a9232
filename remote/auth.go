package remote

import (
	"context"

	"github.com/partyhub/party-panel/model"
	"github.com/valyala/fasthttp"
)

// Login exchanges credentials for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, cred model.Credentials) (*model.TokenPair, error) {
	var pair model.TokenPair
	err := c.doJSON(ctx, call{
		endpoint: "auth.login",
		method:   fasthttp.MethodPost,
		path:     "/auth/login/",
		body:     cred,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, reg model.Registration) error {
	return c.doJSON(ctx, call{
		endpoint: "auth.register",
		method:   fasthttp.MethodPost,
		path:     "/auth/register/",
		body:     reg,
	}, nil)
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	err := c.doJSON(ctx, call{
		endpoint: "auth.me",
		method:   fasthttp.MethodGet,
		path:     "/auth/me/",
		token:    token,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DashboardStats(ctx context.Context, token string) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	err := c.doJSON(ctx, call{
		endpoint: "dashboard.stats",
		method:   fasthttp.MethodGet,
		path:     "/auth/dashboard/stats/",
		token:    token,
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
