package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Login exchanges credentials for a user and session.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Signup registers an account and returns its first session.
func (c *Client) Signup(ctx context.Context, data SignupData) (*AuthResult, error) {
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", "", data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout tells the server the session is done. The token is discarded
// locally regardless of the server's answer; this call is advisory.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

// Refresh exchanges a session token for a fresh one. The server accepts
// expired tokens within its grace window. A non-empty newRole asks the
// server to switch the session to that role.
func (c *Client) Refresh(ctx context.Context, token string, newRole Role) (*Session, error) {
	var body any
	if newRole != "" {
		body = map[string]Role{"role": newRole}
	}

	var session Session
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh", token, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUser fetches an account by ID.
func (c *Client) GetUser(ctx context.Context, token, userID string) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// OpportunityFilter narrows a listings query. Zero values are omitted.
type OpportunityFilter struct {
	Sport string
	Level string
	Page  int
	Limit int
}

// ListOpportunities fetches a page of listings.
func (c *Client) ListOpportunities(ctx context.Context, token string, filter OpportunityFilter) (*OpportunityPage, error) {
	q := url.Values{}
	if filter.Sport != "" {
		q.Set("sport", filter.Sport)
	}
	if filter.Level != "" {
		q.Set("level", filter.Level)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := "/api/opportunities"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page OpportunityPage
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Health reports whether the API is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/health", "", nil, nil)
}
