package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/myvocabin/myvocabin/server/internal/model"
)

// GoTrueAuthorizer resolves bearer tokens against a GoTrue-compatible
// identity endpoint (GET /auth/v1/user), the scheme the mobile app, browser
// extension and share sheet all authenticate with.
type GoTrueAuthorizer struct {
	client  *resty.Client
	anonKey string
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NewGoTrueAuthorizer builds an authorizer against the given base URL.
// anonKey is sent as the project apikey header alongside the user's bearer
// token.
func NewGoTrueAuthorizer(baseURL, anonKey string) *GoTrueAuthorizer {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second)
	return &GoTrueAuthorizer{client: c, anonKey: anonKey}
}

// Authorize resolves the token to a user. Any transport failure, non-200
// status or empty user id yields model.ErrUnauthorized.
func (a *GoTrueAuthorizer) Authorize(ctx context.Context, token string) (*UserInfo, error) {
	if token == "" {
		return nil, model.ErrUnauthorized
	}

	var u gotrueUser
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("apikey", a.anonKey).
		SetResult(&u).
		Get("/auth/v1/user")
	if err != nil {
		return nil, fmt.Errorf("identity lookup: %w", model.ErrUnauthorized)
	}
	if resp.StatusCode() != http.StatusOK || u.ID == "" {
		return nil, model.ErrUnauthorized
	}

	return &UserInfo{UserID: u.ID, Email: u.Email}, nil
}
