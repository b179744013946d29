package auth

import (
	"context"
)

// UserInfo identifies the authenticated owner of a request. All storage
// operations downstream are scoped to UserID.
type UserInfo struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// Authorizer resolves a bearer credential to a user identity.
// Implementations must fail closed: any resolution problem is an error,
// never an empty identity.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*UserInfo, error)
}
