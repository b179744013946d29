package auth

import (
	"context"

	"github.com/myvocabin/myvocabin/server/internal/model"
)

const (
	// LocalDevToken is the hardcoded bearer token for local development only
	LocalDevToken = "vk_local_vocabin_dev_token"

	// LocalDevUserID is the user every dev-mode request resolves to
	LocalDevUserID = "vocabin-dev"
)

// MockAuthorizer recognizes only LocalDevToken and resolves it to a fixed
// dev user. It exists so the mobile app and share extension can be wired up
// locally without a running identity provider.
type MockAuthorizer struct{}

func NewMockAuthorizer() *MockAuthorizer { return &MockAuthorizer{} }

func (m *MockAuthorizer) Authorize(ctx context.Context, token string) (*UserInfo, error) {
	if token != LocalDevToken {
		return nil, model.ErrUnauthorized
	}
	return &UserInfo{UserID: LocalDevUserID, Email: "dev@vocabin.local"}, nil
}
