// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/dalemusser/eventhub/internal/app/system/auth"
	"gorm.io/gorm"
)

// Fetcher adapts the user store to auth.UserFetcher so the session
// middleware can load fresh user data on each request.
type Fetcher struct {
	store *Store
}

// NewFetcher builds a Fetcher for the session middleware.
func NewFetcher(db *gorm.DB) *Fetcher {
	return &Fetcher{store: New(db)}
}

// FetchUser implements auth.UserFetcher.
func (f *Fetcher) FetchUser(ctx context.Context, id uint) (*auth.SessionUser, error) {
	u, err := f.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.SessionUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}, nil
}
