// Package session keeps the authenticated state of the catalog client: the
// bearer token and the cached user record. Both values live and die
// together; a store either holds a token and (optionally) a user, or
// nothing.
package session

import (
	"context"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
)

// Store is the injectable session backend. User returns (nil, nil) when no
// user is cached; Token returns "" when the session is anonymous.
type Store interface {
	Token(ctx context.Context) (string, error)
	User(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, token string, user models.User) error
	SetUser(ctx context.Context, user models.User) error
	Clear(ctx context.Context) error
}
