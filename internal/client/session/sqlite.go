package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/dmitrijs2005/dessertcatalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/dessertcatalog/internal/common"
	"github.com/dmitrijs2005/dessertcatalog/internal/dbx"
)

// SQLiteStore persists the session in the metadata table under the
// access_token and user keys, so a login survives CLI restarts.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	return string(b), nil
}

func (s *SQLiteStore) User(ctx context.Context) (*models.User, error) {
	b, err := s.repo.Get(ctx, common.UserKey)
	if err != nil {
		return nil, fmt.Errorf("session: read user: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("session: decode user: %w", err)
	}
	return &u, nil
}

// Save stores token and user in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, token string, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserKey, data)
	})
}

// SetUser replaces the cached user. It is a no-op for an anonymous session
// so a stale profile response cannot resurrect a cleared session.
func (s *SQLiteStore) SetUser(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		tok, err := repo.Get(ctx, common.AccessTokenKey)
		if err != nil {
			return err
		}
		if len(tok) == 0 {
			return nil
		}
		return repo.Set(ctx, common.UserKey, data)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.AccessTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.UserKey)
	})
}
