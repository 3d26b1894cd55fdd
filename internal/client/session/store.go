// Package session persists the login session of the terminal client.
//
// Tokens live in the metadata table of the local SQLite store under the keys
// access_token and refresh_token. The post-login redirect is kept separately
// so that clearing a rejected session still remembers where the user was
// going.
package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pohonku/pohonku/internal/client/models"
	"github.com/pohonku/pohonku/internal/client/repositories/metadata"
	"github.com/pohonku/pohonku/internal/common"
	"github.com/pohonku/pohonku/internal/dbx"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Set stores both tokens atomically.
func (s *Store) Set(ctx context.Context, sess models.Session) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, []byte(sess.AccessToken)); err != nil {
			return err
		}
		return repo.Set(ctx, common.RefreshTokenKey, []byte(sess.RefreshToken))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get returns the stored session, or nil when there is no access token.
func (s *Store) Get(ctx context.Context) (*models.Session, error) {
	repo := s.repo()

	access, err := repo.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(access) == 0 {
		return nil, nil
	}

	refresh, err := repo.Get(ctx, common.RefreshTokenKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &models.Session{AccessToken: string(access), RefreshToken: string(refresh)}, nil
}

// Clear removes both tokens. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.AccessTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.RefreshTokenKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) SetRedirect(ctx context.Context, path string) error {
	if err := s.repo().Set(ctx, common.PostLoginRedirectKey, []byte(path)); err != nil {
		return fmt.Errorf("save redirect: %w", err)
	}
	return nil
}

// PopRedirect returns the saved redirect and forgets it. It returns "" when
// none was saved.
func (s *Store) PopRedirect(ctx context.Context) (string, error) {
	var path string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		v, err := repo.Get(ctx, common.PostLoginRedirectKey)
		if err != nil {
			return err
		}
		path = string(v)
		return repo.Delete(ctx, common.PostLoginRedirectKey)
	})
	if err != nil {
		return "", fmt.Errorf("pop redirect: %w", err)
	}
	return path, nil
}
