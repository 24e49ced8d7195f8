package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/glintstream/go-twitch/core"
)

// TokenStore implements core.TokenPersistence on a bun database.
type TokenStore struct {
	db   *bun.DB
	repo repository.Repository[*tokenRecord]
}

func NewTokenStore(db *bun.DB) (*TokenStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	return &TokenStore{
		db:   db,
		repo: repository.NewRepository[*tokenRecord](db, tokenHandlers()),
	}, nil
}

// NewTokenStoreFromPersistence accepts a *bun.DB or anything exposing
// DB() *bun.DB, such as a go-persistence-bun client.
func NewTokenStoreFromPersistence(client any) (*TokenStore, error) {
	db, err := resolveBunDB(client)
	if err != nil {
		return nil, err
	}
	return NewTokenStore(db)
}

// Save replaces the row for the token's client and slot in one transaction.
func (s *TokenStore) Save(ctx context.Context, token core.PersistedToken) error {
	if s == nil || s.db == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: token store is not configured")
	}
	clientID := strings.TrimSpace(token.ClientID)
	if clientID == "" {
		return fmt.Errorf("sqlstore: client id is required")
	}
	slot := strings.TrimSpace(string(token.Slot))
	if slot == "" {
		return fmt.Errorf("sqlstore: token slot is required")
	}
	token.ClientID = clientID
	token.Slot = core.TokenSlot(slot)

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*tokenRecord)(nil)).
			Where("client_id = ?", clientID).
			Where("slot = ?", slot).
			Exec(ctx)
		if err != nil {
			return err
		}
		record := newTokenRecord(uuid.NewString(), token, time.Now().UTC())
		_, err = s.repo.CreateTx(ctx, tx, record)
		return err
	})
}

// Load returns the stored token for the client and slot. A missing row is
// not an error: the zero PersistedToken is returned.
func (s *TokenStore) Load(ctx context.Context, clientID string, slot core.TokenSlot) (core.PersistedToken, error) {
	if s == nil || s.repo == nil {
		return core.PersistedToken{}, fmt.Errorf("sqlstore: token store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("client_id", "=", strings.TrimSpace(clientID)),
		repository.SelectBy("slot", "=", strings.TrimSpace(string(slot))),
		repository.OrderBy("updated_at DESC"),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return core.PersistedToken{}, err
	}
	if len(records) == 0 {
		return core.PersistedToken{}, nil
	}
	return records[0].toDomain(), nil
}

// Delete removes the row for the client and slot; deleting a missing row is
// a no-op.
func (s *TokenStore) Delete(ctx context.Context, clientID string, slot core.TokenSlot) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: token store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*tokenRecord)(nil)).
		Where("client_id = ?", strings.TrimSpace(clientID)).
		Where("slot = ?", strings.TrimSpace(string(slot))).
		Exec(ctx)
	return err
}

var _ core.TokenPersistence = (*TokenStore)(nil)
