// Package sqlstore persists acquired tokens in a relational database so
// credentials survive process restarts. One row exists per client and slot;
// Save replaces it.
package sqlstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/glintstream/go-twitch/core"
)

type tokenRecord struct {
	bun.BaseModel `bun:"table:twitch_tokens,alias:tt"`

	ID           string    `bun:"id,pk"`
	ClientID     string    `bun:"client_id,notnull"`
	Slot         string    `bun:"slot,notnull"`
	AccessToken  string    `bun:"access_token,notnull"`
	RefreshToken string    `bun:"refresh_token"`
	Scopes       []string  `bun:"scopes,type:jsonb,notnull"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (r *tokenRecord) toDomain() core.PersistedToken {
	if r == nil {
		return core.PersistedToken{}
	}
	scopes := make([]core.AuthScope, 0, len(r.Scopes))
	for _, scope := range r.Scopes {
		scopes = append(scopes, core.AuthScope(scope))
	}
	return core.PersistedToken{
		ClientID:     r.ClientID,
		Slot:         core.TokenSlot(r.Slot),
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		Scopes:       scopes,
		UpdatedAt:    r.UpdatedAt,
	}
}

func newTokenRecord(id string, token core.PersistedToken, now time.Time) *tokenRecord {
	scopes := make([]string, 0, len(token.Scopes))
	for _, scope := range token.Scopes {
		scopes = append(scopes, string(scope))
	}
	updatedAt := token.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}
	return &tokenRecord{
		ID:           id,
		ClientID:     token.ClientID,
		Slot:         string(token.Slot),
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Scopes:       scopes,
		UpdatedAt:    updatedAt.UTC(),
	}
}
