package auth

import (
	"fmt"
	"strings"

	"github.com/glintstream/go-twitch/core"
)

// HeaderBuilder produces the header set for an authorized call. Every call
// carries the Client-ID header; the Authorization header is attached only
// from a credential whose granted scopes superset the operation's required
// scopes.
type HeaderBuilder struct {
	clientID string
	store    *CredentialStore
}

func NewHeaderBuilder(clientID string, store *CredentialStore) *HeaderBuilder {
	return &HeaderBuilder{
		clientID: strings.TrimSpace(clientID),
		store:    store,
	}
}

// Build returns the headers for mode, or an error when the selected
// credential is absent or lacks a required scope. A None mode paired with
// required scopes is an endpoint table mistake and is reported as a
// configuration error.
func (b *HeaderBuilder) Build(mode core.AuthMode, required []core.AuthScope) (map[string]string, error) {
	if b == nil || b.store == nil {
		return nil, core.NewConfigurationError("auth: header builder requires a credential store")
	}
	headers := map[string]string{"Client-ID": b.clientID}

	switch mode {
	case core.AuthModeNone:
		if len(required) > 0 {
			return nil, core.NewConfigurationError(
				fmt.Sprintf("auth: mode none must not require scopes, got %d", len(required)),
			)
		}
		return headers, nil
	case core.AuthModeApp:
		return b.bearerFrom(headers, b.store.App(), mode, required)
	case core.AuthModeUser:
		return b.bearerFrom(headers, b.store.User(), mode, required)
	case core.AuthModeEither:
		if user := b.store.User(); user.Present {
			return b.bearerFrom(headers, user, core.AuthModeUser, required)
		}
		if app := b.store.App(); app.Present {
			return b.bearerFrom(headers, app, core.AuthModeApp, required)
		}
		if len(required) == 0 {
			return headers, nil
		}
		return nil, core.NewUnauthenticated(mode)
	default:
		return nil, core.NewConfigurationError(fmt.Sprintf("auth: unknown auth mode %q", mode))
	}
}

func (b *HeaderBuilder) bearerFrom(
	headers map[string]string,
	credential core.Credential,
	mode core.AuthMode,
	required []core.AuthScope,
) (map[string]string, error) {
	if !credential.Present {
		return nil, core.NewUnauthenticated(mode)
	}
	if missing, ok := core.ScopesSuperset(credential.Scopes, required); !ok {
		return nil, core.NewMissingScope(mode, missing)
	}
	headers["Authorization"] = "Bearer " + credential.Token
	return headers, nil
}

var _ core.HeaderBuilder = (*HeaderBuilder)(nil)
