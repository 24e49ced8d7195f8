// Package auth manages the client's two authentication contexts: the
// application credential obtained through the client-credentials grant and
// the user credential obtained through an OAuth authorization flow. It owns
// credential state, header construction with scope preconditions, and the
// token endpoint calls.
package auth

import (
	"sync"

	"github.com/glintstream/go-twitch/core"
)

// CredentialStore holds the app and user credentials. Each slot is replaced
// atomically: token and scope set always change together, and the presence
// flag is only true after such a replacement. Writers are serialized so a
// replacement can never interleave with a concurrent header build.
type CredentialStore struct {
	mu   sync.RWMutex
	app  core.Credential
	user core.Credential
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// SetApp replaces the application credential.
func (s *CredentialStore) SetApp(token string, scopes []core.AuthScope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app = core.Credential{
		Token:   token,
		Scopes:  append([]core.AuthScope(nil), scopes...),
		Present: true,
	}
}

// SetUser replaces the user credential.
func (s *CredentialStore) SetUser(token string, scopes []core.AuthScope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = core.Credential{
		Token:   token,
		Scopes:  append([]core.AuthScope(nil), scopes...),
		Present: true,
	}
}

// App returns a copy of the application credential; Present is false when it
// was never set.
func (s *CredentialStore) App() core.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCredential(s.app)
}

// User returns a copy of the user credential.
func (s *CredentialStore) User() core.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCredential(s.user)
}

// ClearApp removes the application credential.
func (s *CredentialStore) ClearApp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app = core.Credential{}
}

// ClearUser removes the user credential.
func (s *CredentialStore) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = core.Credential{}
}

func cloneCredential(in core.Credential) core.Credential {
	return core.Credential{
		Token:   in.Token,
		Scopes:  append([]core.AuthScope(nil), in.Scopes...),
		Present: in.Present,
	}
}
