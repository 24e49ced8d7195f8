// Package core contains the canonical Twitch client domain: auth modes and
// scopes, response enumerations, collaborator contracts, the error taxonomy,
// and client configuration. Higher-level packages (auth, transport, catalog,
// twitch) depend on this package; core must not depend on any of them.
package core
