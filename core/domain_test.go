package core

import "testing"

func TestScopesSuperset_NamesFirstMissingScope(t *testing.T) {
	granted := []AuthScope{ScopeBitsRead, ScopeClipsEdit}
	missing, ok := ScopesSuperset(granted, []AuthScope{ScopeClipsEdit, ScopeModerationRead, ScopeUserEdit})
	if ok {
		t.Fatalf("expected missing scope")
	}
	if missing != ScopeModerationRead {
		t.Fatalf("expected first missing scope %q, got %q", ScopeModerationRead, missing)
	}
}

func TestScopesSuperset_EmptyRequiredAlwaysSatisfied(t *testing.T) {
	if _, ok := ScopesSuperset(nil, nil); !ok {
		t.Fatalf("empty required set must be satisfied by any credential")
	}
	if _, ok := ScopesSuperset([]AuthScope{ScopeBitsRead}, nil); !ok {
		t.Fatalf("empty required set must be satisfied by any credential")
	}
}

func TestJoinScopes(t *testing.T) {
	joined := JoinScopes([]AuthScope{ScopeBitsRead, "", ScopeClipsEdit})
	if joined != "bits:read clips:edit" {
		t.Fatalf("unexpected joined scopes: %q", joined)
	}
	if JoinScopes(nil) != "" {
		t.Fatalf("expected empty join for nil scopes")
	}
}

func TestParseCodeStatus(t *testing.T) {
	value, ok := ParseCodeStatus("successfully_redeemed")
	if !ok {
		t.Fatalf("expected known code status")
	}
	if value != string(CodeStatusSuccessfullyRedeemed) {
		t.Fatalf("unexpected canonical value: %q", value)
	}
	if _, ok := ParseCodeStatus("totally-unknown-value"); ok {
		t.Fatalf("unknown value must not parse")
	}
}

func TestParseModerationEventType(t *testing.T) {
	value, ok := ParseModerationEventType("MODERATION.USER.BAN")
	if !ok {
		t.Fatalf("expected known event type")
	}
	if value != string(ModerationEventBan) {
		t.Fatalf("unexpected canonical value: %q", value)
	}
	if _, ok := ParseModerationEventType("moderation.user.timeout"); ok {
		t.Fatalf("unknown value must not parse")
	}
}

func TestAuthModeValidate(t *testing.T) {
	for _, mode := range []AuthMode{AuthModeNone, AuthModeApp, AuthModeUser, AuthModeEither} {
		if !mode.Validate() {
			t.Fatalf("mode %q must validate", mode)
		}
	}
	if AuthMode("bearer").Validate() {
		t.Fatalf("unknown mode must not validate")
	}
}
