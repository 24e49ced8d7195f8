package twitch

import (
	"testing"

	"github.com/glintstream/go-twitch/core"
)

func TestEndpointTable_AllEntriesValidate(t *testing.T) {
	for _, spec := range Endpoints() {
		if err := spec.Validate(); err != nil {
			t.Fatalf("%s: %v", spec.Name, err)
		}
	}
}

func TestEndpointTable_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range Endpoints() {
		if seen[spec.Name] {
			t.Fatalf("duplicate operation name %q", spec.Name)
		}
		seen[spec.Name] = true
	}
}

func TestEndpointTable_NoneNeverPairsWithScopes(t *testing.T) {
	for _, spec := range Endpoints() {
		if spec.AuthMode == core.AuthModeNone && len(spec.RequiredScopes) > 0 {
			t.Fatalf("%s pairs auth mode none with required scopes", spec.Name)
		}
	}
}

func TestEndpointTable_ScopedEntriesRequireACredentialMode(t *testing.T) {
	for _, spec := range Endpoints() {
		if len(spec.RequiredScopes) == 0 {
			continue
		}
		if spec.AuthMode != core.AuthModeApp && spec.AuthMode != core.AuthModeUser && spec.AuthMode != core.AuthModeEither {
			t.Fatalf("%s requires scopes but has mode %q", spec.Name, spec.AuthMode)
		}
	}
}
