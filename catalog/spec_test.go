package catalog

import (
	"testing"

	"github.com/glintstream/go-twitch/core"
)

func TestOperationSpec_ValidateRejectsNoneWithScopes(t *testing.T) {
	spec := OperationSpec{
		Name:           "ListThings",
		Method:         "GET",
		Path:           "things",
		AuthMode:       core.AuthModeNone,
		RequiredScopes: []core.AuthScope{core.ScopeBitsRead},
	}
	err := spec.Validate()
	if !core.IsTextCode(err, core.ErrorConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestOperationSpec_ValidateRejectsUnknownAuthMode(t *testing.T) {
	spec := OperationSpec{
		Name:     "ListThings",
		Path:     "things",
		AuthMode: core.AuthMode("bogus"),
	}
	if err := spec.Validate(); !core.IsTextCode(err, core.ErrorConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestOperationSpec_ValidateRequiresNameAndPath(t *testing.T) {
	if err := (OperationSpec{Path: "things", AuthMode: core.AuthModeNone}).Validate(); err == nil {
		t.Fatalf("expected error for missing name")
	}
	if err := (OperationSpec{Name: "ListThings", AuthMode: core.AuthModeNone}).Validate(); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestOperationSpec_ValidateAcceptsWellFormedEntry(t *testing.T) {
	spec := OperationSpec{
		Name:           "ListThings",
		Method:         "GET",
		Path:           "things",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeBitsRead},
	}
	if err := spec.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
