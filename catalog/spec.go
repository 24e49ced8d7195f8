// Package catalog defines the declarative endpoint table entries and the
// dispatcher that validates arguments, builds the request URL, executes the
// call, and normalizes the response body.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/glintstream/go-twitch/core"
)

// ParamKind declares how a parameter value is typed and serialized.
type ParamKind string

const (
	ParamString   ParamKind = "string"
	ParamBool     ParamKind = "bool"
	ParamInt      ParamKind = "int"
	ParamList     ParamKind = "list"
	ParamDatetime ParamKind = "datetime"
	// ParamJSON passes an arbitrary JSON-marshalable value through untouched;
	// only body parameters use it.
	ParamJSON ParamKind = "json"
)

// ParamLocation places a parameter in the query string or the JSON body.
type ParamLocation string

const (
	InQuery ParamLocation = "query"
	InBody  ParamLocation = "body"
)

// IntRange is an inclusive bound. For ParamInt it bounds the value, for
// ParamString the character length, for ParamList the element count.
type IntRange struct {
	Min int
	Max int
}

// ParamSpec declares one call parameter and its validation rules.
type ParamSpec struct {
	Name     string
	Kind     ParamKind
	Required bool
	In       ParamLocation
	Range    *IntRange
	// AllowedValues restricts a string parameter to an enumerated set.
	AllowedValues []string
}

// EnumRule names response fields whose string values are mapped to an
// enumeration's canonical constant, with a fallback for unknown values.
type EnumRule struct {
	Fields   []string
	Parse    func(string) (string, bool)
	Fallback string
}

// OperationSpec is one endpoint table entry. The dispatcher interprets it;
// typed client methods only assemble the argument map.
type OperationSpec struct {
	Name           string
	Method         string
	Path           string
	AuthMode       core.AuthMode
	RequiredScopes []core.AuthScope
	Params         []ParamSpec

	// RequireAny groups of which at least one parameter must be supplied.
	RequireAny [][]string
	// Paired parameter pairs that must be supplied together or not at all.
	Paired [][2]string
	// Ordered datetime pairs where the first must not be after the second.
	Ordered [][2]string
	// CombinedMax caps the summed element count across list parameters.
	CombinedMax *CombinedMax

	// SplitLists serializes list parameters as repeated query keys.
	SplitLists bool
	// BodyEnvelope wraps the body parameters under a single JSON key.
	BodyEnvelope string

	// DatetimeFields are response fields normalized to time.Time.
	DatetimeFields []string
	// EnumRules are response fields normalized to enum constants.
	EnumRules []EnumRule
}

// CombinedMax caps the total number of elements supplied across the named
// list parameters.
type CombinedMax struct {
	Params []string
	Max    int
}

// Validate checks the table entry itself. A None auth mode paired with
// required scopes is a table mistake, not a runtime condition.
func (s OperationSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return core.NewConfigurationError("catalog: operation name is required")
	}
	if strings.TrimSpace(s.Path) == "" {
		return core.NewConfigurationError(
			fmt.Sprintf("catalog: %s: operation path is required", s.Name),
		)
	}
	if !s.AuthMode.Validate() {
		return core.NewConfigurationError(
			fmt.Sprintf("catalog: %s: unknown auth mode %q", s.Name, s.AuthMode),
		)
	}
	if s.AuthMode == core.AuthModeNone && len(s.RequiredScopes) > 0 {
		return core.NewConfigurationError(
			fmt.Sprintf("catalog: %s: auth mode none must not require scopes", s.Name),
		)
	}
	return nil
}

func (s OperationSpec) param(name string) (ParamSpec, bool) {
	for _, param := range s.Params {
		if param.Name == name {
			return param, true
		}
	}
	return ParamSpec{}, false
}

// argPresent reports whether the argument carries a usable value. Empty
// strings, empty lists, zero times, and nil all count as absent.
func argPresent(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(typed) != ""
	case []string:
		return len(typed) > 0
	case time.Time:
		return !typed.IsZero()
	default:
		return true
	}
}
