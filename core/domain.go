package core

import (
	"strings"
)

// AuthMode selects which credential context a request is authorized with.
type AuthMode string

const (
	// AuthModeNone attaches no Authorization header. An endpoint table must
	// never pair it with required scopes; that pairing is a configuration
	// error, not a runtime condition.
	AuthModeNone AuthMode = "none"
	// AuthModeApp requires the application credential.
	AuthModeApp AuthMode = "app"
	// AuthModeUser requires the user credential.
	AuthModeUser AuthMode = "user"
	// AuthModeEither uses whichever credential is present, preferring the
	// user credential, and attaches no Authorization header when neither is
	// present and no scopes are required.
	AuthModeEither AuthMode = "either"
)

func (m AuthMode) Validate() bool {
	switch m {
	case AuthModeNone, AuthModeApp, AuthModeUser, AuthModeEither:
		return true
	}
	return false
}

// AuthScope is a Twitch authorization scope identifier.
type AuthScope string

const (
	ScopeAnalyticsReadExtensions  AuthScope = "analytics:read:extensions"
	ScopeAnalyticsReadGames       AuthScope = "analytics:read:games"
	ScopeBitsRead                 AuthScope = "bits:read"
	ScopeChannelReadSubscriptions AuthScope = "channel:read:subscriptions"
	ScopeClipsEdit                AuthScope = "clips:edit"
	ScopeModerationRead           AuthScope = "moderation:read"
	ScopeUserEdit                 AuthScope = "user:edit"
	ScopeUserEditBroadcast        AuthScope = "user:edit:broadcast"
	ScopeUserReadBroadcast        AuthScope = "user:read:broadcast"
	ScopeUserReadEmail            AuthScope = "user:read:email"
)

// JoinScopes renders a scope list as the space-separated string the token
// endpoint expects.
func JoinScopes(scopes []AuthScope) string {
	parts := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		value := strings.TrimSpace(string(scope))
		if value == "" {
			continue
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, " ")
}

// ScopesSuperset reports whether every scope in required is granted, and
// names the first one that is not.
func ScopesSuperset(granted []AuthScope, required []AuthScope) (AuthScope, bool) {
	set := make(map[AuthScope]struct{}, len(granted))
	for _, scope := range granted {
		set[scope] = struct{}{}
	}
	for _, scope := range required {
		if _, ok := set[scope]; !ok {
			return scope, false
		}
	}
	return "", true
}

// Credential is one authentication context: an opaque bearer token plus the
// scopes granted with it. Token and scopes are only ever replaced together;
// Present is true iff both were set by an authenticate operation.
type Credential struct {
	Token   string
	Scopes  []AuthScope
	Present bool
}

// AnalyticsReportType enumerates analytics report formats.
type AnalyticsReportType string

const (
	AnalyticsReportOverviewV1 AnalyticsReportType = "overview_v1"
	AnalyticsReportOverviewV2 AnalyticsReportType = "overview_v2"
)

// TimePeriod enumerates leaderboard aggregation windows.
type TimePeriod string

const (
	TimePeriodAll   TimePeriod = "all"
	TimePeriodDay   TimePeriod = "day"
	TimePeriodWeek  TimePeriod = "week"
	TimePeriodMonth TimePeriod = "month"
	TimePeriodYear  TimePeriod = "year"
)

// CodeStatus enumerates entitlement code states as reported by the API.
// CodeStatusUnknown is the fallback for values this library does not know;
// the service may introduce new states without notice.
type CodeStatus string

const (
	CodeStatusSuccessfullyRedeemed CodeStatus = "SUCCESSFULLY_REDEEMED"
	CodeStatusAlreadyClaimed       CodeStatus = "ALREADY_CLAIMED"
	CodeStatusExpired              CodeStatus = "EXPIRED"
	CodeStatusUserNotEligible      CodeStatus = "USER_NOT_ELIGIBLE"
	CodeStatusNotFound             CodeStatus = "NOT_FOUND"
	CodeStatusInactive             CodeStatus = "INACTIVE"
	CodeStatusUnused               CodeStatus = "UNUSED"
	CodeStatusIncorrectFormat      CodeStatus = "INCORRECT_FORMAT"
	CodeStatusInternalError        CodeStatus = "INTERNAL_ERROR"
	CodeStatusUnknown              CodeStatus = "UNKNOWN_VALUE"
)

// ParseCodeStatus maps a wire value to its constant. ok is false for values
// outside the known set.
func ParseCodeStatus(value string) (string, bool) {
	switch CodeStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case CodeStatusSuccessfullyRedeemed,
		CodeStatusAlreadyClaimed,
		CodeStatusExpired,
		CodeStatusUserNotEligible,
		CodeStatusNotFound,
		CodeStatusInactive,
		CodeStatusUnused,
		CodeStatusIncorrectFormat,
		CodeStatusInternalError:
		return strings.ToUpper(strings.TrimSpace(value)), true
	}
	return "", false
}

// ModerationEventType enumerates moderation event kinds.
type ModerationEventType string

const (
	ModerationEventBan     ModerationEventType = "moderation.user.ban"
	ModerationEventUnban   ModerationEventType = "moderation.user.unban"
	ModerationEventUnknown ModerationEventType = "unknown"
)

// ParseModerationEventType maps a wire value to its constant.
func ParseModerationEventType(value string) (string, bool) {
	switch ModerationEventType(strings.ToLower(strings.TrimSpace(value))) {
	case ModerationEventBan, ModerationEventUnban:
		return strings.ToLower(strings.TrimSpace(value)), true
	}
	return "", false
}
