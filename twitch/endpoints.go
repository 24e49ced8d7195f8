package twitch

import (
	"github.com/glintstream/go-twitch/catalog"
	"github.com/glintstream/go-twitch/core"
)

// The endpoint table. Every API method is one entry here; the catalog
// dispatcher interprets the entry, so a method body only assembles its
// argument map.

var paginationRange = &catalog.IntRange{Min: 1, Max: 100}

var endpointTable = []catalog.OperationSpec{
	{
		Name:     "GetWebhookSubscriptions",
		Method:   "GET",
		Path:     "webhooks/subscriptions",
		AuthMode: core.AuthModeApp,
		Params: []catalog.ParamSpec{
			{Name: "first", Kind: catalog.ParamInt, Range: paginationRange},
			{Name: "after", Kind: catalog.ParamString},
		},
	},
	{
		Name:     "GetUsers",
		Method:   "GET",
		Path:     "users",
		AuthMode: core.AuthModeEither,
		Params: []catalog.ParamSpec{
			{Name: "id", Kind: catalog.ParamList, Range: &catalog.IntRange{Min: 1, Max: 100}},
			{Name: "login", Kind: catalog.ParamList, Range: &catalog.IntRange{Min: 1, Max: 100}},
		},
		RequireAny: [][]string{{"id", "login"}},
		SplitLists: true,
	},
	{
		Name:           "GetExtensionAnalytics",
		Method:         "GET",
		Path:           "analytics/extensions",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeAnalyticsReadExtensions},
		Params: []catalog.ParamSpec{
			{Name: "after", Kind: catalog.ParamString},
			{Name: "extension_id", Kind: catalog.ParamString},
			{Name: "first", Kind: catalog.ParamInt, Range: paginationRange},
			{Name: "started_at", Kind: catalog.ParamDatetime},
			{Name: "ended_at", Kind: catalog.ParamDatetime},
			{Name: "type", Kind: catalog.ParamString, AllowedValues: []string{
				string(core.AnalyticsReportOverviewV1),
				string(core.AnalyticsReportOverviewV2),
			}},
		},
		Paired:         [][2]string{{"started_at", "ended_at"}},
		Ordered:        [][2]string{{"started_at", "ended_at"}},
		DatetimeFields: []string{"started_at", "ended_at"},
	},
	{
		Name:           "GetGameAnalytics",
		Method:         "GET",
		Path:           "analytics/games",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeAnalyticsReadGames},
		Params: []catalog.ParamSpec{
			{Name: "after", Kind: catalog.ParamString},
			{Name: "game_id", Kind: catalog.ParamString},
			{Name: "first", Kind: catalog.ParamInt, Range: paginationRange},
			{Name: "started_at", Kind: catalog.ParamDatetime},
			{Name: "ended_at", Kind: catalog.ParamDatetime},
			{Name: "type", Kind: catalog.ParamString, AllowedValues: []string{
				string(core.AnalyticsReportOverviewV1),
				string(core.AnalyticsReportOverviewV2),
			}},
		},
		Paired:         [][2]string{{"started_at", "ended_at"}},
		Ordered:        [][2]string{{"started_at", "ended_at"}},
		DatetimeFields: []string{"started_at", "ended_at"},
	},
	{
		Name:           "GetBitsLeaderboard",
		Method:         "GET",
		Path:           "bits/leaderboard",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeBitsRead},
		Params: []catalog.ParamSpec{
			{Name: "count", Kind: catalog.ParamInt, Range: paginationRange},
			{Name: "period", Kind: catalog.ParamString, AllowedValues: []string{
				string(core.TimePeriodAll),
				string(core.TimePeriodDay),
				string(core.TimePeriodWeek),
				string(core.TimePeriodMonth),
				string(core.TimePeriodYear),
			}},
			{Name: "started_at", Kind: catalog.ParamDatetime},
			{Name: "user_id", Kind: catalog.ParamString},
		},
		DatetimeFields: []string{"started_at", "ended_at"},
	},
	{
		Name:     "GetExtensionTransactions",
		Method:   "GET",
		Path:     "extensions/transactions",
		AuthMode: core.AuthModeApp,
		Params: []catalog.ParamSpec{
			{Name: "extension_id", Kind: catalog.ParamString, Required: true},
			{Name: "id", Kind: catalog.ParamList, Range: &catalog.IntRange{Min: 1, Max: 100}},
			{Name: "after", Kind: catalog.ParamString},
			{Name: "first", Kind: catalog.ParamInt, Range: paginationRange},
		},
		SplitLists:     true,
		DatetimeFields: []string{"timestamp"},
	},
	{
		Name:           "CreateClip",
		Method:         "POST",
		Path:           "clips",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeClipsEdit},
		Params: []catalog.ParamSpec{
			{Name: "broadcaster_id", Kind: catalog.ParamString, Required: true},
			{Name: "has_delay", Kind: catalog.ParamBool},
		},
	},
	{
		Name:     "GetClips",
		Method:   "GET",
		Path:     "clips",
		AuthMode: core.AuthModeEither,
		Params: []catalog.ParamSpec{
			{Name: "broadcaster_id", Kind: catalog.ParamString},
			{Name: "game_id", Kind: catalog.ParamString},
			{Name: "id", Kind: catalog.ParamList, Range: &catalog.IntRange{Min: 1, Max: 100}},
			{Name: "after", Kind: catalog.ParamString},
			{Name: "before", Kind: catalog.ParamString},
			{Name: "first", Kind: catalog.ParamInt, Range: paginationRange},
		},
		RequireAny:     [][]string{{"broadcaster_id", "game_id", "id"}},
		SplitLists:     true,
		DatetimeFields: []string{"created_at"},
	},
	{
		Name:     "CreateEntitlementGrantsUploadURL",
		Method:   "POST",
		Path:     "entitlements/upload",
		AuthMode: core.AuthModeApp,
		Params: []catalog.ParamSpec{
			{Name: "manifest_id", Kind: catalog.ParamString, Required: true, Range: &catalog.IntRange{Min: 1, Max: 64}},
			{Name: "type", Kind: catalog.ParamString, Required: true, AllowedValues: []string{"bulk_drops_grant"}},
		},
	},
	{
		Name:     "GetCodeStatus",
		Method:   "GET",
		Path:     "entitlements/codes",
		AuthMode: core.AuthModeApp,
		Params: []catalog.ParamSpec{
			{Name: "code", Kind: catalog.ParamList, Required: true, Range: &catalog.IntRange{Min: 1, Max: 20}},
			{Name: "user_id", Kind: catalog.ParamString, Required: true},
		},
		SplitLists: true,
		EnumRules: []catalog.EnumRule{
			{Fields: []string{"status"}, Parse: core.ParseCodeStatus, Fallback: string(core.CodeStatusUnknown)},
		},
	},
	{
		Name:     "RedeemCode",
		Method:   "POST",
		Path:     "entitlements/code",
		AuthMode: core.AuthModeApp,
		Params: []catalog.ParamSpec{
			{Name: "code", Kind: catalog.ParamList, Required: true, Range: &catalog.IntRange{Min: 1, Max: 20}},
			{Name: "user_id", Kind: catalog.ParamString, Required: true},
		},
		SplitLists: true,
		EnumRules: []catalog.EnumRule{
			{Fields: []string{"status"}, Parse: core.ParseCodeStatus, Fallback: string(core.CodeStatusUnknown)},
		},
	},
	{
		Name:     "GetTopGames",
		Method:   "GET",
		Path:     "games/top",
		AuthMode: core.AuthModeEither,
		Params: []catalog.ParamSpec{
			{Name: "after", Kind: catalog.ParamString},
			{Name: "before", Kind: catalog.ParamString},
			{Name: "first", Kind: catalog.ParamInt, Range: paginationRange},
		},
	},
	{
		Name:     "GetGames",
		Method:   "GET",
		Path:     "games",
		AuthMode: core.AuthModeEither,
		Params: []catalog.ParamSpec{
			{Name: "id", Kind: catalog.ParamList},
			{Name: "name", Kind: catalog.ParamList},
		},
		RequireAny:  [][]string{{"id", "name"}},
		CombinedMax: &catalog.CombinedMax{Params: []string{"id", "name"}, Max: 100},
		SplitLists:  true,
	},
	{
		Name:           "CheckAutomodStatus",
		Method:         "POST",
		Path:           "moderation/enforcements/status",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeModerationRead},
		Params: []catalog.ParamSpec{
			{Name: "broadcaster_id", Kind: catalog.ParamString, Required: true},
			{Name: "messages", Kind: catalog.ParamJSON, Required: true, In: catalog.InBody},
		},
		BodyEnvelope: "data",
	},
	{
		Name:           "GetBannedEvents",
		Method:         "GET",
		Path:           "moderation/banned/events",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeModerationRead},
		Params: []catalog.ParamSpec{
			{Name: "broadcaster_id", Kind: catalog.ParamString, Required: true},
			{Name: "user_id", Kind: catalog.ParamString},
			{Name: "after", Kind: catalog.ParamString},
			{Name: "first", Kind: catalog.ParamInt, Range: paginationRange},
		},
		DatetimeFields: []string{"event_timestamp", "expires_at"},
		EnumRules: []catalog.EnumRule{
			{Fields: []string{"event_type"}, Parse: core.ParseModerationEventType, Fallback: string(core.ModerationEventUnknown)},
		},
	},
	{
		Name:           "GetBannedUsers",
		Method:         "GET",
		Path:           "moderation/banned",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeModerationRead},
		Params: []catalog.ParamSpec{
			{Name: "broadcaster_id", Kind: catalog.ParamString, Required: true},
			{Name: "user_id", Kind: catalog.ParamList, Range: &catalog.IntRange{Min: 1, Max: 100}},
			{Name: "after", Kind: catalog.ParamString},
			{Name: "before", Kind: catalog.ParamString},
		},
		SplitLists:     true,
		DatetimeFields: []string{"expires_at"},
	},
}

// Endpoints returns a copy of the endpoint table.
func Endpoints() []catalog.OperationSpec {
	return append([]catalog.OperationSpec(nil), endpointTable...)
}

func endpointSpec(name string) (catalog.OperationSpec, bool) {
	for _, spec := range endpointTable {
		if spec.Name == name {
			return spec, true
		}
	}
	return catalog.OperationSpec{}, false
}
