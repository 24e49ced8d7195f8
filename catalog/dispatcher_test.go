package catalog

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glintstream/go-twitch/core"
)

type recordedCall struct {
	method string
	url    string
	mode   core.AuthMode
	scopes []core.AuthScope
	body   any
}

type fakeExecutor struct {
	calls    []recordedCall
	response any
	err      error
}

func (f *fakeExecutor) Get(
	ctx context.Context,
	requestURL string,
	mode core.AuthMode,
	required []core.AuthScope,
) (any, error) {
	f.calls = append(f.calls, recordedCall{method: "GET", url: requestURL, mode: mode, scopes: required})
	return f.response, f.err
}

func (f *fakeExecutor) Post(
	ctx context.Context,
	requestURL string,
	mode core.AuthMode,
	required []core.AuthScope,
	body any,
) (any, error) {
	f.calls = append(f.calls, recordedCall{method: "POST", url: requestURL, mode: mode, scopes: required, body: body})
	return f.response, f.err
}

var _ core.RequestExecutor = (*fakeExecutor)(nil)

const testBaseURL = "https://api.example.test/helix/"

func newDispatcher(executor *fakeExecutor) *Dispatcher {
	return NewDispatcher(executor, testBaseURL, nil, nil)
}

func leaderboardSpec() OperationSpec {
	return OperationSpec{
		Name:           "GetBitsLeaderboard",
		Method:         "GET",
		Path:           "bits/leaderboard",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeBitsRead},
		Params: []ParamSpec{
			{Name: "count", Kind: ParamInt, Range: &IntRange{Min: 1, Max: 100}},
			{Name: "period", Kind: ParamString, AllowedValues: []string{"all", "day", "week", "month", "year"}},
			{Name: "started_at", Kind: ParamDatetime},
			{Name: "user_id", Kind: ParamString},
		},
	}
}

func TestDispatcher_RangeViolationMakesNoNetworkCall(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{}}
	dispatcher := newDispatcher(executor)

	_, err := dispatcher.Execute(context.Background(), leaderboardSpec(), map[string]any{
		"count": 150,
	})
	if !core.IsTextCode(err, core.ErrorInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if len(executor.calls) != 0 {
		t.Fatalf("validation failures must not reach the transport, got %d calls", len(executor.calls))
	}
}

func TestDispatcher_MissingRequiredArgument(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{}}
	dispatcher := newDispatcher(executor)
	spec := OperationSpec{
		Name:     "RedeemCode",
		Method:   "POST",
		Path:     "entitlements/code",
		AuthMode: core.AuthModeApp,
		Params: []ParamSpec{
			{Name: "code", Kind: ParamList, Required: true, Range: &IntRange{Min: 1, Max: 20}},
		},
	}
	_, err := dispatcher.Execute(context.Background(), spec, map[string]any{})
	if !core.IsTextCode(err, core.ErrorMissingArgument) {
		t.Fatalf("expected missing argument, got %v", err)
	}
	if len(executor.calls) != 0 {
		t.Fatalf("expected zero network calls, got %d", len(executor.calls))
	}
}

func TestDispatcher_RequireAnyGroup(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{}}
	dispatcher := newDispatcher(executor)
	spec := OperationSpec{
		Name:     "GetUsers",
		Method:   "GET",
		Path:     "users",
		AuthMode: core.AuthModeEither,
		Params: []ParamSpec{
			{Name: "id", Kind: ParamList, Range: &IntRange{Min: 1, Max: 100}},
			{Name: "login", Kind: ParamList, Range: &IntRange{Min: 1, Max: 100}},
		},
		RequireAny: [][]string{{"id", "login"}},
		SplitLists: true,
	}

	if _, err := dispatcher.Execute(context.Background(), spec, map[string]any{}); !core.IsTextCode(err, core.ErrorMissingArgument) {
		t.Fatalf("expected missing argument when neither group member is supplied, got %v", err)
	}
	if _, err := dispatcher.Execute(context.Background(), spec, map[string]any{
		"login": []string{"someone"},
	}); err != nil {
		t.Fatalf("one group member must satisfy the group: %v", err)
	}
}

func TestDispatcher_SplitListsEmitRepeatedKeys(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{}}
	dispatcher := newDispatcher(executor)
	spec := OperationSpec{
		Name:     "GetUsers",
		Method:   "GET",
		Path:     "users",
		AuthMode: core.AuthModeEither,
		Params: []ParamSpec{
			{Name: "login", Kind: ParamList},
		},
		SplitLists: true,
	}

	if _, err := dispatcher.Execute(context.Background(), spec, map[string]any{
		"login": []string{"alpha", "beta", "gamma"},
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	parsed, err := url.Parse(executor.calls[0].url)
	if err != nil {
		t.Fatalf("parse request url: %v", err)
	}
	logins := parsed.Query()["login"]
	if len(logins) != 3 || logins[0] != "alpha" || logins[2] != "gamma" {
		t.Fatalf("expected three repeated login keys, got %v", logins)
	}
}

func TestDispatcher_PairedAndOrderedDates(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{}}
	dispatcher := newDispatcher(executor)
	spec := OperationSpec{
		Name:           "GetExtensionAnalytics",
		Method:         "GET",
		Path:           "analytics/extensions",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeAnalyticsReadExtensions},
		Params: []ParamSpec{
			{Name: "started_at", Kind: ParamDatetime},
			{Name: "ended_at", Kind: ParamDatetime},
		},
		Paired:  [][2]string{{"started_at", "ended_at"}},
		Ordered: [][2]string{{"started_at", "ended_at"}},
	}

	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 3, 8, 0, 0, 0, 0, time.UTC)

	if _, err := dispatcher.Execute(context.Background(), spec, map[string]any{
		"started_at": start,
	}); !core.IsTextCode(err, core.ErrorInvalidArgument) {
		t.Fatalf("lone paired date must fail, got %v", err)
	}
	if _, err := dispatcher.Execute(context.Background(), spec, map[string]any{
		"started_at": end,
		"ended_at":   start,
	}); !core.IsTextCode(err, core.ErrorInvalidArgument) {
		t.Fatalf("reversed dates must fail, got %v", err)
	}
	if _, err := dispatcher.Execute(context.Background(), spec, map[string]any{
		"started_at": start,
		"ended_at":   end,
	}); err != nil {
		t.Fatalf("well-formed date range must pass: %v", err)
	}
	parsed, _ := url.Parse(executor.calls[0].url)
	if got := parsed.Query().Get("started_at"); !strings.HasPrefix(got, "2021-03-01T") {
		t.Fatalf("datetime arguments must serialize as RFC 3339, got %q", got)
	}
}

func TestDispatcher_CombinedListMax(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{}}
	dispatcher := newDispatcher(executor)
	spec := OperationSpec{
		Name:     "GetGames",
		Method:   "GET",
		Path:     "games",
		AuthMode: core.AuthModeEither,
		Params: []ParamSpec{
			{Name: "id", Kind: ParamList},
			{Name: "name", Kind: ParamList},
		},
		RequireAny:  [][]string{{"id", "name"}},
		CombinedMax: &CombinedMax{Params: []string{"id", "name"}, Max: 100},
		SplitLists:  true,
	}

	ids := make([]string, 60)
	names := make([]string, 60)
	for i := range ids {
		ids[i] = "id"
		names[i] = "name"
	}
	_, err := dispatcher.Execute(context.Background(), spec, map[string]any{
		"id":   ids,
		"name": names,
	})
	if !core.IsTextCode(err, core.ErrorInvalidArgument) {
		t.Fatalf("expected combined cap violation, got %v", err)
	}
}

func TestDispatcher_UndeclaredArgumentRejected(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{}}
	dispatcher := newDispatcher(executor)
	_, err := dispatcher.Execute(context.Background(), leaderboardSpec(), map[string]any{
		"bogus": "value",
	})
	if !core.IsTextCode(err, core.ErrorInvalidArgument) {
		t.Fatalf("expected invalid argument for undeclared parameter, got %v", err)
	}
}

func TestDispatcher_PostWrapsBodyInEnvelope(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{}}
	dispatcher := newDispatcher(executor)
	spec := OperationSpec{
		Name:           "CheckAutomodStatus",
		Method:         "POST",
		Path:           "moderation/enforcements/status",
		AuthMode:       core.AuthModeUser,
		RequiredScopes: []core.AuthScope{core.ScopeModerationRead},
		Params: []ParamSpec{
			{Name: "broadcaster_id", Kind: ParamString, Required: true},
			{Name: "messages", Kind: ParamJSON, Required: true, In: InBody},
		},
		BodyEnvelope: "data",
	}

	messages := []map[string]any{{"msg_id": "1", "msg_text": "hello", "user_id": "u1"}}
	if _, err := dispatcher.Execute(context.Background(), spec, map[string]any{
		"broadcaster_id": "123",
		"messages":       messages,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	call := executor.calls[0]
	if call.method != "POST" {
		t.Fatalf("expected POST, got %s", call.method)
	}
	envelope, ok := call.body.(map[string]any)
	if !ok {
		t.Fatalf("expected enveloped body, got %T", call.body)
	}
	if _, ok := envelope["data"].([]map[string]any); !ok {
		t.Fatalf("expected message list under the data key, got %v", envelope)
	}
	parsed, _ := url.Parse(call.url)
	if parsed.Query().Get("broadcaster_id") != "123" {
		t.Fatalf("query parameter missing from post url: %s", call.url)
	}
}

func TestDispatcher_PropagatesAuthModeAndScopes(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{}}
	dispatcher := newDispatcher(executor)
	if _, err := dispatcher.Execute(context.Background(), leaderboardSpec(), map[string]any{
		"count": 10,
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	call := executor.calls[0]
	if call.mode != core.AuthModeUser {
		t.Fatalf("auth mode not propagated, got %s", call.mode)
	}
	if len(call.scopes) != 1 || call.scopes[0] != core.ScopeBitsRead {
		t.Fatalf("required scopes not propagated, got %v", call.scopes)
	}
}

func TestDispatcher_NormalizesDatetimeFields(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{
		"data": []any{
			map[string]any{"id": "abc", "created_at": "2021-03-01T10:00:00Z"},
		},
	}}
	dispatcher := newDispatcher(executor)
	spec := OperationSpec{
		Name:           "GetClips",
		Method:         "GET",
		Path:           "clips",
		AuthMode:       core.AuthModeEither,
		Params:         []ParamSpec{{Name: "id", Kind: ParamList}},
		RequireAny:     [][]string{{"id"}},
		DatetimeFields: []string{"created_at"},
	}
	body, err := dispatcher.Execute(context.Background(), spec, map[string]any{
		"id": []string{"abc"},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	record := body.(map[string]any)["data"].([]any)[0].(map[string]any)
	if _, ok := record["created_at"].(time.Time); !ok {
		t.Fatalf("created_at not normalized: %T", record["created_at"])
	}
}

func TestDispatcher_NormalizesEnumFields(t *testing.T) {
	executor := &fakeExecutor{response: map[string]any{
		"data": []any{
			map[string]any{"code": "AAA", "status": "mystery"},
		},
	}}
	dispatcher := newDispatcher(executor)
	spec := OperationSpec{
		Name:     "GetCodeStatus",
		Method:   "GET",
		Path:     "entitlements/codes",
		AuthMode: core.AuthModeApp,
		Params: []ParamSpec{
			{Name: "code", Kind: ParamList, Required: true, Range: &IntRange{Min: 1, Max: 20}},
			{Name: "user_id", Kind: ParamString, Required: true},
		},
		SplitLists: true,
		EnumRules: []EnumRule{
			{Fields: []string{"status"}, Parse: core.ParseCodeStatus, Fallback: string(core.CodeStatusUnknown)},
		},
	}
	body, err := dispatcher.Execute(context.Background(), spec, map[string]any{
		"code":    []string{"AAA"},
		"user_id": "123",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	record := body.(map[string]any)["data"].([]any)[0].(map[string]any)
	if record["status"] != string(core.CodeStatusUnknown) {
		t.Fatalf("unknown enum must fall back, got %v", record["status"])
	}
}

func TestDispatcher_ExecutorErrorPropagatesUntouched(t *testing.T) {
	wantErr := core.NewUnauthenticated(core.AuthModeUser)
	executor := &fakeExecutor{err: wantErr}
	dispatcher := newDispatcher(executor)
	_, err := dispatcher.Execute(context.Background(), leaderboardSpec(), map[string]any{})
	if !core.IsTextCode(err, core.ErrorUnauthenticated) {
		t.Fatalf("executor errors must propagate untouched, got %v", err)
	}
}
