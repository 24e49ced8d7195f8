package normalize

import (
	"testing"
	"time"

	"github.com/glintstream/go-twitch/core"
)

func analyticsBody() map[string]any {
	return map[string]any{
		"data": []any{
			map[string]any{
				"extension_id": "abc",
				"date_range": map[string]any{
					"started_at": "2021-03-01T00:00:00Z",
					"ended_at":   "2021-03-08T00:00:00Z",
				},
				"started_at": "2021-03-01T00:00:00Z",
			},
		},
		"pagination": map[string]any{"cursor": "eyJiIjpudWxs"},
	}
}

func TestFieldsToTime_ConvertsNestedFields(t *testing.T) {
	body, err := FieldsToTime(analyticsBody(), []string{"started_at", "ended_at"})
	if err != nil {
		t.Fatalf("normalize datetimes: %v", err)
	}
	record := body.(map[string]any)["data"].([]any)[0].(map[string]any)
	if _, ok := record["started_at"].(time.Time); !ok {
		t.Fatalf("top-level started_at not converted: %T", record["started_at"])
	}
	dateRange := record["date_range"].(map[string]any)
	started, ok := dateRange["started_at"].(time.Time)
	if !ok {
		t.Fatalf("nested started_at not converted: %T", dateRange["started_at"])
	}
	if started.Year() != 2021 || started.Month() != time.March {
		t.Fatalf("unexpected parsed time: %v", started)
	}
}

func TestFieldsToTime_Idempotent(t *testing.T) {
	body, err := FieldsToTime(analyticsBody(), []string{"started_at", "ended_at"})
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	again, err := FieldsToTime(body, []string{"started_at", "ended_at"})
	if err != nil {
		t.Fatalf("second pass must not fail: %v", err)
	}
	record := again.(map[string]any)["data"].([]any)[0].(map[string]any)
	first := record["started_at"].(time.Time)
	dateRange := record["date_range"].(map[string]any)
	if !first.Equal(dateRange["started_at"].(time.Time)) {
		t.Fatalf("second pass altered values")
	}
}

func TestFieldsToTime_AbsentFieldsLeftAlone(t *testing.T) {
	body := map[string]any{"data": []any{map[string]any{"name": "game"}}}
	if _, err := FieldsToTime(body, []string{"created_at"}); err != nil {
		t.Fatalf("absent fields must not fail: %v", err)
	}
}

func TestFieldsToTime_MalformedValueFails(t *testing.T) {
	body := map[string]any{"started_at": "not-a-timestamp"}
	_, err := FieldsToTime(body, []string{"started_at"})
	if err == nil {
		t.Fatalf("expected malformed response error")
	}
	if !core.IsTextCode(err, core.ErrorMalformedResponse) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFieldsToEnum_UnknownValueFallsBack(t *testing.T) {
	body := map[string]any{
		"data": []any{
			map[string]any{"code": "AAA", "status": "totally-unknown-value"},
			map[string]any{"code": "BBB", "status": "successfully_redeemed"},
		},
	}
	out := FieldsToEnum(body, []string{"status"}, core.ParseCodeStatus, string(core.CodeStatusUnknown))
	records := out.(map[string]any)["data"].([]any)
	if records[0].(map[string]any)["status"] != string(core.CodeStatusUnknown) {
		t.Fatalf("unknown value must map to fallback, got %v", records[0].(map[string]any)["status"])
	}
	if records[1].(map[string]any)["status"] != string(core.CodeStatusSuccessfullyRedeemed) {
		t.Fatalf("known value must map to canonical constant, got %v", records[1].(map[string]any)["status"])
	}
}

func TestFieldsToEnum_NonStringLeftAlone(t *testing.T) {
	body := map[string]any{"status": 7}
	out := FieldsToEnum(body, []string{"status"}, core.ParseCodeStatus, string(core.CodeStatusUnknown))
	if out.(map[string]any)["status"] != 7 {
		t.Fatalf("non-string field must be left untouched")
	}
}

func TestParseTime_DateOnly(t *testing.T) {
	parsed, err := ParseTime("2021-03-01")
	if err != nil {
		t.Fatalf("parse date-only value: %v", err)
	}
	if parsed.Day() != 1 {
		t.Fatalf("unexpected day: %d", parsed.Day())
	}
}
