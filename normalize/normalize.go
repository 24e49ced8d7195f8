// Package normalize post-processes decoded JSON bodies, converting
// designated string fields into time values or canonical enumeration
// constants. Both passes operate uniformly over single records and
// arbitrarily nested list-of-record shapes.
package normalize

import (
	"time"

	"github.com/glintstream/go-twitch/core"
)

// FieldsToTime replaces ISO-8601 string values of the named fields with
// time.Time values, anywhere in the record or list-of-records structure.
// Fields that are absent or already non-string are left untouched, which
// makes the pass idempotent. A named field holding an unparseable string
// fails with MalformedResponse.
func FieldsToTime(body any, fields []string) (any, error) {
	if len(fields) == 0 {
		return body, nil
	}
	target := fieldSet(fields)
	if err := walkTime(body, target); err != nil {
		return nil, err
	}
	return body, nil
}

// FieldsToEnum replaces string values of the named fields with the canonical
// constant produced by parse, or with fallback when parse does not recognize
// the value. Unknown values are an expected condition, not an error: the
// upstream service may introduce new states without notice.
func FieldsToEnum(body any, fields []string, parse func(string) (string, bool), fallback string) any {
	if len(fields) == 0 || parse == nil {
		return body
	}
	walkEnum(body, fieldSet(fields), parse, fallback)
	return body
}

func fieldSet(fields []string) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}

func walkTime(node any, fields map[string]struct{}) error {
	switch typed := node.(type) {
	case map[string]any:
		for key, value := range typed {
			if _, ok := fields[key]; ok {
				raw, isString := value.(string)
				if isString {
					parsed, err := ParseTime(raw)
					if err != nil {
						return core.NewMalformedResponse(key, err)
					}
					typed[key] = parsed
					continue
				}
			}
			if err := walkTime(value, fields); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range typed {
			if err := walkTime(item, fields); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkEnum(node any, fields map[string]struct{}, parse func(string) (string, bool), fallback string) {
	switch typed := node.(type) {
	case map[string]any:
		for key, value := range typed {
			if _, ok := fields[key]; ok {
				if raw, isString := value.(string); isString {
					if canonical, known := parse(raw); known {
						typed[key] = canonical
					} else {
						typed[key] = fallback
					}
					continue
				}
			}
			walkEnum(value, fields, parse, fallback)
		}
	case []any:
		for _, item := range typed {
			walkEnum(item, fields, parse, fallback)
		}
	}
}

// ParseTime parses an ISO-8601 timestamp, accepting the date-only form the
// API uses for report ranges.
func ParseTime(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Parse("2006-01-02", value)
}
