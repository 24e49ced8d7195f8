// Package urlbuild constructs request URLs from a base path and a parameter
// mapping, with policies for dropping absent values and serializing
// list-valued parameters as repeated keys.
package urlbuild

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Options controls parameter serialization.
type Options struct {
	// DropEmpty skips parameters whose value is nil or an empty string.
	DropEmpty bool
	// SplitLists serializes list values as repeated query keys instead of a
	// single comma-joined value.
	SplitLists bool
}

// Build renders base plus the encoded parameter mapping. Values may be
// strings, bools, integers, time.Time, string slices, or nil.
func Build(base string, params map[string]any, opts Options) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("urlbuild: invalid base url %q: %w", base, err)
	}

	query := parsed.Query()
	for key, value := range params {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if value == nil {
			if opts.DropEmpty {
				continue
			}
			query.Set(key, "")
			continue
		}
		values, err := encodeValue(key, value)
		if err != nil {
			return "", err
		}
		if opts.DropEmpty && len(values) == 1 && values[0] == "" {
			continue
		}
		if len(values) > 1 && !opts.SplitLists {
			query.Set(key, strings.Join(values, ","))
			continue
		}
		query.Del(key)
		for _, item := range values {
			query.Add(key, item)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func encodeValue(key string, value any) ([]string, error) {
	switch typed := value.(type) {
	case string:
		return []string{typed}, nil
	case bool:
		return []string{strconv.FormatBool(typed)}, nil
	case int:
		return []string{strconv.Itoa(typed)}, nil
	case int64:
		return []string{strconv.FormatInt(typed, 10)}, nil
	case time.Time:
		return []string{typed.Format(time.RFC3339)}, nil
	case []string:
		out := make([]string, 0, len(typed))
		out = append(out, typed...)
		return out, nil
	case fmt.Stringer:
		return []string{typed.String()}, nil
	default:
		return nil, fmt.Errorf("urlbuild: unsupported value type %T for parameter %q", value, key)
	}
}
