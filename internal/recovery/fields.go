package recovery

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"alcyxob/fitness-ai/internal/domain"
)

// Fields is a decoded JSON object. Numbers decoded by the extractor are json.Number.
type Fields map[string]any

// lookup returns the first non-nil value stored under any of keys.
func (f Fields) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// str returns the first value under keys that coerces to a non-blank string.
func (f Fields) str(keys ...string) string {
	for _, k := range keys {
		if s, ok := asString(f[k]); ok && s != "" {
			return s
		}
	}
	return ""
}

// strs returns the first value under keys that coerces to a list of strings,
// trimmed and with blanks dropped. An empty result means no key held one.
func (f Fields) strs(keys ...string) []string {
	for _, k := range keys {
		if list := cleanList(asStrings(f[k])); len(list) > 0 {
			return list
		}
	}
	return nil
}

func (f Fields) number(keys ...string) (float64, bool) {
	for _, k := range keys {
		if n, ok := asNumber(f[k]); ok {
			return n, true
		}
	}
	return 0, false
}

func asMap(v any) (Fields, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Fields(m), true
	case Fields:
		return m, true
	}
	return nil, false
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// asString accepts strings and numbers; anything else is not a string.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	}
	return "", false
}

// asStrings coerces a list, or a single comma-separated string, to strings.
// Elements that are neither strings nor numbers are dropped.
func asStrings(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := asString(item); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		return strings.Split(s, ",")
	}
	return nil
}

// asNumber accepts numbers and numeric-looking strings.
func asNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// boundedInt rounds f and reports whether the result lies within [lo, hi].
func boundedInt(f float64, lo, hi int) (int, bool) {
	r := math.Round(f)
	if r < float64(lo) || r > float64(hi) {
		return 0, false
	}
	return int(r), true
}

// isJSONNumber is the strict check used by the validator: strings never count.
func isJSONNumber(v any) (float64, bool) {
	if _, ok := v.(string); ok {
		return 0, false
	}
	return asNumber(v)
}

// cleanList trims every element and drops blanks.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orDefault(list []string, fallback []string) []string {
	if len(list) == 0 {
		return append([]string(nil), fallback...)
	}
	return list
}

// ExerciseFields renders a normalized exercise back into its generic form.
func ExerciseFields(e domain.Exercise) Fields { return toFields(e) }

// AlternativeFields renders a normalized alternative back into its generic form.
func AlternativeFields(a domain.Alternative) Fields { return toFields(a) }

// WorkoutFields renders a normalized workout back into its generic form.
func WorkoutFields(w domain.Workout) Fields { return toFields(w) }

func toFields(v any) Fields {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var f Fields
	if err := dec.Decode(&f); err != nil {
		return nil
	}
	return f
}
