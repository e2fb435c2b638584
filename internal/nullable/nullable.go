// Package nullable canonicalizes the optional-field shapes used by the Emagn
// API. The backend serializes optional columns as wrapped validity objects
// ({"String": "...", "Valid": true}, {"Time": "...", "Valid": true}), but some
// endpoints return bare strings and others omit the field entirely. Every
// decoded response passes these fields through one normalization point so the
// rest of the codebase never branches on wire shape.
package nullable

import (
	"encoding/json"
	"fmt"
	"time"
)

// String is the canonical form of an optional text field: a value plus a
// presence flag. Present=false means no value was supplied, which is distinct
// from an empty string.
type String struct {
	Value   string
	Present bool
}

// FromString wraps a plain string. Empty input is treated as absent, matching
// how the API reads missing optional fields.
func FromString(s string) String {
	return String{Value: s, Present: s != ""}
}

// Get returns the value when present, otherwise the empty string. Display code
// should use this rather than reading Value directly, since Value may retain a
// stale string even when Present is false.
func (s String) Get() string {
	if !s.Present {
		return ""
	}
	return s.Value
}

// Or returns the value when present, otherwise def.
func (s String) Or(def string) string {
	if !s.Present {
		return def
	}
	return s.Value
}

// UnmarshalJSON accepts any of the three wire shapes. It never returns an
// error: unrecognized payloads degrade to their serialized form.
func (s *String) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = String{Value: string(data), Present: true}
		return nil
	}
	*s = Normalize(raw)
	return nil
}

// MarshalJSON re-emits the wrapped form the backend uses for sql.NullString.
func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		String string `json:"String"`
		Valid  bool   `json:"Valid"`
	}{String: s.Value, Valid: s.Present})
}

// Normalize converts any supported wire representation into a canonical
// String. It is idempotent: feeding a canonical String back in returns it
// unchanged. It never panics; shapes it does not recognize are serialized
// best-effort and marked present.
func Normalize(raw interface{}) String {
	switch v := raw.(type) {
	case nil:
		return String{}
	case string:
		return FromString(v)
	case String:
		return v
	case *String:
		if v == nil {
			return String{}
		}
		return *v
	case map[string]interface{}:
		if value, valid, ok := unwrapValidityObject(v); ok {
			return String{Value: value, Present: valid}
		}
		return serialize(v)
	default:
		return serialize(v)
	}
}

// unwrapValidityObject extracts the value and validity members from a wrapped
// object. The validity flag is authoritative; the value is retained even when
// the flag is false so callers may show a stale value on explicit request.
func unwrapValidityObject(m map[string]interface{}) (value string, valid bool, ok bool) {
	validRaw, hasValid := firstKey(m, "Valid", "valid", "Present", "present")
	if !hasValid {
		return "", false, false
	}
	validBool, isBool := validRaw.(bool)
	if !isBool {
		return "", false, false
	}
	if valueRaw, hasValue := firstKey(m, "String", "Time", "Value", "value"); hasValue && valueRaw != nil {
		if s, isStr := valueRaw.(string); isStr {
			value = s
		} else {
			value = fmt.Sprint(valueRaw)
		}
	}
	return value, validBool, true
}

func firstKey(m map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func serialize(raw interface{}) String {
	if data, err := json.Marshal(raw); err == nil {
		return String{Value: string(data), Present: true}
	}
	return String{Value: fmt.Sprint(raw), Present: true}
}

// Time is the canonical form of an optional timestamp field.
type Time struct {
	Value   time.Time
	Present bool
}

// Get returns the value when present, otherwise the zero time.
func (t Time) Get() time.Time {
	if !t.Present {
		return time.Time{}
	}
	return t.Value
}

// FromTime wraps a plain time. The zero time is treated as absent.
func FromTime(v time.Time) Time {
	return Time{Value: v, Present: !v.IsZero()}
}

// Format renders the timestamp with the given layout, or returns the empty
// string when no value is present.
func (t Time) Format(layout string) string {
	if !t.Present {
		return ""
	}
	return t.Value.Format(layout)
}

// UnmarshalJSON accepts a bare RFC 3339 string, a {"Time", "Valid"} wrapper,
// or null. Like String, it never returns an error; unparsable timestamps are
// treated as absent.
func (t *Time) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Time{}
		return nil
	}
	*t = normalizeTime(raw)
	return nil
}

// MarshalJSON re-emits the wrapped form the backend uses for sql.NullTime.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Time  time.Time `json:"Time"`
		Valid bool      `json:"Valid"`
	}{Time: t.Value, Valid: t.Present})
}

func normalizeTime(raw interface{}) Time {
	switch v := raw.(type) {
	case nil:
		return Time{}
	case string:
		return parseTime(v, v != "")
	case Time:
		return v
	case map[string]interface{}:
		validRaw, hasValid := firstKey(v, "Valid", "valid", "Present", "present")
		validBool, isBool := validRaw.(bool)
		if !hasValid || !isBool {
			return Time{}
		}
		if valueRaw, hasValue := firstKey(v, "Time", "Value", "value"); hasValue {
			if s, isStr := valueRaw.(string); isStr {
				return parseTime(s, validBool)
			}
		}
		return Time{Present: validBool}
	default:
		return Time{}
	}
}

func parseTime(s string, present bool) Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return Time{Value: parsed, Present: present}
		}
	}
	return Time{}
}
