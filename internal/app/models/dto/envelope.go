package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the loose wrapper the backend puts around payloads. Any of the
// fields may be absent, and Data may hold either the payload itself or an
// object with an items list.
type Envelope map[string]json.RawMessage

func parseEnvelope(body []byte) (Envelope, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, false
	}
	return env, true
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// listPayload finds the array inside body, or nil when there is none
func listPayload(body []byte, names []string) json.RawMessage {
	if isArray(body) {
		return body
	}

	env, ok := parseEnvelope(body)
	if !ok {
		return nil
	}

	if data, ok := env["data"]; ok {
		if isArray(data) {
			return data
		}
		if inner, ok := parseEnvelope(data); ok {
			if items, ok := inner["items"]; ok && isArray(items) {
				return items
			}
			for _, name := range names {
				if named, ok := inner[name]; ok && isArray(named) {
					return named
				}
			}
		}
	}

	if items, ok := env["items"]; ok && isArray(items) {
		return items
	}

	for _, name := range names {
		if named, ok := env[name]; ok && isArray(named) {
			return named
		}
	}

	return nil
}

// DecodeList normalizes a list response. A bare array, {"data": [...]},
// {"data": {"items": [...]}} and a named field such as {"events": [...]} all
// decode into a slice; any other shape yields an empty, non-nil slice.
// An error is returned only when the array exists but its elements do not
// decode into T.
func DecodeList[T any](body []byte, names ...string) ([]T, error) {
	raw := listPayload(body, names)
	if raw == nil {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return []T{}, fmt.Errorf("decode list: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// DecodeRecord normalizes a single-record response. A named field such as
// {"event": {...}}, {"data": {...}} and a bare object are accepted, in that
// order of preference.
func DecodeRecord[T any](body []byte, names ...string) (T, error) {
	var record T

	env, ok := parseEnvelope(body)
	if !ok {
		return record, fmt.Errorf("decode record: response is not an object")
	}

	raw := json.RawMessage(body)
	found := false
	for _, name := range names {
		if named, ok := env[name]; ok && isObject(named) {
			raw, found = named, true
			break
		}
	}
	if !found {
		if data, ok := env["data"]; ok && isObject(data) {
			raw = data
			if inner, ok := parseEnvelope(data); ok {
				for _, name := range names {
					if named, ok := inner[name]; ok && isObject(named) {
						raw = named
						break
					}
				}
			}
		}
	}

	if err := json.Unmarshal(raw, &record); err != nil {
		return record, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}

// ErrorMessage extracts a human readable message from a failed response.
// It looks at "message", "error.message" and a string "error", and returns
// "" when none is present.
func ErrorMessage(body []byte) string {
	env, ok := parseEnvelope(body)
	if !ok {
		return ""
	}

	if msg := stringField(env, "message"); msg != "" {
		return msg
	}

	raw, ok := env["error"]
	if !ok {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	if inner, ok := parseEnvelope(raw); ok {
		return stringField(inner, "message")
	}
	return ""
}

func stringField(env Envelope, name string) string {
	raw, ok := env[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
