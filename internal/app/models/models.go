package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque record identifier. Backends disagree on whether ids are
// JSON strings or numbers, so both decode into the same string form.
type ID string

// UnmarshalJSON accepts a JSON string, a JSON number or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as a plain string
func (id ID) String() string {
	return string(id)
}

// Keyed is implemented by every cached record so collections can be
// deduplicated by id.
type Keyed interface {
	Key() ID
}

// PostType identifies what a comment or media item is attached to
type PostType string

const (
	PostTypeEvent         PostType = "EVENT"
	PostTypeAccommodation PostType = "ACCOMMODATION"
)

// Valid reports whether p is a known post type
func (p PostType) Valid() bool {
	return p == PostTypeEvent || p == PostTypeAccommodation
}
