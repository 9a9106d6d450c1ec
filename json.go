package mapedit

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// ParseJSON decodes a JSON object into a Map.
func ParseJSON(data []byte) (Map, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("mapedit: failed to parse JSON: %w", err)
	}
	m, ok := normalize(raw).(Map)
	if !ok {
		return nil, ErrNotMapping
	}
	return m, nil
}

// MarshalJSON encodes data as compact JSON with sorted keys. A nil Map
// encodes as an empty object.
func MarshalJSON(data Map) ([]byte, error) {
	if data == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("mapedit: failed to encode JSON: %w", err)
	}
	return b, nil
}

func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("mapedit: failed to encode JSON: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
