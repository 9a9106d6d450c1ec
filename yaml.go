package mapedit

import (
	"bytes"
	"fmt"
	"sort"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

const (
	yamlIndent    = 2
	yamlIndentSeq = true
)

// Parse decodes a YAML (or JSON) document into a Map. Empty input yields an
// empty Map.
func Parse(data []byte) (Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Map{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("mapedit: failed to parse YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Map{}, nil
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	var raw map[string]any
	if err := doc.Content[0].Decode(&raw); err != nil {
		return nil, fmt.Errorf("mapedit: failed to decode YAML: %w", err)
	}
	return normalize(Map(raw)).(Map), nil
}

// Marshal encodes data as YAML with keys sorted at every level.
func Marshal(data Map) ([]byte, error) {
	var buf bytes.Buffer
	enc := gyaml.NewEncoder(
		&buf, gyaml.Indent(yamlIndent), gyaml.IndentSequence(yamlIndentSeq),
	)
	if err := enc.Encode(toMapSlice(data)); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("mapedit: failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("mapedit: failed to encode YAML: %w", err)
	}

	return buf.Bytes(), nil
}

func toMapSlice(m Map) gyaml.MapSlice {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ms := make(gyaml.MapSlice, 0, len(keys))
	for _, k := range keys {
		ms = append(ms, gyaml.MapItem{Key: k, Value: orderedValue(m[k])})
	}
	return ms
}

func orderedValue(v any) any {
	if sub, ok := asMap(v); ok {
		return toMapSlice(sub)
	}
	if seq, ok := v.([]any); ok {
		out := make([]any, len(seq))
		for i, e := range seq {
			out[i] = orderedValue(e)
		}
		return out
	}
	return v
}

func keyString(k any) string {
	switch vv := k.(type) {
	case string:
		return vv
	case fmt.Stringer:
		return vv.String()
	default:
		return fmt.Sprint(vv)
	}
}
