package mapedit

import (
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/goccy/go-json"
)

// ApplyJSONPatch applies an RFC 6902 patch to data. Every operation goes
// through Set and Unset, so untouched branches keep their identity and a
// patch that changes nothing returns data itself. On error data is returned
// unchanged alongside the error.
func ApplyJSONPatch(data Map, patch jsonpatch.Patch) (Map, error) {
	return applyPatch(data, patch, nil)
}

// ApplyJSONPatchBytes decodes patch and applies it to data.
func ApplyJSONPatchBytes(data Map, patch []byte) (Map, error) {
	return ApplyJSONPatchAtPath(data, patch, nil)
}

// ApplyJSONPatchAtPath applies patch with every pointer taken relative to
// base.
func ApplyJSONPatchAtPath(data Map, patch []byte, base Keys) (Map, error) {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return data, fmt.Errorf("mapedit: failed to decode JSON patch: %w", err)
	}
	return applyPatch(data, p, base)
}

func applyPatch(data Map, patch jsonpatch.Patch, base Keys) (Map, error) {
	out := data
	for i, op := range patch {
		next, err := applyOp(out, op, base)
		if err != nil {
			return data, fmt.Errorf("mapedit: patch operation %d (%s): %w", i, op.Kind(), err)
		}
		out = next
	}
	return out, nil
}

func applyOp(data Map, op jsonpatch.Operation, base Keys) (Map, error) {
	path, err := opPointer(op.Path, base)
	if err != nil {
		return nil, err
	}

	switch op.Kind() {
	case "add":
		v, err := opValue(op)
		if err != nil {
			return nil, err
		}
		if _, err := parentOf(data, path); err != nil {
			return nil, err
		}
		return Set(data, path, v), nil

	case "replace":
		v, err := opValue(op)
		if err != nil {
			return nil, err
		}
		if err := mustExist(data, path); err != nil {
			return nil, err
		}
		return Set(data, path, v), nil

	case "remove":
		if err := mustExist(data, path); err != nil {
			return nil, err
		}
		return Unset(data, path), nil

	case "test":
		v, err := opValue(op)
		if err != nil {
			return nil, err
		}
		if err := mustExist(data, path); err != nil {
			return nil, err
		}
		cur, _ := Get(data, path)
		eq, err := equalJSON(cur, v)
		if err != nil {
			return nil, err
		}
		if !eq {
			return nil, fmt.Errorf("%w: %s", ErrTestFailed, FormatPointer(path))
		}
		return data, nil

	case "copy", "move":
		from, err := opPointer(op.From, base)
		if err != nil {
			return nil, err
		}
		if err := mustExist(data, from); err != nil {
			return nil, err
		}
		v, _ := Get(data, from)

		out := data
		if op.Kind() == "move" {
			if isPrefix(from, path) && len(from) == len(path) {
				return data, nil
			}
			if isPrefix(from, path) && len(from) < len(path) {
				return nil, fmt.Errorf("%w: cannot move %s into itself", ErrUnsupportedOp, FormatPointer(from))
			}
			out = Unset(data, from)
		}
		if _, err := parentOf(out, path); err != nil {
			return nil, err
		}
		return Set(out, path, v), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOp, op.Kind())
	}
}

// opValue decodes the operation's value the same way ParseJSON decodes a
// document, so numbers come back as float64.
func opValue(op jsonpatch.Operation) (any, error) {
	raw, ok := op["value"]
	if !ok {
		return nil, fmt.Errorf("mapedit: %s operation is missing a value", op.Kind())
	}
	if raw == nil {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(*raw), &v); err != nil {
		return nil, fmt.Errorf("mapedit: failed to decode patch value: %w", err)
	}
	return normalize(v), nil
}

func opPointer(get func() (string, error), base Keys) (Keys, error) {
	s, err := get()
	if err != nil {
		return nil, err
	}
	keys, err := ParsePointer(s)
	if err != nil {
		return nil, err
	}
	if len(base)+len(keys) == 0 {
		return nil, fmt.Errorf("%w: whole-document target", ErrUnsupportedOp)
	}
	out := make(Keys, 0, len(base)+len(keys))
	out = append(out, base...)
	return append(out, keys...), nil
}

// parentOf returns the mapping that holds the last segment of path.
func parentOf(data Map, path Keys) (Map, error) {
	cur := data
	for _, k := range path[:len(path)-1] {
		v, ok := cur[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, FormatPointer(path))
		}
		if _, isSeq := v.([]any); isSeq {
			return nil, fmt.Errorf("%w: %s", ErrArrayPath, FormatPointer(path))
		}
		next, ok := asMap(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, FormatPointer(path))
		}
		cur = next
	}
	return cur, nil
}

func mustExist(data Map, path Keys) error {
	parent, err := parentOf(data, path)
	if err != nil {
		return err
	}
	if !HasKey(parent, path[len(path)-1]) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, FormatPointer(path))
	}
	return nil
}

func equalJSON(a, b any) (bool, error) {
	ab, err := marshalValue(a)
	if err != nil {
		return false, err
	}
	bb, err := marshalValue(b)
	if err != nil {
		return false, err
	}
	return jsonpatch.Equal(ab, bb), nil
}

func isPrefix(prefix, path Keys) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i := range prefix {
		if prefix[i] != path[i] {
			return false
		}
	}
	return true
}

// ParsePointer converts an RFC 6901 JSON pointer into Keys. The empty
// pointer yields empty Keys.
func ParsePointer(s string) (Keys, error) {
	if s == "" {
		return Keys{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("mapedit: invalid JSON pointer %q", s)
	}
	parts := strings.Split(s[1:], "/")
	keys := make(Keys, len(parts))
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		keys[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return keys, nil
}

// FormatPointer renders keys as an RFC 6901 JSON pointer.
func FormatPointer(keys Keys) string {
	var b strings.Builder
	for _, k := range keys {
		k = strings.ReplaceAll(k, "~", "~0")
		b.WriteByte('/')
		b.WriteString(strings.ReplaceAll(k, "/", "~1"))
	}
	return b.String()
}
