package mapedit

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Diff returns the RFC 7386 merge patch that turns original into modified.
func Diff(original, modified Map) ([]byte, error) {
	a, err := MarshalJSON(original)
	if err != nil {
		return nil, err
	}
	b, err := MarshalJSON(modified)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("mapedit: failed to create merge patch: %w", err)
	}
	return patch, nil
}

// ApplyMergePatch applies an RFC 7386 merge patch to data. Members set to
// null are removed, objects are merged recursively and anything else
// replaces the current value. Branches the patch leaves alone keep their
// identity.
func ApplyMergePatch(data Map, patch []byte) (Map, error) {
	p, err := ParseJSON(patch)
	if err != nil {
		return data, err
	}
	return mergeInto(data, p), nil
}

func mergeInto(data, patch Map) Map {
	out := data
	for k, pv := range patch {
		if pv == nil {
			out = Unset(out, Key(k))
			continue
		}
		sub, ok := asMap(pv)
		if !ok {
			out = Set(out, Key(k), pv)
			continue
		}
		out = Update(out, Key(k), func(current any, _ bool) any {
			cur, isMap := asMap(current)
			if !isMap {
				cur = Map{}
			}
			return mergeInto(cur, sub)
		})
	}
	return out
}
