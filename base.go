package mapedit

import "maps"

// HasKey reports whether k is a key of m.
func HasKey(m Map, k string) bool {
	_, ok := m[k]
	return ok
}

// GetKey returns the value stored at k and whether k is present.
func GetKey(m Map, k string) (any, bool) {
	v, ok := m[k]
	return v, ok
}

// WithoutKey returns a shallow copy of m without k. The result is always a
// new Map, even when k is absent.
func WithoutKey(m Map, k string) Map {
	out := make(Map, len(m))
	for key, v := range m {
		if key != k {
			out[key] = v
		}
	}
	return out
}

// WithKey returns a shallow copy of m with k set to v. The copy is made even
// when v is already stored at k.
func WithKey(m Map, k string, v any) Map {
	out := WithoutKey(m, k)
	out[k] = v
	return out
}

// Seek walks path through nested mappings. It stops with false at the first
// segment that is missing or whose parent is not a mapping.
func Seek(m Map, path []string) (any, bool) {
	var needle any = m
	for _, k := range path {
		cur, ok := asMap(needle)
		if !ok || !HasKey(cur, k) {
			return nil, false
		}
		needle = cur[k]
	}
	return needle, true
}

// Recast rebuilds the chain of mappings along path[:len(path)-1] and drops
// the last segment from the innermost one. It returns the new root and the
// innermost new mapping; both are freshly allocated, so the caller may write
// into inner before handing root out. Missing or non-mapping intermediates
// are treated as empty mappings.
func Recast(m Map, path []string) (root, inner Map) {
	if len(path) == 0 {
		root = make(Map, len(m))
		maps.Copy(root, m)
		return root, root
	}

	root = WithoutKey(m, path[0])
	input, needle := m, root
	for i := 0; i < len(path)-1; i++ {
		k := path[i]
		next, _ := asMap(input[k])
		built := WithoutKey(next, path[i+1])
		needle[k] = built
		input, needle = next, built
	}
	return root, needle
}
