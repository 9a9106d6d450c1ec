// Package mapedit reads and edits nested string-keyed maps without mutating
// them. Edits rebuild only the branch leading to the target and share every
// other subtree with the input.
package mapedit

import "reflect"

// Map is a nested string-keyed structure. Operations in this package never
// modify a Map they are given; they return the original or a new Map.
type Map map[string]any

// asMap reports whether v can be descended into.
func asMap(v any) (Map, bool) {
	switch vv := v.(type) {
	case Map:
		return vv, true
	case map[string]any:
		return Map(vv), true
	default:
		return nil, false
	}
}

// same is strict identity: reference types compare by address, comparable
// values by ==, anything else is never the same.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ma, ok := asMap(a); ok {
		mb, ok := asMap(b)
		return ok && reflect.ValueOf(ma).UnsafePointer() == reflect.ValueOf(mb).UnsafePointer()
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// normalize converts decoded mappings into Map, recursively.
func normalize(v any) any {
	switch vv := v.(type) {
	case Map:
		out := make(Map, len(vv))
		for k, e := range vv {
			out[k] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(Map, len(vv))
		for k, e := range vv {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(Map, len(vv))
		for k, e := range vv {
			out[keyString(k)] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}
