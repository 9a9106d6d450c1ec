package mapedit

// Path addresses a location in a Map: either a single Key or a sequence of
// Keys descending from the root.
type Path interface {
	segments() []string
}

// Key is a single top-level key.
type Key string

func (k Key) segments() []string { return []string{string(k)} }

// Keys is an ordered path; Keys[0] is a top-level key and each following
// key lives in the mapping found at the previous one.
type Keys []string

func (k Keys) segments() []string { return k }

// Updater computes the next value from the current one. ok is false when
// nothing is stored at the path.
type Updater func(current any, ok bool) any

// Has reports whether path exists in data.
func Has(data Map, path Path) bool {
	switch p := path.(type) {
	case Key:
		return HasKey(data, string(p))
	case Keys:
		if len(p) == 0 {
			return false
		}
		_, ok := Seek(data, p)
		return ok
	default:
		return false
	}
}

// Get returns the value at path and whether it exists.
func Get(data Map, path Path) (any, bool) {
	switch p := path.(type) {
	case Key:
		return GetKey(data, string(p))
	case Keys:
		if len(p) == 0 {
			return nil, false
		}
		return Seek(data, p)
	default:
		return nil, false
	}
}

// Unset returns data without the value at path. When path does not exist
// data itself is returned and nothing is allocated.
func Unset(data Map, path Path) Map {
	if !Has(data, path) {
		return data
	}
	switch p := path.(type) {
	case Key:
		return WithoutKey(data, string(p))
	default:
		root, _ := Recast(data, path.segments())
		return root
	}
}

// Update replaces the value at path with fn's result, creating missing
// intermediate mappings. fn is called exactly once. If it returns the value
// already stored, data itself is returned.
func Update(data Map, path Path, fn Updater) Map {
	if path == nil || len(path.segments()) == 0 {
		return data
	}

	current, ok := Get(data, path)
	next := fn(current, ok)
	if ok && same(current, next) {
		return data
	}

	if k, isKey := path.(Key); isKey {
		return WithKey(data, string(k), next)
	}
	keys := path.segments()
	root, inner := Recast(data, keys)
	inner[keys[len(keys)-1]] = next
	return root
}

// Set stores v at path. Setting the value already stored returns data.
func Set(data Map, path Path, v any) Map {
	return Update(data, path, func(any, bool) any { return v })
}
