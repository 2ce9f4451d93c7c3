package domain

import "strconv"

// ResolveUserRef collapses the heterogeneous "who" shapes found in stored
// payloads and legacy join results into a canonical UserRef: a bare numeric
// identifier, a joined record with id and name fields, or a single-element
// slice wrapping such a record. Anything it cannot make sense of resolves to
// nil; it never panics.
func ResolveUserRef(value any) *UserRef {
	switch v := value.(type) {
	case nil:
		return nil
	case UserRef:
		ref := v
		return &ref
	case *UserRef:
		if v == nil {
			return nil
		}
		ref := *v
		return &ref
	case OrgUser:
		ref := v.Ref()
		return &ref
	case *OrgUser:
		if v == nil {
			return nil
		}
		ref := v.Ref()
		return &ref
	case map[string]any:
		return resolveRecord(v)
	case []any:
		if len(v) != 1 {
			return nil
		}
		return ResolveUserRef(v[0])
	default:
		if id, ok := resolveID(value); ok {
			return &UserRef{ID: id}
		}
		return nil
	}
}

func resolveRecord(record map[string]any) *UserRef {
	id, ok := resolveID(record["id"])
	if !ok {
		return nil
	}

	ref := &UserRef{ID: id}
	if name, ok := record["name"].(string); ok && name != "" {
		ref.Name = &name
	}
	return ref
}

func resolveID(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case float64:
		// JSON numbers decode as float64; reject fractional values.
		if v <= 0 || v != float64(uint64(v)) {
			return 0, false
		}
		return uint64(v), true
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || id == 0 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
