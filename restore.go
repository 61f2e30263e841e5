package changedetect

// RestoreOriginal returns a new record holding the state this record had
// before any currently tracked change. Fields with a tracked original revert
// to it; all other fields keep their current value, except that nested
// tracked records (and collections of them) are restored recursively, so a
// child mutated in place reverts even though this record never recorded an
// original for that field. The returned record starts with a clean change
// state.
func (r *Record) RestoreOriginal() *Record {
	st := r.mustState()
	values := make(map[string]any, len(r.schema.fields))
	for _, name := range r.schema.fields {
		if original, tracked := st.original[name]; tracked {
			values[name] = original
			continue
		}
		values[name] = restoreValue(r.values[name])
	}
	return newRecord(r.schema, values)
}

// GetOriginalFieldValue returns the original value of a field: the tracked
// original when one exists, otherwise the current value with the same
// recursive-restore rule RestoreOriginal applies.
func (r *Record) GetOriginalFieldValue(name string) (any, error) {
	if !r.schema.Has(name) {
		return nil, invalidField(r.schema, name)
	}
	if original, tracked := r.mustState().original[name]; tracked {
		return original, nil
	}
	return restoreValue(r.values[name]), nil
}

// restoreValue restores any tracked records contained in a field value:
// the value itself, or elements of a slice or string-keyed map. Containers
// that can hold records are rebuilt so the restored record never aliases
// a container still referenced by the live one.
func restoreValue(value any) any {
	switch v := value.(type) {
	case *Record:
		if v != nil && v.HasChanged() {
			return v.RestoreOriginal()
		}
		return v
	case []*Record:
		restored := make([]*Record, len(v))
		for i, rec := range v {
			if rec != nil && rec.HasChanged() {
				restored[i] = rec.RestoreOriginal()
			} else {
				restored[i] = rec
			}
		}
		return restored
	case map[string]*Record:
		restored := make(map[string]*Record, len(v))
		for key, rec := range v {
			if rec != nil && rec.HasChanged() {
				restored[key] = rec.RestoreOriginal()
			} else {
				restored[key] = rec
			}
		}
		return restored
	case []any:
		restored := make([]any, len(v))
		for i, elem := range v {
			restored[i] = restoreValue(elem)
		}
		return restored
	case map[string]any:
		restored := make(map[string]any, len(v))
		for key, elem := range v {
			restored[key] = restoreValue(elem)
		}
		return restored
	}
	return value
}
