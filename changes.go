package changedetect

// trackedRecords returns the tracked records reachable through a field
// value: the value itself, or the elements of a slice or string-keyed map
// holding tracked records. Values without attached change state are opaque;
// their internal mutation is invisible to the traversal.
func trackedRecords(value any) []*Record {
	switch v := value.(type) {
	case *Record:
		if v == nil {
			return nil
		}
		return []*Record{v}
	case []*Record:
		records := make([]*Record, 0, len(v))
		for _, rec := range v {
			if rec != nil {
				records = append(records, rec)
			}
		}
		return records
	case map[string]*Record:
		records := make([]*Record, 0, len(v))
		for _, rec := range v {
			if rec != nil {
				records = append(records, rec)
			}
		}
		return records
	case []any:
		var records []*Record
		for _, elem := range v {
			if rec, ok := elem.(*Record); ok && rec != nil {
				records = append(records, rec)
			}
		}
		return records
	case map[string]any:
		var records []*Record
		for _, elem := range v {
			if rec, ok := elem.(*Record); ok && rec != nil {
				records = append(records, rec)
			}
		}
		return records
	}
	return nil
}

// HasChanged reports whether this record changed, directly or inside any
// nested tracked record reachable through its fields.
func (r *Record) HasChanged() bool {
	if r.mustState().hasSelfChanged() {
		return true
	}
	for _, name := range r.schema.fields {
		for _, nested := range trackedRecords(r.values[name]) {
			if nested.HasChanged() {
				return true
			}
		}
	}
	return false
}

// NestedChangedFields returns the changed fields of this record where a
// nested tracked record with changes counts as one changed field, in schema
// declaration order. This is the per-field view the export filter and
// partial-update builders work from.
func (r *Record) NestedChangedFields() []string {
	st := r.mustState()
	fields := make([]string, 0, len(st.selfChanged))
	for _, name := range r.schema.fields {
		if _, ok := st.selfChanged[name]; ok {
			fields = append(fields, name)
			continue
		}
		for _, nested := range trackedRecords(r.values[name]) {
			if nested.HasChanged() {
				fields = append(fields, name)
				break
			}
		}
	}
	return fields
}

// ChangedFieldPaths returns the transitive closure of changed field paths.
// A path is a bare field name for a direct change, or "<field>.<path>" for a
// change inside a nested tracked record reachable through that field.
// Collection elements are merged under the same field prefix without an
// index. A field that is itself directly changed is reported once, without
// descending into it: its own reassignment dominates.
func (r *Record) ChangedFieldPaths() []string {
	st := r.mustState()
	var paths []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	for _, name := range r.schema.fields {
		if _, ok := st.selfChanged[name]; ok {
			add(name)
			continue
		}
		for _, nested := range trackedRecords(r.values[name]) {
			for _, nestedPath := range nested.ChangedFieldPaths() {
				add(name + "." + nestedPath)
			}
		}
	}
	return paths
}
