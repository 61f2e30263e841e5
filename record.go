package changedetect

import "sort"

// Record is a single instance of a schema'd record type. It holds the current
// field values together with a private change state, so repositories can
// persist only the fields that were actually modified since construction.
//
// Every field write must go through Set; that is the interception point that
// keeps the change state correct. Records are not safe for concurrent
// mutation; callers sharing an instance across goroutines must synchronize.
type Record struct {
	schema *Schema
	values map[string]any
	state  *changeState
}

// newRecord is the internal constructor; callers guarantee that all value
// keys are declared fields.
func newRecord(s *Schema, values map[string]any) *Record {
	copied := make(map[string]any, len(s.fields))
	for name, value := range values {
		copied[name] = value
	}
	return &Record{
		schema: s,
		values: copied,
		state:  newChangeState(),
	}
}

// Schema returns the shared schema this record was constructed from.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the current value of a field.
func (r *Record) Get(name string) (any, error) {
	if !r.schema.Has(name) {
		return nil, invalidField(r.schema, name)
	}
	return r.values[name], nil
}

// MustGet returns the current value of a field, panicking on an undeclared
// field name.
func (r *Record) MustGet(name string) any {
	v, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Set writes a new value to a field, tracking the change.
//
// When both the old and the new value are of a comparable scalar kind and
// compare equal, the write is a no-op for change tracking. Any other write
// marks the field changed, even when old and new are equal: non-scalar
// values may have been mutated in place, so equality cannot certify that
// nothing changed, and repositories rely on the reassignment to force
// re-persistence.
//
// The original value of a field is captured on its first tracked change and
// never overwritten by later writes.
func (r *Record) Set(name string, value any) error {
	if !r.schema.Has(name) {
		return invalidField(r.schema, name)
	}

	old := r.values[name]
	changed := true
	if isComparableValue(old) && isComparableValue(value) && valuesEqual(old, value) {
		changed = false
	}
	if changed {
		st := r.mustState()
		st.trackOriginal(name, old)
		st.markSelfChanged(name)
	}

	r.values[name] = value
	return nil
}

// SetChanged marks fields as changed directly, capturing the current live
// value of each field as its original. Validation is all-or-nothing: if any
// name is undeclared, no field is marked.
//
// This is the escape hatch for in-place container mutation, which Set never
// sees: after appending to a slice held in a field, call SetChanged to
// surface the change.
func (r *Record) SetChanged(fields ...string) error {
	if err := r.checkFields(fields); err != nil {
		return err
	}
	st := r.mustState()
	for _, name := range fields {
		st.trackOriginal(name, r.values[name])
		st.markSelfChanged(name)
	}
	return nil
}

// SetChangedWithOriginal marks fields as changed using an explicitly
// provided original value. The original is recorded for every named field
// that has no tracked original yet; first recorded wins, same as Set.
func (r *Record) SetChangedWithOriginal(original any, fields ...string) error {
	if err := r.checkFields(fields); err != nil {
		return err
	}
	st := r.mustState()
	for _, name := range fields {
		st.trackOriginal(name, original)
		st.markSelfChanged(name)
	}
	return nil
}

func (r *Record) checkFields(fields []string) error {
	for _, name := range fields {
		if !r.schema.Has(name) {
			return invalidField(r.schema, name)
		}
	}
	return nil
}

// ResetChanged clears originals, the changed-field set and all markers.
// It only affects this record; nested records keep their own state.
func (r *Record) ResetChanged() {
	r.mustState().reset()
}

// HasSelfChanged reports whether any field was changed directly on this
// record or any changed marker is set. Nested records are not consulted;
// use HasChanged for the recursive view.
func (r *Record) HasSelfChanged() bool {
	return r.mustState().hasSelfChanged()
}

// ChangedFields returns the fields changed directly on this record, in
// schema declaration order. Changes inside nested records are not included.
func (r *Record) ChangedFields() []string {
	st := r.mustState()
	fields := make([]string, 0, len(st.selfChanged))
	for _, name := range r.schema.fields {
		if _, ok := st.selfChanged[name]; ok {
			fields = append(fields, name)
		}
	}
	return fields
}

// Original returns a copy of the tracked original values, keyed by field
// name. A field appears here once it has a tracked original; the stored
// value is the one captured at its first detected change.
func (r *Record) Original() map[string]any {
	st := r.mustState()
	original := make(map[string]any, len(st.original))
	for name, value := range st.original {
		original[name] = value
	}
	return original
}

// OriginalFields returns the fields with a tracked original, ordered by
// first-detected change.
func (r *Record) OriginalFields() []string {
	st := r.mustState()
	fields := make([]string, len(st.originalOrder))
	copy(fields, st.originalOrder)
	return fields
}

// MarkChanged sets a changed marker. Markers flag the record dirty for
// reasons outside field tracking, e.g. related objects added or removed.
// Setting an already set marker is a no-op.
func (r *Record) MarkChanged(marker string) {
	r.mustState().markers[marker] = struct{}{}
}

// UnmarkChanged removes a changed marker. Removing an absent marker is a
// no-op.
func (r *Record) UnmarkChanged(marker string) {
	delete(r.mustState().markers, marker)
}

// HasChangedMarker reports whether a marker is set.
func (r *Record) HasChangedMarker(marker string) bool {
	_, ok := r.mustState().markers[marker]
	return ok
}

// ChangedMarkers returns all set markers, sorted.
func (r *Record) ChangedMarkers() []string {
	st := r.mustState()
	markers := make([]string, 0, len(st.markers))
	for marker := range st.markers {
		markers = append(markers, marker)
	}
	sort.Strings(markers)
	return markers
}

// Copy returns a shallow copy of the record with a fresh, empty change
// state. The copy shares the schema and the field values, never the state.
func (r *Record) Copy() *Record {
	return newRecord(r.schema, r.values)
}

// mustState guards the collaborator contract that every record carries an
// initialized change state. A Record built as a zero value or struct literal
// breaks that contract.
func (r *Record) mustState() *changeState {
	if r.state == nil {
		panic("changedetect: record has no change state; construct records via Schema.New")
	}
	return r.state
}
