package changedetect

// changeState is the per-record bookkeeping for change detection. Each record
// owns exactly one changeState; it is never shared between records, not even
// by Copy.
type changeState struct {
	// original holds the value a field had before its first tracked change,
	// keyed by field name. originalOrder keeps insertion order by
	// first-detected change.
	original      map[string]any
	originalOrder []string

	// selfChanged holds fields changed directly on this record. Always a
	// superset of the keys of original.
	selfChanged map[string]struct{}

	// markers holds externally declared dirty flags, independent of fields.
	markers map[string]struct{}
}

func newChangeState() *changeState {
	cs := &changeState{}
	cs.reset()
	return cs
}

func (cs *changeState) reset() {
	cs.original = make(map[string]any)
	cs.originalOrder = nil
	cs.selfChanged = make(map[string]struct{})
	cs.markers = make(map[string]struct{})
}

// trackOriginal records the pre-change value of a field. The first recorded
// original wins; repeated changes to the same field never overwrite it.
func (cs *changeState) trackOriginal(name string, value any) {
	if _, tracked := cs.original[name]; tracked {
		return
	}
	cs.original[name] = value
	cs.originalOrder = append(cs.originalOrder, name)
}

func (cs *changeState) markSelfChanged(name string) {
	cs.selfChanged[name] = struct{}{}
}

func (cs *changeState) hasSelfChanged() bool {
	return len(cs.selfChanged) > 0 || len(cs.markers) > 0
}
