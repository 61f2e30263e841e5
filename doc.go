// Package changedetect tracks field-level changes on schema'd records so
// consumers can persist only the deltas of an in-memory record, without
// diffing two full snapshots.
//
// A Schema declares the ordered fields of a record type and is shared by all
// its records; each Record carries its own private change state. Every field
// write goes through Record.Set, which decides whether the write counts as a
// change: writes of equal comparable scalars are suppressed, everything else
// is conservatively recorded together with the field's first-seen original
// value.
//
//	schema, _ := changedetect.NewSchema("user",
//		changedetect.Field{Name: "name"},
//		changedetect.Field{Name: "email"},
//	)
//	user, _ := schema.New(map[string]any{"name": "Alice"})
//	user.HasChanged()     // false
//	user.Set("name", "Bob")
//	user.HasChanged()     // true
//	user.ChangedFields()  // ["name"]
//	user.Original()       // {"name": "Alice"}
//
// Changes are aggregated recursively across nested records and collections
// of records (ChangedFieldPaths), the pre-change state can be reconstructed
// (RestoreOriginal), and exports can be limited to changed fields
// (ExportOptions.ExcludeUnchanged). The committer subpackage turns changed
// fields into partial Cloud Spanner updates.
package changedetect
