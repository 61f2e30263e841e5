package changedetect

import (
	"encoding/json"
	"fmt"
)

// ExportOptions controls Export and ExportJSON.
type ExportOptions struct {
	// Include limits the export to the named top-level fields. Nil means all
	// fields. Include and Exclude apply to this record only; they do not
	// propagate into nested records.
	Include []string

	// Exclude drops the named top-level fields from the export.
	Exclude []string

	// ExcludeUnchanged limits the export to changed fields. A field counts
	// as changed when it was changed directly or a nested tracked record
	// reachable through it has changes. Included nested records are exported
	// recursively with ExcludeUnchanged still set, so they filter their own
	// fields the same way.
	ExcludeUnchanged bool

	// ExcludeNil drops fields whose current value is nil.
	ExcludeNil bool

	// Indent, when non-empty, pretty-prints ExportJSON output.
	Indent string
}

// Export returns the record as a map of field name to value, in mapping
// form: nested tracked records become nested maps. With the zero options
// every field is exported.
func (r *Record) Export(opts ExportOptions) map[string]any {
	include := nameSet(opts.Include)
	exclude := nameSet(opts.Exclude)

	if opts.ExcludeUnchanged {
		changed := nameSet(r.NestedChangedFields())
		if include == nil {
			include = changed
		} else {
			for name := range include {
				if _, ok := changed[name]; !ok {
					delete(include, name)
				}
			}
		}
	}

	out := make(map[string]any)
	for _, name := range r.schema.fields {
		if include != nil {
			if _, ok := include[name]; !ok {
				continue
			}
		}
		if _, ok := exclude[name]; ok {
			continue
		}
		value := r.values[name]
		if opts.ExcludeNil && value == nil {
			continue
		}
		out[name] = exportValue(value, opts)
	}
	return out
}

// ExportJSON returns the record serialized as JSON, applying the same
// filtering as Export.
func (r *Record) ExportJSON(opts ExportOptions) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if opts.Indent != "" {
		out, err = json.MarshalIndent(r.Export(opts), "", opts.Indent)
	} else {
		out, err = json.Marshal(r.Export(opts))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export record %q as JSON: %w", r.schema.name, err)
	}
	return out, nil
}

// exportValue exports nested tracked records recursively. Include and
// Exclude are top-level concerns and are not carried down; ExcludeUnchanged
// and ExcludeNil are.
func exportValue(value any, opts ExportOptions) any {
	nested := ExportOptions{
		ExcludeUnchanged: opts.ExcludeUnchanged,
		ExcludeNil:       opts.ExcludeNil,
	}
	switch v := value.(type) {
	case *Record:
		if v == nil {
			return nil
		}
		return v.Export(nested)
	case []*Record:
		out := make([]any, len(v))
		for i, rec := range v {
			if rec == nil {
				out[i] = nil
				continue
			}
			out[i] = rec.Export(nested)
		}
		return out
	case map[string]*Record:
		out := make(map[string]any, len(v))
		for key, rec := range v {
			if rec == nil {
				out[key] = nil
				continue
			}
			out[key] = rec.Export(nested)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = exportValue(elem, opts)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = exportValue(elem, opts)
		}
		return out
	}
	return value
}

func nameSet(names []string) map[string]struct{} {
	if names == nil {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
