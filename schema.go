package changedetect

// Field declares one named field of a record type.
type Field struct {
	Name string
}

// Schema is the shared, immutable field layout for one record type.
// All records of the same type reference the same Schema; per-instance
// change state never lives here.
type Schema struct {
	name   string
	fields []string
	index  map[string]int
}

// NewSchema declares a record type with an ordered list of fields.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	if name == "" {
		return nil, ErrEmptySchemaName
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	s := &Schema{
		name:   name,
		fields: make([]string, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, ErrEmptyFieldName
		}
		if _, exists := s.index[f.Name]; exists {
			return nil, ErrDuplicateField
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f.Name)
	}
	return s, nil
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns the declared field names in declaration order.
func (s *Schema) Fields() []string {
	fields := make([]string, len(s.fields))
	copy(fields, s.fields)
	return fields
}

// Has reports whether a field is declared on this schema.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// New constructs a record of this type from an initial set of field values.
// Construction-time population is not tracked as a change: the record starts
// with a clean change state. Fields not present in values start as nil.
func (s *Schema) New(values map[string]any) (*Record, error) {
	for name := range values {
		if !s.Has(name) {
			return nil, invalidField(s, name)
		}
	}
	return newRecord(s, values), nil
}
