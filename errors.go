package changedetect

import (
	"errors"
	"fmt"
)

// Schema declaration errors as sentinel values
var (
	ErrEmptySchemaName = errors.New("schema name cannot be empty")
	ErrNoFields        = errors.New("schema must declare at least one field")
	ErrEmptyFieldName  = errors.New("field name cannot be empty")
	ErrDuplicateField  = errors.New("duplicate field name in schema")
)

// InvalidFieldError reports a field name that is not declared on a record's schema.
type InvalidFieldError struct {
	Schema string
	Field  string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field %q is not declared on schema %q", e.Field, e.Schema)
}

func invalidField(s *Schema, field string) error {
	return &InvalidFieldError{Schema: s.name, Field: field}
}
