package committer

import (
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/team23/changedetect"
)

// Table maps a record schema onto a Spanner table. Field names are used
// directly as column names; Key names the primary-key field. Field values
// must be types the Spanner client can encode.
type Table struct {
	Name string
	Key  string
}

// InsertMut creates a mutation writing every field of the record.
func (t Table) InsertMut(rec *changedetect.Record) (*spanner.Mutation, error) {
	columns := rec.Schema().Fields()
	values, err := t.columnValues(rec, columns)
	if err != nil {
		return nil, err
	}
	return spanner.InsertOrUpdate(t.Name, columns, values), nil
}

// UpdateMut creates a mutation updating only the fields changed directly on
// the record, plus the key column. It returns nil when nothing changed.
//
// Changes inside nested tracked records do not map onto columns of this
// table; persist those records through their own Table.
func (t Table) UpdateMut(rec *changedetect.Record) (*spanner.Mutation, error) {
	columns := t.updateColumns(rec)
	if columns == nil {
		return nil, nil
	}
	values, err := t.columnValues(rec, columns)
	if err != nil {
		return nil, err
	}
	return spanner.Update(t.Name, columns, values), nil
}

// DeleteMut creates a mutation deleting the row with the given key.
func (t Table) DeleteMut(key any) *spanner.Mutation {
	return spanner.Delete(t.Name, spanner.Key{key})
}

// updateColumns selects the columns for a partial update: the key column
// followed by the changed fields in schema order, or nil when the record has
// no directly changed fields.
func (t Table) updateColumns(rec *changedetect.Record) []string {
	changed := rec.ChangedFields()
	if len(changed) == 0 {
		return nil
	}
	columns := make([]string, 0, len(changed)+1)
	columns = append(columns, t.Key)
	for _, name := range changed {
		if name == t.Key {
			continue
		}
		columns = append(columns, name)
	}
	return columns
}

func (t Table) columnValues(rec *changedetect.Record, columns []string) ([]any, error) {
	values := make([]any, 0, len(columns))
	for _, column := range columns {
		value, err := rec.Get(column)
		if err != nil {
			return nil, fmt.Errorf("failed to read column %q for table %q: %w", column, t.Name, err)
		}
		values = append(values, value)
	}
	return values, nil
}
