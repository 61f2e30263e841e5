package changedetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderSchemas(t *testing.T) (order, customer, line *Schema) {
	t.Helper()
	var err error
	customer, err = NewSchema("customer",
		Field{Name: "name"},
		Field{Name: "email"},
	)
	require.NoError(t, err)
	line, err = NewSchema("line",
		Field{Name: "sku"},
		Field{Name: "quantity"},
	)
	require.NoError(t, err)
	order, err = NewSchema("order",
		Field{Name: "order_id"},
		Field{Name: "customer"},
		Field{Name: "lines"},
		Field{Name: "note"},
	)
	require.NoError(t, err)
	return order, customer, line
}

func TestRecord_HasChanged_Recursive(t *testing.T) {
	orderSchema, customerSchema, _ := newOrderSchemas(t)

	customer, err := customerSchema.New(map[string]any{"name": "Alice"})
	require.NoError(t, err)
	order, err := orderSchema.New(map[string]any{
		"order_id": "ord-1",
		"customer": customer,
	})
	require.NoError(t, err)

	assert.False(t, order.HasChanged())

	require.NoError(t, customer.Set("name", "Bob"))

	// The parent never saw a field write, but the nested change surfaces.
	assert.True(t, order.HasChanged())
	assert.False(t, order.HasSelfChanged())
	assert.Empty(t, order.ChangedFields())
}

func TestRecord_ChangedFieldPaths(t *testing.T) {
	orderSchema, customerSchema, lineSchema := newOrderSchemas(t)

	t.Run("nested record change uses dotted path", func(t *testing.T) {
		customer, err := customerSchema.New(map[string]any{"name": "Alice"})
		require.NoError(t, err)
		order, err := orderSchema.New(map[string]any{"customer": customer})
		require.NoError(t, err)

		require.NoError(t, customer.Set("name", "Bob"))

		assert.Equal(t, []string{"customer.name"}, order.ChangedFieldPaths())
	})

	t.Run("recursive set is a superset of the self set", func(t *testing.T) {
		customer, err := customerSchema.New(map[string]any{"name": "Alice"})
		require.NoError(t, err)
		order, err := orderSchema.New(map[string]any{"customer": customer})
		require.NoError(t, err)

		require.NoError(t, customer.Set("email", "bob@example.com"))
		require.NoError(t, order.Set("note", "rush"))

		paths := order.ChangedFieldPaths()
		for _, name := range order.ChangedFields() {
			assert.Contains(t, paths, name)
		}
		assert.ElementsMatch(t, []string{"note", "customer.email"}, paths)
	})

	t.Run("self-changed field is not descended into", func(t *testing.T) {
		customer, err := customerSchema.New(map[string]any{"name": "Alice"})
		require.NoError(t, err)
		order, err := orderSchema.New(map[string]any{"customer": nil})
		require.NoError(t, err)

		require.NoError(t, customer.Set("name", "Bob"))
		require.NoError(t, order.Set("customer", customer))

		// The field's own reassignment dominates its nested changes.
		assert.Equal(t, []string{"customer"}, order.ChangedFieldPaths())
	})

	t.Run("collection elements merge under one prefix", func(t *testing.T) {
		first, err := lineSchema.New(map[string]any{"sku": "a", "quantity": 1})
		require.NoError(t, err)
		second, err := lineSchema.New(map[string]any{"sku": "b", "quantity": 1})
		require.NoError(t, err)
		order, err := orderSchema.New(map[string]any{
			"lines": []*Record{first, second},
		})
		require.NoError(t, err)

		require.NoError(t, first.Set("quantity", 2))
		require.NoError(t, second.Set("sku", "c"))
		require.NoError(t, second.Set("quantity", 3))

		assert.ElementsMatch(t,
			[]string{"lines.sku", "lines.quantity"},
			order.ChangedFieldPaths(),
		)
	})

	t.Run("keyed mapping of records", func(t *testing.T) {
		billing, err := customerSchema.New(map[string]any{"name": "Alice"})
		require.NoError(t, err)
		shipping, err := customerSchema.New(map[string]any{"name": "Bob"})
		require.NoError(t, err)
		order, err := orderSchema.New(map[string]any{
			"customer": map[string]*Record{"billing": billing, "shipping": shipping},
		})
		require.NoError(t, err)

		require.NoError(t, shipping.Set("name", "Carol"))

		assert.Equal(t, []string{"customer.name"}, order.ChangedFieldPaths())
		assert.True(t, order.HasChanged())
	})

	t.Run("untracked containers are opaque", func(t *testing.T) {
		order, err := orderSchema.New(map[string]any{
			"lines": []any{map[string]any{"sku": "a"}},
		})
		require.NoError(t, err)

		assert.False(t, order.HasChanged())
		assert.Empty(t, order.ChangedFieldPaths())
	})
}

func TestRecord_NestedChangedFields(t *testing.T) {
	orderSchema, customerSchema, _ := newOrderSchemas(t)

	customer, err := customerSchema.New(map[string]any{"name": "Alice"})
	require.NoError(t, err)
	order, err := orderSchema.New(map[string]any{
		"order_id": "ord-1",
		"customer": customer,
	})
	require.NoError(t, err)

	require.NoError(t, customer.Set("name", "Bob"))
	require.NoError(t, order.Set("note", "rush"))

	// A changed submodel surfaces as one field, in schema order.
	assert.Equal(t, []string{"customer", "note"}, order.NestedChangedFields())
	assert.Equal(t, []string{"note"}, order.ChangedFields())
}

func TestRecord_DeepNesting(t *testing.T) {
	leafSchema, err := NewSchema("leaf", Field{Name: "value"})
	require.NoError(t, err)
	midSchema, err := NewSchema("mid", Field{Name: "leaf"})
	require.NoError(t, err)
	rootSchema, err := NewSchema("root", Field{Name: "mid"})
	require.NoError(t, err)

	leaf, err := leafSchema.New(map[string]any{"value": 1})
	require.NoError(t, err)
	mid, err := midSchema.New(map[string]any{"leaf": leaf})
	require.NoError(t, err)
	root, err := rootSchema.New(map[string]any{"mid": mid})
	require.NoError(t, err)

	require.NoError(t, leaf.Set("value", 2))

	assert.Equal(t, []string{"mid.leaf.value"}, root.ChangedFieldPaths())
	assert.True(t, root.HasChanged())
	assert.Empty(t, root.ChangedFields())
}
