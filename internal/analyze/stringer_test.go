package analyze

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reflectTag(s string) reflect.StructTag { return reflect.StructTag(s) }

func TestTypePath(t *testing.T) {
	p := NewTypePath("Order")
	assert.Equal(t, "Order", p.String())

	items := p.Field("Items")
	assert.Equal(t, "Order.Items", items.String())
	assert.Equal(t, "Order.Items[]", items.Slice().String())
	assert.Equal(t, "Order.Items[].ProductID", items.Slice().Field("ProductID").String())
	assert.Equal(t, "Order.*Customer", p.Field("Customer").Pointer().String())

	// Builders never share their backing slices.
	assert.Equal(t, "Order.Items", items.String())
}

func TestTypeStringer_TypeString(t *testing.T) {
	graph := loadGraph(t, storePkg)
	stringer := NewTypeStringer()

	order := graph.GetType(TypeID{PkgPath: storePkg, Name: "Order"})
	require.NotNil(t, order)

	tests := map[string]string{
		"Items":    "[]OrderItem",
		"Customer": "*Customer",
		"Notes":    "map[string]string",
		"Status":   "OrderStatus",
		"ID":       "github.com/google/uuid.UUID",
	}

	for field, want := range tests {
		f := order.Field(field)
		require.NotNil(t, f, field)
		assert.Equal(t, want, stringer.TypeString(f.Type), field)
	}

	assert.Equal(t, "Order", stringer.TypeString(order))
	assert.Equal(t, "<nil>", stringer.TypeString(nil))
}

func TestTypeStringer_FieldPath(t *testing.T) {
	stringer := NewTypeStringer()

	assert.Equal(t, "Order.ID", stringer.FieldPath("Order", "ID"))
	assert.Equal(t, "Order.Customer.Address.City", stringer.FieldPath("Order", "Customer", "Address", "City"))
}

func TestTypeStringer_BuildFieldPaths(t *testing.T) {
	graph := loadGraph(t, storePkg)
	stringer := NewTypeStringer()

	order := graph.GetType(TypeID{PkgPath: storePkg, Name: "Order"})
	require.NotNil(t, order)

	paths := stringer.BuildFieldPaths(order, 2)

	for _, p := range []string{
		"Order.ID",
		"Order.Status",
		"Order.Items",
		"Order.Items[].ProductID",
		"Order.Customer.FullName",
		"Order.Customer.Address.City",
		"Order.Notes",
	} {
		assert.Contains(t, paths, p)
	}

	// Customer.Orders[] leads back to Order; depth stops the recursion.
	assert.NotContains(t, paths, "Order.Customer.Orders[].Customer.Orders[].ID")
}

func TestTypeStringer_BuildFieldPathsNonStruct(t *testing.T) {
	graph := loadGraph(t, storePkg)

	status := graph.GetType(TypeID{PkgPath: storePkg, Name: "OrderStatus"})
	require.NotNil(t, status)

	assert.Empty(t, NewTypeStringer().BuildFieldPaths(status, 3))
}
