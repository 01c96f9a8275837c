package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	storePkg     = "struct-mapper/store"
	warehousePkg = "struct-mapper/warehouse"
)

func loadGraph(t *testing.T, patterns ...string) *TypeGraph {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(patterns...)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadGraph(t, storePkg, warehousePkg)

	assert.Contains(t, graph.Packages, storePkg)
	assert.Contains(t, graph.Packages, warehousePkg)

	assert.Contains(t, graph.Types, TypeID{PkgPath: storePkg, Name: "Order"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: warehousePkg, Name: "Order"})
}

func TestAnalyzer_Kinds(t *testing.T) {
	graph := loadGraph(t, storePkg)

	order := graph.GetType(TypeID{PkgPath: storePkg, Name: "Order"})
	require.NotNil(t, order)
	assert.Equal(t, TypeKindStruct, order.Kind)

	tests := []struct {
		field string
		kind  TypeKind
		elem  TypeKind
	}{
		{"Customer", TypeKindPointer, TypeKindStruct},
		{"Items", TypeKindSlice, TypeKindStruct},
		{"Notes", TypeKindMap, TypeKindBasic},
		{"Status", TypeKindAlias, TypeKindUnknown},
		{"ID", TypeKindExternal, TypeKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := order.Field(tt.field)
			require.NotNil(t, f)
			assert.Equal(t, tt.kind, f.Type.Kind)

			if tt.elem != TypeKindUnknown {
				require.NotNil(t, f.Type.ElemType)
				assert.Equal(t, tt.elem, f.Type.ElemType.Kind)
			}
		})
	}

	assert.Nil(t, order.Field("reference"), "unexported fields are not recorded")
	assert.Equal(t, TypeKindBasic, order.Field("Notes").Type.KeyType.Kind)
}

func TestAnalyzer_RecursiveTypes(t *testing.T) {
	graph := loadGraph(t, storePkg)

	customer := graph.GetType(TypeID{PkgPath: storePkg, Name: "Customer"})
	require.NotNil(t, customer)

	orders := customer.Field("Orders")
	require.NotNil(t, orders)

	order := orders.Type.ElemType.Deref()
	require.NotNil(t, order)
	assert.Same(t, customer, order.Field("Customer").Type.Deref())
}

func TestAnalyzer_Methods(t *testing.T) {
	graph := loadGraph(t, storePkg)

	order := graph.GetType(TypeID{PkgPath: storePkg, Name: "Order"})
	require.NotNil(t, order)

	getter := order.Method("Reference")
	require.NotNil(t, getter)
	assert.True(t, getter.IsGetter())
	assert.False(t, getter.IsSetter())

	setter := order.Method("SetReference")
	require.NotNil(t, setter)
	assert.True(t, setter.IsSetter())
	assert.False(t, setter.IsGetter())

	item := graph.GetType(TypeID{PkgPath: storePkg, Name: "OrderItem"})
	require.NotNil(t, item)
	assert.NotNil(t, item.Method("Subtotal"))
	assert.Nil(t, item.Method("Total"))
}

func TestTypeGraph_Resolve(t *testing.T) {
	graph := loadGraph(t, storePkg, warehousePkg)

	tests := []struct {
		id   string
		want TypeID
	}{
		{"store.Order", TypeID{PkgPath: storePkg, Name: "Order"}},
		{"warehouse.Order", TypeID{PkgPath: warehousePkg, Name: "Order"}},
		{storePkg + ".Customer", TypeID{PkgPath: storePkg, Name: "Customer"}},
		{"OrderStatus", TypeID{PkgPath: storePkg, Name: "OrderStatus"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := graph.Resolve(tt.id)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}

	assert.Nil(t, graph.Resolve("billing.Order"))
	assert.Nil(t, graph.Resolve("Missing"))
	assert.Nil(t, graph.Resolve(""))
}

func TestTypeID_String(t *testing.T) {
	assert.Equal(t, "struct-mapper/store.Order", TypeID{PkgPath: storePkg, Name: "Order"}.String())
	assert.Equal(t, "int", TypeID{Name: "int"}.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "pointer", TypeKindPointer.String())
	assert.Equal(t, "slice", TypeKindSlice.String())
	assert.Equal(t, "array", TypeKindArray.String())
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "interface", TypeKindInterface.String())
	assert.Equal(t, "alias", TypeKindAlias.String())
	assert.Equal(t, "external", TypeKindExternal.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}

func TestFieldInfo_JSONName(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{`json:"postal_code"`, "postal_code"},
		{`json:"orders,omitempty"`, "orders"},
		{``, "PostalCode"},
		{`json:"-"`, "PostalCode"},
	}

	for _, tt := range tests {
		f := FieldInfo{Name: "PostalCode", Tag: reflectTag(tt.tag)}
		assert.Equal(t, tt.want, f.JSONName(), tt.tag)
	}
}
