package mapping_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-mapper/convert"
	"struct-mapper/internal/access"
	"struct-mapper/internal/diagnostic"
	"struct-mapper/internal/mapping"
	"struct-mapper/options"
	"struct-mapper/store"
	"struct-mapper/warehouse"
)

type lookup struct {
	transforms map[string]convert.Converter
}

func (l lookup) Transform(name string) (convert.Converter, bool) {
	c, ok := l.transforms[name]
	return c, ok
}

func (l lookup) Condition(name string) (convert.Condition, bool) {
	c, ok := convert.Conditions()[name]
	return c, ok
}

var names = lookup{transforms: map[string]convert.Converter{
	"lower": convert.MustFunc(func(s store.OrderStatus) string { return strings.ToLower(string(s)) }),
}}

func orderIndex() *mapping.TypeIndex {
	return mapping.NewTypeIndex(
		reflect.TypeFor[store.Order](),
		reflect.TypeFor[*store.OrderItem](),
		reflect.TypeFor[store.Customer](),
		reflect.TypeFor[warehouse.Order](),
		reflect.TypeFor[warehouse.OrderItem](),
		reflect.TypeFor[warehouse.Customer](),
		reflect.TypeFor[[]store.Order](),
	)
}

func TestTypeIndex_Resolve(t *testing.T) {
	idx := orderIndex()

	tests := []struct {
		id   string
		want reflect.Type
	}{
		{"store.Order", reflect.TypeFor[store.Order]()},
		{"warehouse.Order", reflect.TypeFor[warehouse.Order]()},
		{"struct-mapper/warehouse.Customer", reflect.TypeFor[warehouse.Customer]()},
		{"store.OrderItem", reflect.TypeFor[store.OrderItem]()},
		{"Customer", reflect.TypeFor[store.Customer]()},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := idx.Resolve(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, id := range []string{"", "billing.Order", "Invoice", ".Order", "store."} {
		_, ok := idx.Resolve(id)
		assert.False(t, ok, id)
	}
}

func TestFile_Declarations(t *testing.T) {
	f, err := mapping.LoadFile("testdata/orders.yaml")
	require.NoError(t, err)

	decls, diags := f.Declarations(orderIndex(), names)
	require.True(t, diags.IsValid(), diags.Err())
	require.Len(t, decls, 3)

	order := decls[0]
	assert.Equal(t, reflect.TypeFor[store.Order](), order.Source)
	assert.Equal(t, reflect.TypeFor[warehouse.Order](), order.Destination)

	ms, diags := mapping.Explicit(order.Source, order.Destination, access.New(options.Default()), order.Declaration)
	require.True(t, diags.IsValid(), diags.Err())

	assert.Equal(t, []string{"CustomerName", "TotalCents", "Status", "Reference", "Internal"}, paths(ms))
	assert.Equal(t, []string{"Customer", "FullName"}, ms[0].Source.Names())
	assert.NotNil(t, ms[2].Converter)
	assert.NotNil(t, ms[3].Condition)
	assert.Equal(t, access.KindGetter, ms[3].Source.Last().Kind)
	assert.True(t, ms[4].Skip)
}

func TestFile_DeclarationsConstantsAndTargets(t *testing.T) {
	f, err := mapping.Parse([]byte(`
mappings:
  - source: store.Customer
    target: warehouse.Customer
    fields:
      - target: [Email, FullName]
        default: "n/a"
      - target: Address
        source: "."
`))
	require.NoError(t, err)

	decls, diags := f.Declarations(orderIndex(), names)
	require.True(t, diags.IsValid(), diags.Err())
	require.Len(t, decls, 1)

	ms, diags := mapping.Explicit(decls[0].Source, decls[0].Destination, access.New(options.Default()), decls[0].Declaration)
	require.True(t, diags.IsValid(), diags.Err())
	require.Len(t, ms, 3)

	assert.Equal(t, mapping.KindConstant, ms[0].Kind)
	assert.Equal(t, "n/a", ms[1].Constant.Interface())
	assert.Equal(t, "FullName", ms[1].Path())
	assert.Equal(t, mapping.KindSource, ms[2].Kind)
}

func TestFile_DeclarationsErrors(t *testing.T) {
	f, err := mapping.Parse([]byte(`
mappings:
  - source: store.Invoice
    target: warehouse.Order
  - source: store.Order
    target: warehouse.Order
    fields:
      - target: Status
        source: Status
        transform: shout
      - target: Reference
        source: Reference
        condition: sometimes
      - target: CustomerName
  - source: store.Customer
    target: warehouse.Customer
transforms:
  - name: shout
`))
	require.NoError(t, err)

	decls, diags := f.Declarations(orderIndex(), names)

	require.Len(t, decls, 1, "only the clean type mapping is kept")
	assert.Equal(t, reflect.TypeFor[store.Customer](), decls[0].Source)

	codes := map[string]int{}
	for _, e := range diags.Errors {
		codes[e.Code]++
	}

	assert.Equal(t, map[string]int{
		diagnostic.CodeTypeNotFound:     1,
		diagnostic.CodeUnknownTransform: 3,
		diagnostic.CodeInvalidPath:      1,
	}, codes)
}
