package match

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"struct-mapper/convert"
	"struct-mapper/options"
)

type (
	shape   interface{ Area() float64 }
	square  struct{ Side float64 }
	point   struct{ X, Y int }
	pointV2 struct{ X, Y int64 }
	tree    struct{ Children []tree }
	treeDTO struct{ Children []treeDTO }
)

func (s square) Area() float64 { return s.Side * s.Side }

func TestScoreTypeCompatibility(t *testing.T) {
	conv := convert.NewRegistry(options.CategoryDefault)

	tests := []struct {
		source, target reflect.Type
		expected       TypeCompatibility
	}{
		{reflect.TypeFor[int](), reflect.TypeFor[int](), TypeIdentical},
		{reflect.TypeFor[square](), reflect.TypeFor[shape](), TypeAssignable},
		{reflect.TypeFor[int32](), reflect.TypeFor[int64](), TypeConvertible},
		{reflect.TypeFor[string](), reflect.TypeFor[time.Time](), TypeConvertible},
		{reflect.TypeFor[*int](), reflect.TypeFor[int](), TypeNeedsTransform},
		{reflect.TypeFor[int](), reflect.TypeFor[*int64](), TypeNeedsTransform},
		{reflect.TypeFor[point](), reflect.TypeFor[*pointV2](), TypeNeedsTransform},
		{reflect.TypeFor[[]point](), reflect.TypeFor[[4]pointV2](), TypeNeedsTransform},
		{reflect.TypeFor[map[string]int](), reflect.TypeFor[map[string]string](), TypeNeedsTransform},
		{reflect.TypeFor[*square](), reflect.TypeFor[shape](), TypeAssignable},
		{reflect.TypeFor[tree](), reflect.TypeFor[treeDTO](), TypeNeedsTransform},
		{reflect.TypeFor[[]tree](), reflect.TypeFor[[]treeDTO](), TypeNeedsTransform},
		{reflect.TypeFor[point](), reflect.TypeFor[string](), TypeIncompatible},
		{reflect.TypeFor[point](), reflect.TypeFor[shape](), TypeIncompatible},
		{reflect.TypeFor[[]int](), reflect.TypeFor[[]point](), TypeIncompatible},
		{reflect.TypeFor[time.Time](), reflect.TypeFor[point](), TypeIncompatible},
		{reflect.TypeFor[int64](), reflect.TypeFor[int8](), TypeIncompatible},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.source, tt.target), func(t *testing.T) {
			result := ScoreTypeCompatibility(tt.source, tt.target, conv)
			assert.Equal(t, tt.expected, result.Compatibility, result.Reason)
		})
	}

	assert.Equal(t, TypeNeedsTransform,
		ScoreTypeCompatibility(reflect.TypeFor[*int](), reflect.TypeFor[int](), nil).Compatibility)
	assert.Equal(t, TypeIncompatible,
		ScoreTypeCompatibility(reflect.TypeFor[int32](), reflect.TypeFor[int64](), nil).Compatibility)
}

func TestTypeCompatibility_String(t *testing.T) {
	assert.Equal(t, "identical", TypeIdentical.String())
	assert.Equal(t, "needs_transform", TypeNeedsTransform.String())
	assert.Equal(t, "unknown", TypeCompatibility(42).String())
	assert.InDelta(t, 0.7, TypeConvertible.Score(), 1e-9)
}
