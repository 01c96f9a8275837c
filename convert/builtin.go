package convert

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"struct-mapper/options"
	"struct-mapper/primitive"
)

var (
	uuidType   = reflect.TypeFor[uuid.UUID]()
	stringType = reflect.TypeFor[string]()
	bytesType  = reflect.TypeFor[[]byte]()
)

type primitiveConverter struct {
	allowed options.CategoryEnum
}

func (c primitiveConverter) Supports(src, dst reflect.Type) bool {
	return primitive.CanConvert(src, dst, c.allowed)
}

func (c primitiveConverter) Convert(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	return primitive.Convert(src, dst, c.allowed)
}

// sameKindConverter converts between scalar types sharing a kind, e.g. a
// named float64 and float64.
type sameKindConverter struct{}

func (sameKindConverter) Supports(src, dst reflect.Type) bool {
	if src.Kind() != dst.Kind() || !src.ConvertibleTo(dst) {
		return false
	}

	switch src.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

func (c sameKindConverter) Convert(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if !c.Supports(src.Type(), dst) {
		return reflect.Value{}, Cannot(src.Type(), dst)
	}

	return src.Convert(dst), nil
}

// uuidConverter handles uuid.UUID <-> string and uuid.UUID <-> []byte.
type uuidConverter struct{}

func (uuidConverter) Supports(src, dst reflect.Type) bool {
	switch {
	case src == uuidType:
		return dst.Kind() == reflect.String || dst == bytesType
	case dst == uuidType:
		return src.Kind() == reflect.String || src == bytesType
	default:
		return false
	}
}

func (c uuidConverter) Convert(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if !c.Supports(src.Type(), dst) {
		return reflect.Value{}, Cannot(src.Type(), dst)
	}

	if src.Type() == uuidType {
		id := src.Interface().(uuid.UUID)
		if dst == bytesType {
			return reflect.ValueOf(id[:]), nil
		}

		return reflect.ValueOf(id.String()).Convert(dst), nil
	}

	var (
		id  uuid.UUID
		err error
	)

	if src.Type() == bytesType {
		id, err = uuid.FromBytes(src.Bytes())
	} else {
		id, err = uuid.Parse(src.Convert(stringType).String())
	}

	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", primitive.ErrInvalidValue, err)
	}

	return reflect.ValueOf(id), nil
}
