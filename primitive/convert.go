package primitive

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"struct-mapper/options"
	"struct-mapper/utils"
)

var (
	ErrNotPrimitive = errors.New("types are not primitive")
	ErrNotAllowed   = errors.New("conversion category is not allowed")
	ErrOverflow     = errors.New("value overflows destination type")
	ErrInvalidValue = errors.New("value is not valid for destination type")
)

var (
	stringerType        = reflect.TypeFor[fmt.Stringer]()
	validatorType       = reflect.TypeFor[interface{ IsValid() bool }]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Convert converts src into a value of type dst when the pair belongs to an
// allowed category.
func Convert(src reflect.Value, dst reflect.Type, allowed options.CategoryEnum) (reflect.Value, error) {
	category := CategoryOf(src.Type(), dst)
	if category == options.CategoryNone {
		return reflect.Value{}, fmt.Errorf("%w: %s -> %s", ErrNotPrimitive, src.Type(), dst)
	}

	if !allowed.Has(category) {
		return reflect.Value{}, fmt.Errorf("%w: %s -> %s (%s)", ErrNotAllowed, src.Type(), dst, category)
	}

	out := reflect.New(dst).Elem()

	var err error

	switch category {
	case options.CategorySafeNumber, options.CategoryUnsafeNumber:
		err = setNumber(out, src)
	case options.CategoryTextNumber:
		err = convertTextNumber(out, src)
	case options.CategoryNumericBool:
		err = convertNumericBool(out, src)
	case options.CategoryTextualBool:
		err = convertTextualBool(out, src)
	case options.CategoryDatetime:
		err = convertDatetime(out, src)
	case options.CategoryTimestamp:
		err = convertTimestamp(out, src)
	case options.CategoryDuration:
		err = convertDuration(out, src)
	case options.CategoryNanoseconds:
		err = convertNanoseconds(out, src)
	case options.CategorySeconds:
		err = convertSeconds(out, src)
	case options.CategoryEnumString:
		err = convertEnum(out, src)
	default:
		err = fmt.Errorf("%w: %s -> %s", ErrNotPrimitive, src.Type(), dst)
	}

	if err != nil {
		return reflect.Value{}, err
	}

	return out, nil
}

// setNumber assigns any numeric src to a numeric out, rejecting values that do not fit.
func setNumber(out, src reflect.Value) error {
	switch {
	case src.CanInt():
		return setInt64(out, src.Int())
	case src.CanUint():
		return setUint64(out, src.Uint())
	case src.CanFloat():
		return setFloat64(out, src.Float())
	default:
		return fmt.Errorf("%w: %s is not a number", ErrNotPrimitive, src.Type())
	}
}

func setInt64(out reflect.Value, n int64) error {
	switch {
	case out.CanInt():
		if out.OverflowInt(n) {
			return fmt.Errorf("%w: %d into %s", ErrOverflow, n, out.Type())
		}

		out.SetInt(n)
	case out.CanUint():
		if n < 0 || out.OverflowUint(uint64(n)) {
			return fmt.Errorf("%w: %d into %s", ErrOverflow, n, out.Type())
		}

		out.SetUint(uint64(n))
	case out.CanFloat():
		out.SetFloat(float64(n))
	default:
		return fmt.Errorf("%w: %s is not a number", ErrNotPrimitive, out.Type())
	}

	return nil
}

func setUint64(out reflect.Value, n uint64) error {
	switch {
	case out.CanInt():
		if n > math.MaxInt64 || out.OverflowInt(int64(n)) {
			return fmt.Errorf("%w: %d into %s", ErrOverflow, n, out.Type())
		}

		out.SetInt(int64(n))
	case out.CanUint():
		if out.OverflowUint(n) {
			return fmt.Errorf("%w: %d into %s", ErrOverflow, n, out.Type())
		}

		out.SetUint(n)
	case out.CanFloat():
		out.SetFloat(float64(n))
	default:
		return fmt.Errorf("%w: %s is not a number", ErrNotPrimitive, out.Type())
	}

	return nil
}

func setFloat64(out reflect.Value, f float64) error {
	switch {
	case out.CanInt():
		if math.IsNaN(f) || !utils.IsInRange(math.MinInt64, f, math.MaxInt64) {
			return fmt.Errorf("%w: %g into %s", ErrOverflow, f, out.Type())
		}

		return setInt64(out, int64(f))
	case out.CanUint():
		if math.IsNaN(f) || !utils.IsInRange(0, f, math.MaxUint64) {
			return fmt.Errorf("%w: %g into %s", ErrOverflow, f, out.Type())
		}

		return setUint64(out, uint64(f))
	case out.CanFloat():
		if !math.IsInf(f, 0) && out.OverflowFloat(f) {
			return fmt.Errorf("%w: %g into %s", ErrOverflow, f, out.Type())
		}

		out.SetFloat(f)

		return nil
	default:
		return fmt.Errorf("%w: %s is not a number", ErrNotPrimitive, out.Type())
	}
}

func convertTextNumber(out, src reflect.Value) error {
	if src.Kind() != reflect.String {
		var text string

		switch {
		case src.CanInt():
			text = strconv.FormatInt(src.Int(), 10)
		case src.CanUint():
			text = strconv.FormatUint(src.Uint(), 10)
		default:
			text = strconv.FormatFloat(src.Float(), 'f', -1, src.Type().Bits())
		}

		out.SetString(text)

		return nil
	}

	text := strings.TrimSpace(src.String())
	kind := FromReflectType(out.Type())

	switch {
	case kind.IsSigned():
		n, err := strconv.ParseInt(text, 10, kind.Bits())
		if err != nil {
			return err
		}

		out.SetInt(n)
	case kind.IsUnsigned():
		n, err := strconv.ParseUint(text, 10, kind.Bits())
		if err != nil {
			return err
		}

		out.SetUint(n)
	default:
		f, err := strconv.ParseFloat(text, kind.Bits())
		if err != nil {
			return err
		}

		out.SetFloat(f)
	}

	return nil
}

// 0, 1 - valid, other numbers is error
func convertNumericBool(out, src reflect.Value) error {
	if src.Kind() == reflect.Bool {
		var n int64
		if src.Bool() {
			n = 1
		}

		return setInt64(out, n)
	}

	var n uint64
	if src.CanInt() {
		if src.Int() < 0 {
			return fmt.Errorf("%w: only numbers 0 and 1 are allowed for bool, got: %d", ErrInvalidValue, src.Int())
		}

		n = uint64(src.Int())
	} else {
		n = src.Uint()
	}

	switch n {
	case 0:
		out.SetBool(false)
	case 1:
		out.SetBool(true)
	default:
		return fmt.Errorf("%w: only numbers 0 and 1 are allowed for bool, got: %d", ErrInvalidValue, n)
	}

	return nil
}

func convertTextualBool(out, src reflect.Value) error {
	if src.Kind() == reflect.Bool {
		out.SetString(strconv.FormatBool(src.Bool()))
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(src.String())) {
	case "true", "yes", "on":
		out.SetBool(true)
	case "false", "no", "off":
		out.SetBool(false)
	default:
		return fmt.Errorf("%w: only strings true/false, yes/no, on/off are allowed for bool, got: %s",
			ErrInvalidValue, src.String())
	}

	return nil
}

func convertDatetime(out, src reflect.Value) error {
	if src.Kind() == reflect.String {
		t, err := time.Parse(time.RFC3339Nano, src.String())
		if err != nil {
			return err
		}

		out.Set(reflect.ValueOf(t))

		return nil
	}

	out.SetString(src.Interface().(time.Time).Format(time.RFC3339Nano))

	return nil
}

func convertTimestamp(out, src reflect.Value) error {
	if t, ok := src.Interface().(time.Time); ok {
		return setInt64(out, t.Unix())
	}

	var secs int64
	if src.CanInt() {
		secs = src.Int()
	} else {
		if src.Uint() > math.MaxInt64 {
			return fmt.Errorf("%w: %d is not a valid timestamp", ErrOverflow, src.Uint())
		}

		secs = int64(src.Uint())
	}

	out.Set(reflect.ValueOf(time.Unix(secs, 0).UTC()))

	return nil
}

func convertDuration(out, src reflect.Value) error {
	if src.Kind() == reflect.String {
		d, err := time.ParseDuration(strings.TrimSpace(src.String()))
		if err != nil {
			return err
		}

		out.SetInt(int64(d))

		return nil
	}

	out.SetString(time.Duration(src.Int()).String())

	return nil
}

func convertNanoseconds(out, src reflect.Value) error {
	if src.Type() == reflect.TypeFor[time.Duration]() {
		return setInt64(out, src.Int())
	}

	return setNumber(out, src)
}

func convertSeconds(out, src reflect.Value) error {
	if src.Type() == reflect.TypeFor[time.Duration]() {
		out.SetFloat(time.Duration(src.Int()).Seconds())
		return nil
	}

	secs := src.Float() * float64(time.Second)
	if !utils.IsInRange(math.MinInt64, secs, math.MaxInt64) {
		return fmt.Errorf("%w: %g seconds", ErrOverflow, src.Float())
	}

	out.SetInt(int64(secs))

	return nil
}

// convertEnum handles string <-> enum and enum <-> enum. Enum text comes from
// String() or MarshalText when available; parsing goes through UnmarshalText.
// Destinations implementing IsValid() are checked after assignment.
func convertEnum(out, src reflect.Value) error {
	srcKind := FromReflectType(src.Type())
	dstKind := FromReflectType(out.Type())

	if srcKind == KindPrimitiveEnum && dstKind == KindPrimitiveEnum &&
		src.Kind() == reflect.Int && out.Kind() == reflect.Int {
		out.SetInt(src.Int())
		return checkValid(out)
	}

	text, err := enumText(src)
	if err != nil {
		return err
	}

	if dstKind == KindString {
		out.SetString(text)
		return nil
	}

	if ptr := out.Addr(); ptr.Type().Implements(textUnmarshalerType) {
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}

		return checkValid(out)
	}

	switch out.Kind() {
	case reflect.String:
		out.SetString(text)
	case reflect.Int:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 0)
		if err != nil {
			return fmt.Errorf("%w: %q for %s", ErrInvalidValue, text, out.Type())
		}

		out.SetInt(n)
	default:
		return fmt.Errorf("%w: %s", ErrNotPrimitive, out.Type())
	}

	return checkValid(out)
}

func enumText(src reflect.Value) (string, error) {
	switch {
	case src.Type() == reflect.TypeFor[string]():
		return src.String(), nil
	case src.Type().Implements(stringerType):
		return src.Interface().(fmt.Stringer).String(), nil
	case src.Type().Implements(textMarshalerType):
		b, err := src.Interface().(encoding.TextMarshaler).MarshalText()
		return string(b), err
	case src.Kind() == reflect.String:
		return src.String(), nil
	default:
		return strconv.FormatInt(src.Int(), 10), nil
	}
}

func checkValid(out reflect.Value) error {
	if !out.Type().Implements(validatorType) {
		return nil
	}

	if !out.Interface().(interface{ IsValid() bool }).IsValid() {
		return fmt.Errorf("%w: %v is not a valid %s", ErrInvalidValue, out.Interface(), out.Type())
	}

	return nil
}
