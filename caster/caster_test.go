package caster_test

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-mapper/caster"
)

type moreThanError interface {
	error
	More()
}

func empty()                          { panic("not implemented") }
func wrong(int) (string, error, bool) { panic("not implemented") }

func full(int) (string, bool, error)          { panic("not implemented") }
func customError(int) (string, moreThanError) { panic("not implemented") }
func doublePtr(**int) string                  { panic("not implemented") }

func ExampleCaster() {
	desc, err := caster.Parse(full)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = caster.Parse(strconv.Itoa)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = caster.Parse(strconv.Atoi)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = caster.Parse(customError)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	_, err = caster.Parse(empty)
	fmt.Println(err)

	_, err = caster.Parse(wrong)
	fmt.Println(err)

	_, err = caster.Parse(doublePtr)
	fmt.Println(err)

	_, err = caster.Parse(42)
	fmt.Println(err)

	// Output:
	// <nil> caster_test full int string true true
	// <nil> strconv Itoa int string false false
	// <nil> strconv Atoi string int false true
	// <nil> caster_test customError int string false true
	// provided function is not a recognizable caster
	// provided function is not a recognizable caster
	// caster function does not support double pointers
	// provided caster is not a function
}

type Celsius float64

func TestCaster_Call(t *testing.T) {
	t.Parallel()

	itoa, err := caster.Parse(strconv.Itoa)
	require.NoError(t, err)
	assert.Equal(t, "strconv.Itoa", itoa.String())

	out, err := itoa.Call(reflect.ValueOf(42))
	require.NoError(t, err)
	assert.Equal(t, "42", out.Interface())

	out, err = itoa.Call(reflect.Value{})
	require.NoError(t, err)
	assert.Equal(t, "0", out.Interface())

	_, err = itoa.Call(reflect.ValueOf("42"))
	require.ErrorIs(t, err, caster.ErrSourceMismatch)

	atoi, err := caster.Parse(strconv.Atoi)
	require.NoError(t, err)

	_, err = atoi.Call(reflect.ValueOf("x"))
	var numErr *strconv.NumError
	require.ErrorAs(t, err, &numErr)

	positive, err := caster.Parse(func(c Celsius) (float64, bool) { return float64(c), c > 0 })
	require.NoError(t, err)

	out, err = positive.Call(reflect.ValueOf(Celsius(3)))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, out.Float(), 0)

	_, err = positive.Call(reflect.ValueOf(Celsius(-3)))
	require.ErrorIs(t, err, caster.ErrRejected)

	out, err = positive.Call(reflect.ValueOf(2.5))
	require.NoError(t, err, "same-kind source values are converted")
	assert.InDelta(t, 2.5, out.Float(), 0)

	failing, err := caster.Parse(func(int) (string, bool, error) { return "", true, errors.New("boom") })
	require.NoError(t, err)

	_, err = failing.Call(reflect.ValueOf(1))
	require.EqualError(t, err, "boom")

	_, err = caster.Caster{}.Call(reflect.ValueOf(1))
	require.ErrorIs(t, err, caster.ErrIsNotACaster)
}

func TestCaster_Supports(t *testing.T) {
	t.Parallel()

	itoa, err := caster.Parse(strconv.Itoa)
	require.NoError(t, err)

	assert.True(t, itoa.Supports(reflect.TypeFor[int](), reflect.TypeFor[string]()))
	assert.True(t, itoa.Supports(reflect.TypeFor[int](), reflect.TypeFor[any]()))
	assert.False(t, itoa.Supports(reflect.TypeFor[int64](), reflect.TypeFor[string]()))
}
