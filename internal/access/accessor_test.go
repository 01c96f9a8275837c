package access_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"struct-mapper/internal/access"
	"struct-mapper/options"
)

type Audit struct {
	CreatedBy string
}

type Address struct {
	City   string
	Street string
}

type Person struct {
	Audit

	ID      int
	Name    string
	Address *Address
	Tags    []string

	nickname string
	secret   string
}

func (p *Person) FullName() string { return strings.ToUpper(p.Name) }

func (p *Person) GetNickname() string { return p.nickname }

func (p *Person) SetNickname(n string) { p.nickname = n }

func (p *Person) SetAge(age int) error {
	if age < 0 {
		return errors.New("negative age")
	}

	return nil
}

func alloc(t reflect.Type) (reflect.Value, error) { return reflect.New(t), nil }

func names(props []access.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Name
	}

	return out
}

func TestReflect_Properties(t *testing.T) {
	t.Parallel()

	acc := access.New(options.Default())
	personType := reflect.TypeFor[Person]()

	readable := acc.Properties(personType, access.Read)
	assert.Equal(t, []string{"CreatedBy", "ID", "Name", "Address", "Tags", "FullName", "Nickname"}, names(readable))

	writable := acc.Properties(reflect.TypeFor[*Person](), access.Write)
	assert.Equal(t, []string{"CreatedBy", "ID", "Name", "Address", "Tags", "Age", "Nickname"}, names(writable))
	assert.Equal(t, access.KindSetter, writable[5].Kind)
	assert.Equal(t, "SetAge", writable[5].Method)

	assert.Nil(t, acc.Properties(reflect.TypeFor[int](), access.Read))

	private := access.New(options.New(options.WithFieldAccess(options.AccessPrivate)))
	readable = private.Properties(personType, access.Read)
	assert.Contains(t, names(readable), "secret")
	assert.Contains(t, names(readable), "nickname")
	assert.NotContains(t, names(readable), "Nickname", "the getter collides with the private field")
}

func TestReflect_Resolve(t *testing.T) {
	t.Parallel()

	acc := access.New(options.Default())
	personType := reflect.TypeFor[Person]()

	path, err := acc.Resolve(personType, "Address.City", access.Read)
	require.NoError(t, err)
	assert.Equal(t, "Address.City", path.String())
	assert.Equal(t, reflect.TypeFor[string](), path.Type())
	assert.Equal(t, personType, path.Root())

	path, err = acc.Resolve(personType, "address.city", access.Write)
	require.NoError(t, err)
	assert.Equal(t, []string{"Address", "City"}, path.Names())

	tests := []struct {
		path string
		side access.Side
		err  error
	}{
		{"Address.Country", access.Read, access.ErrInvalidPath},
		{"Name.First", access.Read, access.ErrInvalidPath},
		{"Address..City", access.Read, access.ErrInvalidPath},
		{"FullName", access.Write, access.ErrInvalidPath},
		{"Age", access.Read, access.ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := acc.Resolve(personType, tt.path, tt.side)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestReflect_Read(t *testing.T) {
	t.Parallel()

	acc := access.New(options.New(options.WithFieldAccess(options.AccessPrivate)))
	personType := reflect.TypeFor[Person]()

	p := Person{Name: "ada", Audit: Audit{CreatedBy: "root"}, secret: "s3"}

	for path, expected := range map[string]any{
		"Name":      "ada",
		"FullName":  "ADA",
		"CreatedBy": "root",
		"secret":    "s3",
	} {
		resolved, err := acc.Resolve(personType, path, access.Read)
		require.NoError(t, err, path)

		v, ok, err := acc.Read(reflect.ValueOf(p), resolved)
		require.NoError(t, err, path)
		require.True(t, ok, path)
		assert.Equal(t, expected, v.Interface(), path)
	}

	city, err := acc.Resolve(personType, "Address.City", access.Read)
	require.NoError(t, err)

	_, ok, err := acc.Read(reflect.ValueOf(&p), city)
	require.NoError(t, err)
	assert.False(t, ok, "nil intermediate interrupts the path")

	p.Address = &Address{City: "Paris"}
	v, ok, err := acc.Read(reflect.ValueOf(&p), city)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Paris", v.String())
}

type Labeled interface {
	GetCode() (string, error)
	Label() string
	Rename(label string)
}

type Badge struct {
	code  string
	label string
}

func (b Badge) Label() string { return b.label }

func (b *Badge) GetCode() (string, error) {
	if b.code == "" {
		return "", errors.New("no code")
	}

	return b.code, nil
}

func (b *Badge) Rename(label string) { b.label = label }

func TestReflect_Interface(t *testing.T) {
	t.Parallel()

	acc := access.New(options.Default())
	labeledType := reflect.TypeFor[Labeled]()

	readable := acc.Properties(labeledType, access.Read)
	assert.Equal(t, []string{"Code", "Label"}, names(readable))
	assert.Equal(t, labeledType, readable[0].Owner)
	assert.Equal(t, access.KindGetter, readable[0].Kind)
	assert.Nil(t, acc.Properties(labeledType, access.Write))

	path, err := acc.Resolve(labeledType, "Label", access.Read)
	require.NoError(t, err)

	v, ok, err := acc.Read(reflect.ValueOf(Badge{label: "vip"}), path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "vip", v.Interface())

	var holder Labeled = &Badge{code: "B-1"}

	path, err = acc.Resolve(labeledType, "Code", access.Read)
	require.NoError(t, err)

	v, _, err = acc.Read(reflect.ValueOf(&holder), path)
	require.NoError(t, err)
	assert.Equal(t, "B-1", v.Interface())

	_, _, err = acc.Read(reflect.ValueOf(Badge{}), path)
	require.ErrorContains(t, err, "no code")

	_, _, err = acc.Read(reflect.ValueOf(Person{}), path)
	require.ErrorIs(t, err, access.ErrInvalidPath)

	_, err = acc.Resolve(labeledType, "Label", access.Write)
	require.ErrorIs(t, err, access.ErrNotInstantiable)
}

func TestReflect_Write(t *testing.T) {
	t.Parallel()

	acc := access.New(options.New(options.WithFieldAccess(options.AccessPrivate)))
	personType := reflect.TypeFor[Person]()

	var p Person

	write := func(path string, value any) error {
		resolved, err := acc.Resolve(personType, path, access.Write)
		require.NoError(t, err, path)

		return acc.Write(reflect.ValueOf(&p), resolved, reflect.ValueOf(value), alloc)
	}

	require.NoError(t, write("Address.City", "Oslo"))
	require.NotNil(t, p.Address)
	assert.Equal(t, "Oslo", p.Address.City)

	require.NoError(t, write("Nickname", "Bob"))
	assert.Equal(t, "Bob", p.nickname)

	require.NoError(t, write("secret", "x"))
	assert.Equal(t, "x", p.secret)

	require.EqualError(t, write("Age", -1), "access_test.Person.SetAge: negative age")
	require.NoError(t, write("Age", 3))

	err := write("Name", 42)
	require.ErrorIs(t, err, access.ErrInvalidPath)

	resolved, err := acc.Resolve(personType, "Address.City", access.Write)
	require.NoError(t, err)

	var q Person
	err = acc.Write(reflect.ValueOf(&q), resolved, reflect.ValueOf("Rome"), nil)
	require.ErrorIs(t, err, access.ErrNotInstantiable)

	err = acc.Write(reflect.ValueOf(q), resolved, reflect.ValueOf("Rome"), alloc)
	require.Error(t, err, "values that are not addressable cannot be written")
}

func TestPath(t *testing.T) {
	t.Parallel()

	acc := access.New(options.Default())
	personType := reflect.TypeFor[Person]()

	full, err := acc.Resolve(personType, "Address.City", access.Read)
	require.NoError(t, err)

	prefix, err := acc.Resolve(personType, "Address", access.Read)
	require.NoError(t, err)

	assert.True(t, full.HasPrefix(prefix))
	assert.False(t, prefix.HasPrefix(full))
	assert.True(t, full.Equal(prefix.Append(full.Last())))
	assert.False(t, full.Equal(prefix))

	var empty access.Path
	assert.Nil(t, empty.Type())
	assert.Nil(t, empty.Root())
	assert.Equal(t, "City", full.Last().String())
	assert.Equal(t, "field", full.Last().Kind.String())
}
