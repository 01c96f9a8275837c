package mapper_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"struct-mapper/convert"
	"struct-mapper/mapper"
)

type Employee struct {
	Name    string
	Manager *Employee
	Salary  int
}

type EmployeeDTO struct {
	Name    string
	Manager *EmployeeDTO
	Salary  string
	Badge   string
}

func ExampleMap() {
	m := mapper.New()

	boss := &Employee{Name: "Grace", Salary: 200}
	boss.Manager = boss

	dto, err := mapper.Map[*EmployeeDTO](m, boss)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(dto.Name, dto.Salary, dto.Manager == dto)

	// Output:
	// Grace 200 true
}

func ExampleMapper_AddMappings() {
	m := mapper.New()

	_, err := m.AddMappings(reflect.TypeFor[Employee](), reflect.TypeFor[EmployeeDTO](), func(b *mapper.Builder) {
		b.Using(convert.MustFunc(strings.ToUpper)).Map(b.Source().Get("Name")).To("Badge")
		b.Skip().To("Salary")
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	dto, _ := mapper.Map[EmployeeDTO](m, Employee{Name: "ada", Salary: 10})
	fmt.Printf("%s %s %q\n", dto.Name, dto.Badge, dto.Salary)

	_, err = m.AddMappings(reflect.TypeFor[Employee](), reflect.TypeFor[EmployeeDTO](), func(b *mapper.Builder) {
		b.Map(b.Source().Get("Title")).To("Badge")
	})
	fmt.Println(errors.Is(err, mapper.ErrConfiguration))

	// Output:
	// ada ADA ""
	// true
}
