package binding_test

import (
	"fmt"

	"propbind/binding"
	"propbind/examples/beans"
)

func ExampleBinder_Bind() {
	props, err := binding.ParseQuery("bean.name=Claus&bean.price=10.5&bean.nmae=typo")
	if err != nil {
		panic(err)
	}

	bean := &beans.ExampleBean{}
	diags := binding.NewBinder(binding.WithPrefix("bean.")).Bind(bean, props)

	fmt.Println(bean.GetName(), bean.GetPrice())
	for _, w := range diags.Warnings {
		fmt.Println(w)
	}

	// Output:
	// Claus 10.5
	// [propbind/examples/beans.ExampleBean] bean.nmae: [unknown-property] no such property
}
