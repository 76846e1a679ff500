package by_test

import (
	"fmt"

	"github.com/wanmail/selenium-elements/by"
)

func ExampleAnd() {
	l := by.And(by.TagName("input"), by.Attribute("type", "checkbox"), by.ClassNamePart("consent"))
	fmt.Println(l)
	// Output:
	// By.and({By.tag name: input,By.css selector: [type='checkbox'],By.css selector: .consent})
}

func ExampleChained() {
	fmt.Println(by.Chained(by.ID("signup"), by.Name("email")))
	// Output:
	// By.chained({By.id: signup,By.name: email})
}
