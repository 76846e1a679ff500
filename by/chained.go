package by

import (
	"strings"

	"github.com/tebeka/selenium"
)

type chained []Locator

// Chained returns a locator that evaluates each locator inside the elements
// matched by the previous one, like a descendant combinator across
// strategies. Chained(TagName("form"), Name("q")) finds inputs named q inside
// forms.
func Chained(locators ...Locator) Locator {
	return chained(locators)
}

func (c chained) FindElement(sc SearchContext) (selenium.WebElement, error) {
	elems, err := c.FindElements(sc)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, NotFound(c)
	}
	return elems[0], nil
}

func (c chained) FindElements(sc SearchContext) ([]selenium.WebElement, error) {
	if len(c) == 0 {
		return nil, nil
	}

	elems, err := c[0].FindElements(sc)
	if err != nil {
		return nil, err
	}
	for _, l := range c[1:] {
		if len(elems) == 0 {
			return nil, nil
		}
		next := newOrderedSet(nil)
		for _, parent := range elems {
			children, err := l.FindElements(parent)
			if err != nil {
				return nil, err
			}
			next.add(children)
		}
		elems = next.elements()
	}
	return elems, nil
}

func (c chained) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return "By.chained({" + strings.Join(parts, ",") + "})"
}
