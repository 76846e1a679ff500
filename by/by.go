// Package by provides locators: strategies for finding elements within a
// browser session or a single element, and combinators that compose them.
package by

import (
	"fmt"

	"github.com/tebeka/selenium"
)

// SearchContext is anything that can be queried for matching child elements.
// Both selenium.WebDriver and selenium.WebElement satisfy it.
type SearchContext interface {
	// FindElement finds exactly one element.
	FindElement(by, value string) (selenium.WebElement, error)
	// FindElements finds potentially many elements.
	FindElements(by, value string) ([]selenium.WebElement, error)
}

// Locator finds elements within a SearchContext.
type Locator interface {
	// FindElement returns the first matching element or a "no such element"
	// error.
	FindElement(sc SearchContext) (selenium.WebElement, error)
	// FindElements returns all matching elements, in document order. No match
	// is an empty result, not an error.
	FindElements(sc SearchContext) ([]selenium.WebElement, error)
	// String describes the locator for diagnostics.
	String() string
}

// By is a locator that uses a single WebDriver location strategy.
type By struct {
	// Using is one of the selenium.By* strategies.
	Using string
	// Value is the query for the strategy.
	Value string
}

// ID locates elements by their id attribute.
func ID(id string) By { return By{selenium.ByID, id} }

// Name locates elements by their name attribute.
func Name(name string) By { return By{selenium.ByName, name} }

// ClassName locates elements having exactly the given class.
func ClassName(className string) By { return By{selenium.ByClassName, className} }

// CSS locates elements with a CSS selector.
func CSS(selector string) By { return By{selenium.ByCSSSelector, selector} }

// TagName locates elements by tag.
func TagName(tag string) By { return By{selenium.ByTagName, tag} }

// LinkText locates anchors whose visible text is exactly text.
func LinkText(text string) By { return By{selenium.ByLinkText, text} }

// PartialLinkText locates anchors whose visible text contains text.
func PartialLinkText(text string) By { return By{selenium.ByPartialLinkText, text} }

// XPath locates elements with an XPath expression.
func XPath(expr string) By { return By{selenium.ByXPATH, expr} }

// ClassNamePart locates elements having className among their classes. It is
// a CSS class selector, so it also matches elements with further classes.
func ClassNamePart(className string) By { return CSS("." + className) }

// Attribute locates elements whose attribute has exactly the given value.
func Attribute(attribute, value string) By {
	return CSS("[" + attribute + "='" + value + "']")
}

// FindElement implements Locator.
func (b By) FindElement(sc SearchContext) (selenium.WebElement, error) {
	return sc.FindElement(b.Using, b.Value)
}

// FindElements implements Locator.
func (b By) FindElements(sc SearchContext) ([]selenium.WebElement, error) {
	return sc.FindElements(b.Using, b.Value)
}

func (b By) String() string {
	return fmt.Sprintf("By.%s: %s", b.Using, b.Value)
}

// NotFound returns the error WebDriver reports when no element matches, with
// a message naming l. Callers that check for the driver's "no such element"
// error handle it the same way.
func NotFound(l Locator) error {
	return &selenium.Error{
		Err:     "no such element",
		Message: "cannot locate an element using " + l.String(),
	}
}
