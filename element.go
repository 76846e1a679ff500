package elements

import (
	"github.com/tebeka/selenium"
)

type webElement = selenium.WebElement

// Element is embedded by declared element types. It holds the element found
// by the driver and forwards every selenium.WebElement method to it, so a
// declared type only defines the methods it wants to change or add:
//
//	type Login struct {
//		elements.Element `id:"login"`
//	}
//
//	func (l *Login) Click() error {
//		if err := l.SendKeys(selenium.EnterKey); err != nil {
//			return l.Element.Click()
//		}
//		return nil
//	}
//
// Values are created by Wrap, Find, FindAll or WaitFor; a zero Element has no
// element and panics when used. When the element comes from an installed
// Driver, it is a *RemoteElement and the script helpers below are available.
type Element struct {
	webElement
}

type remoteProvider interface {
	RemoteElement() *RemoteElement
}

// WrappedElement returns the element this value was created with.
func (e Element) WrappedElement() selenium.WebElement { return e.webElement }

// RemoteElement returns the enhanced element behind e, or nil if e was not
// found through an installed Driver.
func (e Element) RemoteElement() *RemoteElement {
	if p, ok := e.webElement.(remoteProvider); ok {
		return p.RemoteElement()
	}
	return nil
}

func (e Element) remote() (*RemoteElement, error) {
	if re := e.RemoteElement(); re != nil {
		return re, nil
	}
	return nil, ErrScriptUnsupported
}

// WrappedDriver returns the driver running scripts for e, or nil.
func (e Element) WrappedDriver() selenium.WebDriver {
	if re := e.RemoteElement(); re != nil {
		return re.WrappedDriver()
	}
	return nil
}

// Finder returns a Finder searching inside e.
func (e Element) Finder() *Finder {
	return &Finder{Driver: e.WrappedDriver(), Scope: e.webElement}
}

// MarshalJSON encodes the element reference.
func (e Element) MarshalJSON() ([]byte, error) {
	return marshalElement(e.webElement)
}

// NativeClick clicks without preparation or JavaScript fallback.
func (e Element) NativeClick() error {
	if re := e.RemoteElement(); re != nil {
		return re.NativeClick()
	}
	return e.webElement.Click()
}

// JSClick clicks by calling the element's click() method in the page.
func (e Element) JSClick() error {
	re, err := e.remote()
	if err != nil {
		return err
	}
	return re.JSClick()
}

// PrepareForOperation waits for readiness and scrolls the element into view.
// It does nothing for elements not found through an installed Driver.
func (e Element) PrepareForOperation() error {
	if re := e.RemoteElement(); re != nil {
		return re.PrepareForOperation()
	}
	return nil
}

// ExecuteScript runs script in the page with args.
func (e Element) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	re, err := e.remote()
	if err != nil {
		return nil, err
	}
	return re.ExecuteScript(script, args...)
}

// CallFunction calls the element's method name in the page.
func (e Element) CallFunction(name string, args ...interface{}) (interface{}, error) {
	re, err := e.remote()
	if err != nil {
		return nil, err
	}
	return re.CallFunction(name, args...)
}

// Property follows a chain of property names from the element.
func (e Element) Property(names ...string) (interface{}, error) {
	re, err := e.remote()
	if err != nil {
		return nil, err
	}
	return re.Property(names...)
}

// StringProperty is RemoteElement.StringProperty.
func (e Element) StringProperty(names ...string) (string, bool, error) {
	re, err := e.remote()
	if err != nil {
		return "", false, err
	}
	return re.StringProperty(names...)
}

// IntProperty is RemoteElement.IntProperty.
func (e Element) IntProperty(names ...string) (int, bool, error) {
	re, err := e.remote()
	if err != nil {
		return 0, false, err
	}
	return re.IntProperty(names...)
}

// BoolProperty is RemoteElement.BoolProperty.
func (e Element) BoolProperty(names ...string) (bool, bool, error) {
	re, err := e.remote()
	if err != nil {
		return false, false, err
	}
	return re.BoolProperty(names...)
}

// SetProperty assigns the element's property name.
func (e Element) SetProperty(name string, value interface{}) error {
	re, err := e.remote()
	if err != nil {
		return err
	}
	return re.SetProperty(name, value)
}

// DispatchCustomEvent dispatches a CustomEvent on the element.
func (e Element) DispatchCustomEvent(eventType string, options map[string]interface{}) error {
	re, err := e.remote()
	if err != nil {
		return err
	}
	return re.DispatchCustomEvent(eventType, options)
}

// HasAttribute reports whether the element carries the attribute name.
func (e Element) HasAttribute(name string) (bool, error) {
	re, err := e.remote()
	if err != nil {
		return false, err
	}
	return re.HasAttribute(name)
}
