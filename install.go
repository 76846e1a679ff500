package elements

import (
	"time"

	"github.com/tebeka/selenium"
)

// ElementFactory builds the element handed out by an installed Driver for
// an element returned by the underlying WebDriver.
type ElementFactory func(wd selenium.WebDriver, we selenium.WebElement) selenium.WebElement

// Driver is a WebDriver whose lookups return enhanced elements. Use Install
// or InstallFactory to create one.
type Driver struct {
	selenium.WebDriver

	factory ElementFactory
}

// Install returns a driver whose elements are RemoteElements configured with
// opts.
func Install(wd selenium.WebDriver, opts ...RemoteOption) (*Driver, error) {
	cfg, err := newRemoteConfig(opts...)
	if err != nil {
		return nil, err
	}
	return InstallFactory(wd, func(wd selenium.WebDriver, we selenium.WebElement) selenium.WebElement {
		return newRemoteElement(wd, we, cfg)
	}), nil
}

// InstallFactory returns a driver whose elements are built by factory.
// Installing on an installed Driver replaces its factory.
func InstallFactory(wd selenium.WebDriver, factory ElementFactory) *Driver {
	if d, ok := wd.(*Driver); ok {
		wd = d.WebDriver
	}
	return &Driver{WebDriver: wd, factory: factory}
}

func (wd *Driver) wrap(we selenium.WebElement, err error) (selenium.WebElement, error) {
	if err != nil || we == nil {
		return we, err
	}
	return wd.factory(wd, we), nil
}

func (wd *Driver) wrapAll(elems []selenium.WebElement, err error) ([]selenium.WebElement, error) {
	if err != nil {
		return nil, err
	}
	for i, we := range elems {
		elems[i] = wd.factory(wd, we)
	}
	return elems, nil
}

// WrappedDriver returns the underlying WebDriver.
func (wd *Driver) WrappedDriver() selenium.WebDriver { return wd.WebDriver }

// Finder returns a Finder searching the whole page.
func (wd *Driver) Finder() *Finder { return &Finder{Driver: wd} }

// FindElement finds exactly one element.
func (wd *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	return wd.wrap(wd.WebDriver.FindElement(by, value))
}

// FindElements finds potentially many elements.
func (wd *Driver) FindElements(by, value string) ([]selenium.WebElement, error) {
	return wd.wrapAll(wd.WebDriver.FindElements(by, value))
}

// ActiveElement returns the currently active element on the page.
func (wd *Driver) ActiveElement() (selenium.WebElement, error) {
	return wd.wrap(wd.WebDriver.ActiveElement())
}

// DecodeElement decodes a single element response.
func (wd *Driver) DecodeElement(data []byte) (selenium.WebElement, error) {
	return wd.wrap(wd.WebDriver.DecodeElement(data))
}

// DecodeElements decodes a multi-element response.
func (wd *Driver) DecodeElements(data []byte) ([]selenium.WebElement, error) {
	return wd.wrapAll(wd.WebDriver.DecodeElements(data))
}

func (wd *Driver) condition(c selenium.Condition) selenium.Condition {
	return func(selenium.WebDriver) (bool, error) { return c(wd) }
}

// WaitWithTimeoutAndInterval waits for the condition to evaluate to true,
// passing the installed driver to it.
func (wd *Driver) WaitWithTimeoutAndInterval(condition selenium.Condition, timeout, interval time.Duration) error {
	return wd.WebDriver.WaitWithTimeoutAndInterval(wd.condition(condition), timeout, interval)
}

// WaitWithTimeout works like WaitWithTimeoutAndInterval with the driver's
// default interval.
func (wd *Driver) WaitWithTimeout(condition selenium.Condition, timeout time.Duration) error {
	return wd.WebDriver.WaitWithTimeout(wd.condition(condition), timeout)
}

// Wait works like WaitWithTimeoutAndInterval with the driver's defaults.
func (wd *Driver) Wait(condition selenium.Condition) error {
	return wd.WebDriver.Wait(wd.condition(condition))
}
