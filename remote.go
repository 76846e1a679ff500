// Enhanced remote element: readiness waiting, scrolling and a JavaScript click
// fallback around the WebDriver element primitives.

package elements

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tebeka/selenium"
)

const (
	// DefaultReadinessTimeout bounds WaitForServerLoadToFinish.
	DefaultReadinessTimeout = 10 * time.Second

	scrollIntoViewScript      = "arguments[0].scrollIntoView(true);"
	setPropertyScript         = "arguments[0][arguments[1]]=arguments[2]"
	dispatchCustomEventScript = "arguments[0].dispatchEvent(new CustomEvent(arguments[1], arguments[2]));"
)

type remoteConfig struct {
	readinessScript  string
	readinessTimeout time.Duration
	autoScroll       bool
}

func newRemoteConfig(opts ...RemoteOption) (remoteConfig, error) {
	cfg := remoteConfig{
		readinessTimeout: DefaultReadinessTimeout,
		autoScroll:       true,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return remoteConfig{}, err
		}
	}
	return cfg, nil
}

// RemoteOption configures a RemoteElement.
type RemoteOption func(*remoteConfig) error

// ReadinessScript sets a script that returns true once the page has finished
// its asynchronous work. Click, Text and SendKeys wait for it first. No script
// means no waiting.
func ReadinessScript(script string) RemoteOption {
	return func(c *remoteConfig) error {
		c.readinessScript = script
		return nil
	}
}

// ReadinessTimeout bounds the wait for the readiness script.
func ReadinessTimeout(d time.Duration) RemoteOption {
	return func(c *remoteConfig) error {
		if d < 0 {
			return fmt.Errorf("negative readiness timeout: %v", d)
		}
		c.readinessTimeout = d
		return nil
	}
}

// AutoScrollIntoView controls whether elements that are not displayed are
// scrolled into view before Click, Text and SendKeys. It is on by default.
func AutoScrollIntoView(enabled bool) RemoteOption {
	return func(c *remoteConfig) error {
		c.autoScroll = enabled
		return nil
	}
}

// RemoteElement wraps a WebDriver element. Click, Text and SendKeys first
// wait for the readiness script and scroll the element into view, and Click
// falls back to a JavaScript click when the browser rejects the native one.
// All other selenium.WebElement methods go straight to the wrapped element.
type RemoteElement struct {
	selenium.WebElement

	wd  selenium.WebDriver
	cfg remoteConfig
}

// NewRemoteElement wraps we, found through wd.
func NewRemoteElement(wd selenium.WebDriver, we selenium.WebElement, opts ...RemoteOption) (*RemoteElement, error) {
	cfg, err := newRemoteConfig(opts...)
	if err != nil {
		return nil, err
	}
	return newRemoteElement(wd, we, cfg), nil
}

func newRemoteElement(wd selenium.WebDriver, we selenium.WebElement, cfg remoteConfig) *RemoteElement {
	if re, ok := we.(*RemoteElement); ok {
		we = re.WebElement
	}
	return &RemoteElement{WebElement: we, wd: wd, cfg: cfg}
}

// WrappedElement returns the element as returned by the driver.
func (elem *RemoteElement) WrappedElement() selenium.WebElement { return elem.WebElement }

// WrappedDriver returns the driver used to run scripts.
func (elem *RemoteElement) WrappedDriver() selenium.WebDriver { return elem.wd }

// RemoteElement returns elem.
func (elem *RemoteElement) RemoteElement() *RemoteElement { return elem }

// Finder returns a Finder searching inside elem.
func (elem *RemoteElement) Finder() *Finder {
	return &Finder{Driver: elem.wd, Scope: elem}
}

// MarshalJSON encodes the element reference, so that a RemoteElement can be
// passed as a script argument.
func (elem *RemoteElement) MarshalJSON() ([]byte, error) {
	return marshalElement(elem.WebElement)
}

func marshalElement(we selenium.WebElement) ([]byte, error) {
	m, ok := we.(json.Marshaler)
	if !ok {
		return nil, fmt.Errorf("elements: %T cannot be encoded as an element reference", we)
	}
	return m.MarshalJSON()
}

// Click waits for readiness, scrolls the element into view if needed and
// clicks it. If the browser reports the element as not interactable, the
// click is performed once through JavaScript instead.
func (elem *RemoteElement) Click() error {
	if err := elem.PrepareForOperation(); err != nil {
		return err
	}
	err := elem.WebElement.Click()
	if err == nil || !IsNotInteractable(err) {
		return err
	}
	warnf("Native click was rejected, clicking through JavaScript: %v", err)
	return elem.JSClick()
}

// NativeClick clicks the element without any preparation or fallback.
func (elem *RemoteElement) NativeClick() error {
	return elem.WebElement.Click()
}

// JSClick clicks the element by calling its click() method in the page.
func (elem *RemoteElement) JSClick() error {
	_, err := elem.CallFunction("click")
	return err
}

// Text returns the visible text of the element once the page is ready.
func (elem *RemoteElement) Text() (string, error) {
	if err := elem.PrepareForOperation(); err != nil {
		return "", err
	}
	return elem.WebElement.Text()
}

// SendKeys types into the element once the page is ready.
func (elem *RemoteElement) SendKeys(keys string) error {
	if err := elem.PrepareForOperation(); err != nil {
		return err
	}
	return elem.WebElement.SendKeys(keys)
}

// FindElement finds a child element, wrapped like elem.
func (elem *RemoteElement) FindElement(by, value string) (selenium.WebElement, error) {
	we, err := elem.WebElement.FindElement(by, value)
	if err != nil {
		return nil, err
	}
	return newRemoteElement(elem.wd, we, elem.cfg), nil
}

// FindElements finds child elements, wrapped like elem.
func (elem *RemoteElement) FindElements(by, value string) ([]selenium.WebElement, error) {
	elems, err := elem.WebElement.FindElements(by, value)
	if err != nil {
		return nil, err
	}
	for i, we := range elems {
		elems[i] = newRemoteElement(elem.wd, we, elem.cfg)
	}
	return elems, nil
}

// PrepareForOperation waits for the readiness script and scrolls the element
// into view if required.
func (elem *RemoteElement) PrepareForOperation() error {
	if err := elem.WaitForServerLoadToFinish(); err != nil {
		return err
	}
	return elem.ScrollIntoViewIfRequired()
}

// WaitForServerLoadToFinish evaluates the readiness script until it returns
// true or the readiness timeout elapses. Running out of time is not an error.
// Errors executing the script are returned.
func (elem *RemoteElement) WaitForServerLoadToFinish() error {
	script := elem.cfg.readinessScript
	if script == "" {
		return nil
	}

	start := time.Now()
	warned := false
	for polls := 1; ; polls++ {
		v, err := elem.ExecuteScript(script)
		if err != nil {
			return err
		}
		switch v := v.(type) {
		case bool:
			if v {
				debugLog("elements: readiness script succeeded after %d polls", polls)
				return nil
			}
		case nil:
			if !warned {
				warnf("Readiness script %q returned null; it should return either true or false", script)
				warned = true
			}
		default:
			if !warned {
				warnf("Readiness script %q returned %T; it should return either true or false", script, v)
				warned = true
			}
		}
		if elapsed := time.Since(start); elapsed >= elem.cfg.readinessTimeout {
			debugLog("elements: readiness script did not succeed after %v (%d polls), continuing", elapsed, polls)
			return nil
		}
	}
}

// ScrollIntoViewIfRequired scrolls the element into view when automatic
// scrolling is enabled and the element is not displayed. An element the
// browser refuses to interact with is left as is.
func (elem *RemoteElement) ScrollIntoViewIfRequired() error {
	if !elem.cfg.autoScroll {
		return nil
	}
	displayed, err := elem.WebElement.IsDisplayed()
	if err == nil && displayed {
		return nil
	}
	if err == nil {
		debugLog("elements: scrolling element into view")
		_, err = elem.ExecuteScript(scrollIntoViewScript, elem.WebElement)
	}
	if err != nil && IsNotInteractable(err) {
		warnf("Unable to scroll element into view: %v", err)
		return nil
	}
	return err
}

// ExecuteScript runs script in the page with args.
func (elem *RemoteElement) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	if elem.wd == nil {
		return nil, ErrScriptUnsupported
	}
	if args == nil {
		args = []interface{}{}
	}
	return elem.wd.ExecuteScript(script, args)
}

// CallFunction calls the element's method name in the page with args and
// returns its result.
func (elem *RemoteElement) CallFunction(name string, args ...interface{}) (interface{}, error) {
	return elem.ExecuteScript(callFunctionScript(name, len(args)), append([]interface{}{elem.WebElement}, args...)...)
}

func callFunctionScript(name string, nargs int) string {
	params := make([]string, nargs)
	for i := range params {
		params[i] = "arguments[" + strconv.Itoa(i+1) + "]"
	}
	return "return arguments[0]." + name + "(" + strings.Join(params, ",") + ")"
}

func propertyScript(depth int) string {
	var b strings.Builder
	b.WriteString("var value = arguments[0];")
	for i := 1; i <= depth; i++ {
		fmt.Fprintf(&b, "if (typeof value != 'undefined') value = value[arguments[%d]];", i)
	}
	b.WriteString("return value;")
	return b.String()
}

// Property follows the chain of property names from the element, e.g.
// Property("style", "display"), and returns the final value. An undefined
// link yields nil.
func (elem *RemoteElement) Property(names ...string) (interface{}, error) {
	if err := elem.PrepareForOperation(); err != nil {
		return nil, err
	}
	args := []interface{}{elem.WebElement}
	for _, n := range names {
		args = append(args, n)
	}
	return elem.ExecuteScript(propertyScript(len(names)), args...)
}

// StringProperty is Property for string values. ok is false if the value is
// not a string.
func (elem *RemoteElement) StringProperty(names ...string) (v string, ok bool, err error) {
	p, err := elem.Property(names...)
	if err != nil {
		return "", false, err
	}
	v, ok = p.(string)
	return v, ok, nil
}

// IntProperty is Property for numbers, truncated toward zero. ok is false if
// the value is not a finite number.
func (elem *RemoteElement) IntProperty(names ...string) (v int, ok bool, err error) {
	p, err := elem.Property(names...)
	if err != nil {
		return 0, false, err
	}
	v, ok = toInt(p)
	return v, ok, nil
}

// BoolProperty is Property for booleans. ok is false if the value is not a
// boolean.
func (elem *RemoteElement) BoolProperty(names ...string) (v bool, ok bool, err error) {
	p, err := elem.Property(names...)
	if err != nil {
		return false, false, err
	}
	v, ok = p.(bool)
	return v, ok, nil
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return toInt(f)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// SetProperty assigns value to the element's property name.
func (elem *RemoteElement) SetProperty(name string, value interface{}) error {
	_, err := elem.ExecuteScript(setPropertyScript, elem.WebElement, name, value)
	return err
}

// DispatchCustomEvent dispatches a CustomEvent of the given type on the
// element. options is passed as the event's init dictionary, e.g.
// {"bubbles": true, "detail": ...}.
func (elem *RemoteElement) DispatchCustomEvent(eventType string, options map[string]interface{}) error {
	if options == nil {
		options = map[string]interface{}{}
	}
	_, err := elem.ExecuteScript(dispatchCustomEventScript, elem.WebElement, eventType, options)
	return err
}

// HasAttribute reports whether the element carries the attribute name, even
// if its value is empty.
func (elem *RemoteElement) HasAttribute(name string) (bool, error) {
	if err := elem.PrepareForOperation(); err != nil {
		return false, err
	}
	v, err := elem.CallFunction("hasAttribute", name)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}
