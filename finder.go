package elements

import (
	"errors"
	"reflect"
	"time"

	"github.com/tebeka/selenium"

	"github.com/wanmail/selenium-elements/by"
)

const (
	// DefaultWaitTimeout is used by a Finder without a Timeout.
	DefaultWaitTimeout = 10 * time.Second
	// DefaultPollInterval is used by a Finder without an Interval.
	DefaultPollInterval = 500 * time.Millisecond
)

// ErrNoDriver is returned when waiting with a Finder that has no driver.
var ErrNoDriver = errors.New("elements: finder has no driver")

// Finder looks up elements, waiting for them to appear.
type Finder struct {
	// Driver polls conditions and runs scripts.
	Driver selenium.WebDriver
	// Scope is searched instead of the whole page when set.
	Scope by.SearchContext
	// Timeout and Interval default to DefaultWaitTimeout and
	// DefaultPollInterval.
	Timeout, Interval time.Duration
	// Instantiator wraps declared element types. It defaults to Instance().
	Instantiator Instantiator
}

// In returns a copy of f searching inside scope.
func (f *Finder) In(scope by.SearchContext) *Finder {
	c := *f
	c.Scope = scope
	return &c
}

func (f *Finder) timeout() time.Duration {
	if f.Timeout > 0 {
		return f.Timeout
	}
	return DefaultWaitTimeout
}

func (f *Finder) interval() time.Duration {
	if f.Interval > 0 {
		return f.Interval
	}
	return DefaultPollInterval
}

func (f *Finder) instantiator() (Instantiator, error) {
	if f.Instantiator != nil {
		return f.Instantiator, nil
	}
	return instantiator()
}

func (f *Finder) scope(wd selenium.WebDriver) by.SearchContext {
	if f.Scope != nil {
		return f.Scope
	}
	return wd
}

// ExecuteScript runs script in the page.
func (f *Finder) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	if f.Driver == nil {
		return nil, ErrScriptUnsupported
	}
	if args == nil {
		args = []interface{}{}
	}
	return f.Driver.ExecuteScript(script, args)
}

// WaitForFirst waits for l to match and returns the first match.
func (f *Finder) WaitForFirst(l by.Locator) (selenium.WebElement, error) {
	return WaitUntil(f, func(wd selenium.WebDriver) (selenium.WebElement, error) {
		return l.FindElement(f.scope(wd))
	})
}

// WaitForFirstAnd waits for an element matched by all of locators.
func (f *Finder) WaitForFirstAnd(locators ...by.Locator) (selenium.WebElement, error) {
	return f.WaitForFirst(by.And(locators...))
}

// WaitForFirstChained waits for an element matched by locators applied one
// inside the other.
func (f *Finder) WaitForFirstChained(locators ...by.Locator) (selenium.WebElement, error) {
	return f.WaitForFirst(by.Chained(locators...))
}

// WaitUntil polls cond with f's timeout and interval.
func WaitUntil[V any](f *Finder, cond func(selenium.WebDriver) (V, error)) (V, error) {
	return WaitUntilTimeout(f, f.timeout(), cond)
}

// WaitUntilTimeout polls cond until it returns a value that is neither nil
// nor false. A "no such element" error means not yet; any other error ends
// the wait and is returned as is. Running out of time returns a
// *TimeoutError.
func WaitUntilTimeout[V any](f *Finder, timeout time.Duration, cond func(selenium.WebDriver) (V, error)) (V, error) {
	var (
		result  V
		zero    V
		lastErr error
		failure error
	)
	if f.Driver == nil {
		return zero, ErrNoDriver
	}
	err := f.Driver.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		v, err := cond(wd)
		if err != nil {
			if IsNotFound(err) {
				lastErr = err
				return false, nil
			}
			failure = err
			return false, err
		}
		if !present(v) {
			return false, nil
		}
		result = v
		return true, nil
	}, timeout, f.interval())
	switch {
	case err == nil:
		return result, nil
	case failure != nil:
		return zero, failure
	}
	debugLog("elements: wait ended: %v", err)
	return zero, &TimeoutError{Timeout: timeout, Err: lastErr}
}

func present(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// WaitFor waits for an element matching T's selector and the extra locators,
// and wraps it as a *T.
func WaitFor[T any](f *Finder, extra ...by.Locator) (*T, error) {
	return WaitForTimeout[T](f, f.timeout(), extra...)
}

// WaitForTimeout is WaitFor with an explicit timeout.
func WaitForTimeout[T any](f *Finder, timeout time.Duration, extra ...by.Locator) (*T, error) {
	inst, err := f.instantiator()
	if err != nil {
		return nil, err
	}
	t := typeOf[T]()
	sel, err := inst.BuildSelector(t)
	if err != nil {
		return nil, err
	}
	l := compose(sel, extra)
	if l == nil {
		return nil, &ConfigError{Op: "wait for", Type: t, Err: errNoSelector}
	}

	we, err := WaitUntilTimeout(f, timeout, func(wd selenium.WebDriver) (selenium.WebElement, error) {
		return l.FindElement(f.scope(wd))
	})
	if err != nil {
		return nil, err
	}
	v, err := inst.Wrap(t, we)
	if err != nil {
		return nil, err
	}
	return assertType[T](v, t)
}

// WaitForByClassName waits for an element matching T's selector that also
// has className among its classes.
func WaitForByClassName[T any](f *Finder, className string) (*T, error) {
	return WaitFor[T](f, by.ClassNamePart(className))
}

func compose(sel by.Locator, extra []by.Locator) by.Locator {
	var locators []by.Locator
	if sel != nil {
		locators = append(locators, sel)
	}
	for _, l := range extra {
		if l != nil {
			locators = append(locators, l)
		}
	}
	switch len(locators) {
	case 0:
		return nil
	case 1:
		return locators[0]
	}
	return by.And(locators...)
}
