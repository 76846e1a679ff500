package elements

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/tebeka/selenium"
)

// Legacy JSON wire protocol status codes that map onto W3C error kinds.
const (
	legacyNoSuchElement  = 7
	legacyStaleElement   = 10
	legacyNotVisible     = 11
	legacyInvalidState   = 12
	legacyTimeout        = 21
	legacyScriptTimeout  = 28
	legacyInvalidCoordns = 29
)

var (
	// ErrScriptUnsupported is returned when a script is requested from an
	// element or finder that has no WebDriver able to execute it.
	ErrScriptUnsupported = errors.New("elements: script execution is not supported by this driver")

	// ErrNoInstantiator is returned when no Instantiator has been registered.
	ErrNoInstantiator = errors.New("elements: no instantiator registered")
)

func driverError(err error) (*selenium.Error, bool) {
	var se *selenium.Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func hasKind(err error, codes []int, kinds ...string) bool {
	se, ok := driverError(err)
	if !ok {
		return false
	}
	for _, k := range kinds {
		if se.Err == k {
			return true
		}
	}
	for _, c := range codes {
		if se.LegacyCode == c {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is the WebDriver "no such element" error,
// either as returned by the driver or as synthesized by a composed locator.
func IsNotFound(err error) bool {
	return hasKind(err, []int{legacyNoSuchElement}, "no such element")
}

// IsNotInteractable reports whether err means the browser refused a native
// interaction with the element.
func IsNotInteractable(err error) bool {
	return hasKind(err, []int{legacyNotVisible, legacyInvalidState, legacyInvalidCoordns},
		"element not interactable", "element click intercepted", "element not visible")
}

// IsStale reports whether err means the element is no longer attached to the
// DOM.
func IsStale(err error) bool {
	return hasKind(err, []int{legacyStaleElement}, "stale element reference")
}

// IsTimeout reports whether err is a wait that ran out of time, either a
// *TimeoutError or a driver-side timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}
	return hasKind(err, []int{legacyTimeout, legacyScriptTimeout}, "timeout", "script timeout")
}

// TimeoutError is returned by waits that did not observe their condition in
// time.
type TimeoutError struct {
	Timeout time.Duration
	// Err is the last error ignored while polling, typically NotFound.
	Err error
}

func (e *TimeoutError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("elements: condition not met after %v", e.Timeout)
	}
	return fmt.Sprintf("elements: condition not met after %v: %v", e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ConfigError reports a declared element type that cannot be located or
// wrapped. It is a setup defect and is never retried.
type ConfigError struct {
	Op   string
	Type reflect.Type
	Err  error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("elements: ")
	b.WriteString(e.Op)
	if e.Type != nil {
		b.WriteString(" ")
		b.WriteString(e.Type.String())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }
