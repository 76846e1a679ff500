package elements

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/tebeka/selenium"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		err                                     error
		notFound, notInteractable, stale, timed bool
	}{
		{err: nil},
		{err: errors.New("boom")},
		{err: &selenium.Error{Err: "no such element"}, notFound: true},
		{err: &selenium.Error{LegacyCode: legacyNoSuchElement}, notFound: true},
		{err: fmt.Errorf("finding: %w", &selenium.Error{Err: "no such element"}), notFound: true},
		{err: &selenium.Error{Err: "element not interactable"}, notInteractable: true},
		{err: &selenium.Error{Err: "element click intercepted"}, notInteractable: true},
		{err: &selenium.Error{LegacyCode: legacyNotVisible}, notInteractable: true},
		{err: &selenium.Error{Err: "stale element reference"}, stale: true},
		{err: &selenium.Error{Err: "script timeout"}, timed: true},
		{err: &TimeoutError{Timeout: time.Second}, timed: true},
		{err: &TimeoutError{Timeout: time.Second, Err: &selenium.Error{Err: "no such element"}}, notFound: true, timed: true},
	}
	for _, test := range tests {
		if got := IsNotFound(test.err); got != test.notFound {
			t.Errorf("IsNotFound(%v) = %t, want %t", test.err, got, test.notFound)
		}
		if got := IsNotInteractable(test.err); got != test.notInteractable {
			t.Errorf("IsNotInteractable(%v) = %t, want %t", test.err, got, test.notInteractable)
		}
		if got := IsStale(test.err); got != test.stale {
			t.Errorf("IsStale(%v) = %t, want %t", test.err, got, test.stale)
		}
		if got := IsTimeout(test.err); got != test.timed {
			t.Errorf("IsTimeout(%v) = %t, want %t", test.err, got, test.timed)
		}
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("no selector")
	err := &ConfigError{Op: "locate", Type: reflect.TypeOf((*Select)(nil)), Err: cause}
	if got, want := err.Error(), "elements: locate *elements.Select: no selector"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, %v) = false, want true", err, cause)
	}
}
