package elements

import (
	"errors"
	"testing"

	"github.com/tebeka/selenium"

	"github.com/wanmail/selenium-elements/internal/fakewd"
)

func TestElementWithoutRemote(t *testing.T) {
	raw := fakewd.NewElement("1", "button")
	b, err := Wrap[loginButton](raw)
	if err != nil {
		t.Fatalf("Wrap() returned error: %v", err)
	}

	if b.RemoteElement() != nil {
		t.Errorf("RemoteElement() = %v, want nil", b.RemoteElement())
	}
	if b.WrappedDriver() != nil {
		t.Errorf("WrappedDriver() = %v, want nil", b.WrappedDriver())
	}
	if err := b.PrepareForOperation(); err != nil {
		t.Errorf("PrepareForOperation() returned error: %v", err)
	}
	if err := b.NativeClick(); err != nil || raw.Clicks != 1 {
		t.Errorf("NativeClick() = %v with %d clicks, want nil with 1 click", err, raw.Clicks)
	}

	for name, op := range map[string]func() error{
		"JSClick": b.JSClick,
		"ExecuteScript": func() error {
			_, err := b.ExecuteScript("return 1")
			return err
		},
		"CallFunction": func() error {
			_, err := b.CallFunction("focus")
			return err
		},
		"Property": func() error {
			_, err := b.Property("value")
			return err
		},
		"StringProperty": func() error {
			_, _, err := b.StringProperty("value")
			return err
		},
		"IntProperty": func() error {
			_, _, err := b.IntProperty("value")
			return err
		},
		"BoolProperty": func() error {
			_, _, err := b.BoolProperty("value")
			return err
		},
		"SetProperty":         func() error { return b.SetProperty("value", 1) },
		"DispatchCustomEvent": func() error { return b.DispatchCustomEvent("e", nil) },
		"HasAttribute": func() error {
			_, err := b.HasAttribute("disabled")
			return err
		},
	} {
		if err := op(); !errors.Is(err, ErrScriptUnsupported) {
			t.Errorf("%s() error = %v, want %v", name, err, ErrScriptUnsupported)
		}
	}
}

func TestElementWithRemote(t *testing.T) {
	fd := &fakewd.Driver{}
	raw := fakewd.NewElement("1", "button")
	raw.ClickErr = fakewd.Error("element not interactable")
	fd.DOM.Set(selenium.ByID, "login", raw)
	fd.DOM.Set(selenium.ByTagName, "button", raw)
	fd.Script = func(string, []interface{}) (interface{}, error) { return "ok", nil }

	wd, err := Install(fd)
	if err != nil {
		t.Fatalf("Install() returned error: %v", err)
	}
	b, err := Find[loginButton](wd)
	if err != nil {
		t.Fatalf("Find() returned error: %v", err)
	}

	re := b.RemoteElement()
	if re == nil {
		t.Fatal("RemoteElement() = nil, want the installed element")
	}
	if re.WrappedElement() != selenium.WebElement(raw) {
		t.Errorf("RemoteElement().WrappedElement() = %v, want %v", re.WrappedElement(), raw)
	}
	if b.WrappedDriver() != selenium.WebDriver(wd) {
		t.Errorf("WrappedDriver() = %v, want the installed driver", b.WrappedDriver())
	}

	// Click goes through the enhanced element and falls back to JavaScript.
	if err := b.Click(); err != nil {
		t.Errorf("Click() returned error: %v", err)
	}
	if n := len(fd.ScriptsMatching("return arguments[0].click()")); n != 1 {
		t.Errorf("Click() ran the JavaScript click %d times, want 1", n)
	}
	if err := b.NativeClick(); !IsNotInteractable(err) {
		t.Errorf("NativeClick() error = %v, want element not interactable", err)
	}

	s, ok, err := b.StringProperty("id")
	if err != nil || !ok || s != "ok" {
		t.Errorf("StringProperty() = %q, %t, %v, want %q, true, nil", s, ok, err, "ok")
	}

	if got := b.Finder().Scope; got != re {
		t.Errorf("Finder().Scope = %v, want the element", got)
	}
}

func TestElementMarshalJSON(t *testing.T) {
	b, err := Wrap[loginButton](fakewd.NewElement("42", "button"))
	if err != nil {
		t.Fatalf("Wrap() returned error: %v", err)
	}
	got, err := b.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() returned error: %v", err)
	}
	const want = `{"ELEMENT":"42","element-6066-11e4-a52e-4f735466cecf":"42"}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}

	type opaque struct{ selenium.WebElement }
	b, err = Wrap[loginButton](&opaque{})
	if err != nil {
		t.Fatalf("Wrap() returned error: %v", err)
	}
	if _, err := b.MarshalJSON(); err == nil {
		t.Error("MarshalJSON() of an element without a reference returned nil error")
	}
}
