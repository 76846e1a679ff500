// Package fakewd provides in-memory stand-ins for selenium.WebDriver and
// selenium.WebElement. Only the methods the tests need are implemented; the
// rest panic through the embedded nil interface.
package fakewd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tebeka/selenium"
)

// Query is a single WebDriver find request.
type Query struct {
	By, Value string
}

// DOM answers find requests from a fixed table and counts them.
type DOM struct {
	results map[Query][]selenium.WebElement
	calls   map[Query]int
}

// Set registers the elements returned for a query.
func (d *DOM) Set(by, value string, elems ...selenium.WebElement) {
	if d.results == nil {
		d.results = make(map[Query][]selenium.WebElement)
	}
	d.results[Query{by, value}] = elems
}

// FindElement returns the first match or a "no such element" error.
func (d *DOM) FindElement(by, value string) (selenium.WebElement, error) {
	elems, err := d.FindElements(by, value)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, Error("no such element")
	}
	return elems[0], nil
}

// FindElements returns all matches.
func (d *DOM) FindElements(by, value string) ([]selenium.WebElement, error) {
	if d.calls == nil {
		d.calls = make(map[Query]int)
	}
	q := Query{by, value}
	d.calls[q]++
	return append([]selenium.WebElement(nil), d.results[q]...), nil
}

// Calls reports how many times a query was evaluated.
func (d *DOM) Calls(by, value string) int {
	return d.calls[Query{by, value}]
}

// Error returns the error a W3C server reports for kind, e.g. "no such element".
func Error(kind string) error {
	return &selenium.Error{Err: kind, Message: "fake " + kind, HTTPCode: 404}
}

// Element is a fake element with a fixed identity.
type Element struct {
	selenium.WebElement

	ID        string
	Tag       string
	Content   string
	Attrs     map[string]string
	Displayed bool
	Selected  bool
	Children  DOM

	// ClickErr, when set, is returned by every Click.
	ClickErr error
	// DisplayedErr, when set, is returned by IsDisplayed.
	DisplayedErr error

	Clicks int
	Typed  []string
	Texts  int
}

// NewElement returns a displayed element.
func NewElement(id, tag string) *Element {
	return &Element{ID: id, Tag: tag, Displayed: true}
}

func (e *Element) Click() error {
	e.Clicks++
	if e.ClickErr != nil {
		return e.ClickErr
	}
	if e.Tag == "option" {
		e.Selected = !e.Selected
	}
	return nil
}

func (e *Element) SendKeys(keys string) error {
	e.Typed = append(e.Typed, keys)
	return nil
}

func (e *Element) Text() (string, error) {
	e.Texts++
	return e.Content, nil
}

func (e *Element) TagName() (string, error) { return e.Tag, nil }

func (e *Element) IsDisplayed() (bool, error) { return e.Displayed, e.DisplayedErr }

func (e *Element) IsSelected() (bool, error) { return e.Selected, nil }

func (e *Element) GetAttribute(name string) (string, error) {
	v, ok := e.Attrs[name]
	if !ok {
		return "", fmt.Errorf("nil return value")
	}
	return v, nil
}

func (e *Element) FindElement(by, value string) (selenium.WebElement, error) {
	return e.Children.FindElement(by, value)
}

func (e *Element) FindElements(by, value string) ([]selenium.WebElement, error) {
	return e.Children.FindElements(by, value)
}

// MarshalJSON encodes the element as a WebDriver element reference.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"ELEMENT":                             e.ID,
		"element-6066-11e4-a52e-4f735466cecf": e.ID,
	})
}

// ScriptCall records one ExecuteScript invocation.
type ScriptCall struct {
	Script string
	Args   []interface{}
}

// Driver is a fake WebDriver backed by a DOM.
type Driver struct {
	selenium.WebDriver

	DOM DOM
	// Script, when set, computes ExecuteScript results.
	Script  func(script string, args []interface{}) (interface{}, error)
	Scripts []ScriptCall
}

func (d *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	return d.DOM.FindElement(by, value)
}

func (d *Driver) FindElements(by, value string) ([]selenium.WebElement, error) {
	return d.DOM.FindElements(by, value)
}

func (d *Driver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.Scripts = append(d.Scripts, ScriptCall{script, args})
	if d.Script == nil {
		return nil, nil
	}
	return d.Script(script, args)
}

// ScriptsMatching returns the recorded calls of script.
func (d *Driver) ScriptsMatching(script string) []ScriptCall {
	var out []ScriptCall
	for _, c := range d.Scripts {
		if c.Script == script {
			out = append(out, c)
		}
	}
	return out
}

func (d *Driver) WaitWithTimeoutAndInterval(condition selenium.Condition, timeout, interval time.Duration) error {
	start := time.Now()
	for {
		done, err := condition(d)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if elapsed := time.Since(start); elapsed > timeout {
			return fmt.Errorf("timeout after %v", elapsed)
		}
		time.Sleep(interval)
	}
}

func (d *Driver) WaitWithTimeout(condition selenium.Condition, timeout time.Duration) error {
	return d.WaitWithTimeoutAndInterval(condition, timeout, time.Millisecond)
}

func (d *Driver) Wait(condition selenium.Condition) error {
	return d.WaitWithTimeout(condition, time.Second)
}
