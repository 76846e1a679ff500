package by

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tebeka/selenium"
)

// Keys under which WebDriver serializes element references.
const (
	w3cElementKey    = "element-6066-11e4-a52e-4f735466cecf"
	legacyElementKey = "ELEMENT"
)

// Key returns a value identifying the DOM node behind e, suitable as a map
// key. Handles returned by separate find calls for the same node have the same
// key.
//
// The WebDriver reference id is read from the element's JSON form. Elements
// that do not marshal to a reference are identified by the interface value
// itself, or by their printed value when that is not comparable.
func Key(e selenium.WebElement) interface{} {
	if m, ok := e.(json.Marshaler); ok {
		if id := referenceID(m); id != "" {
			return id
		}
	}
	if e == nil || reflect.ValueOf(e).Comparable() {
		return e
	}
	return fmt.Sprintf("%T%#v", e, e)
}

func referenceID(m json.Marshaler) string {
	buf, err := m.MarshalJSON()
	if err != nil {
		return ""
	}
	ref := map[string]interface{}{}
	if err := json.Unmarshal(buf, &ref); err != nil {
		return ""
	}
	for _, k := range []string{w3cElementKey, legacyElementKey} {
		if id, ok := ref[k].(string); ok && id != "" {
			return id
		}
	}
	return ""
}
