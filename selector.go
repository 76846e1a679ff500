package elements

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/wanmail/selenium-elements/by"
)

// FindBySelector describes how to locate a declared element type. Every
// non-empty criterion must match. Builder, or the builder registered under
// BuilderName, turns the criteria into a locator; DefaultBuilder is used when
// neither is set.
//
// A declared type gets its selector either by implementing Selectable or
// from struct tags on the field through which it embeds Element:
//
//	type Search struct {
//		elements.Element `tagName:"input" name:"q"`
//	}
type FindBySelector struct {
	ID              string
	Name            string
	ClassNamePart   string
	ClassNameExact  string
	CSS             string
	TagName         string
	LinkText        string
	PartialLinkText string
	XPath           string

	Builder     SelectorBuilder
	BuilderName string
}

// Selectable is implemented by declared element types that compute their
// selector instead of declaring it in struct tags. FindBySelector is called
// on a zero value.
type Selectable interface {
	FindBySelector() FindBySelector
}

// SelectorBuilder turns a selector description into a locator. A nil locator
// means the description has no criteria.
type SelectorBuilder interface {
	Build(s FindBySelector) by.Locator
}

// SelectorBuilderFunc adapts a function to SelectorBuilder.
type SelectorBuilderFunc func(s FindBySelector) by.Locator

// Build calls f(s).
func (f SelectorBuilderFunc) Build(s FindBySelector) by.Locator { return f(s) }

// DefaultBuilder matches every non-empty criterion. A single criterion
// becomes its plain locator; several are combined with by.And in this order:
// ID, ClassNamePart, CSS, ClassNameExact, XPath, LinkText, Name,
// PartialLinkText, TagName.
type DefaultBuilder struct{}

// Build implements SelectorBuilder.
func (DefaultBuilder) Build(s FindBySelector) by.Locator {
	var locators []by.Locator
	for _, c := range []struct {
		value string
		new   func(string) by.By
	}{
		{s.ID, by.ID},
		{s.ClassNamePart, by.ClassNamePart},
		{s.CSS, by.CSS},
		{s.ClassNameExact, by.ClassName},
		{s.XPath, by.XPath},
		{s.LinkText, by.LinkText},
		{s.Name, by.Name},
		{s.PartialLinkText, by.PartialLinkText},
		{s.TagName, by.TagName},
	} {
		if c.value != "" {
			locators = append(locators, c.new(c.value))
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

// Locator builds the locator described by s. It returns nil without error
// when s has no criteria.
func (s FindBySelector) Locator() (by.Locator, error) {
	b := s.Builder
	if b == nil && s.BuilderName != "" {
		var ok bool
		if b, ok = lookupSelectorBuilder(s.BuilderName); !ok {
			return nil, fmt.Errorf("unknown selector builder %q", s.BuilderName)
		}
	}
	if b == nil {
		b = DefaultBuilder{}
	}
	return b.Build(s), nil
}

var (
	buildersMu sync.RWMutex
	builders   = make(map[string]SelectorBuilder)
)

// RegisterSelectorBuilder makes a builder available to struct tags by name,
// as in `builder:"name"`. It panics if b is nil or name is already taken.
func RegisterSelectorBuilder(name string, b SelectorBuilder) {
	buildersMu.Lock()
	defer buildersMu.Unlock()
	if b == nil {
		panic("elements: RegisterSelectorBuilder builder is nil")
	}
	if _, dup := builders[name]; dup {
		panic("elements: RegisterSelectorBuilder called twice for " + name)
	}
	builders[name] = b
}

func lookupSelectorBuilder(name string) (SelectorBuilder, bool) {
	buildersMu.RLock()
	defer buildersMu.RUnlock()
	b, ok := builders[name]
	return b, ok
}

// selectorFromTag reads a selector from struct tags. ok is false when none of
// the selector keys is present.
func selectorFromTag(tag reflect.StructTag) (s FindBySelector, ok bool) {
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"id", &s.ID},
		{"name", &s.Name},
		{"classNamePart", &s.ClassNamePart},
		{"classNameExact", &s.ClassNameExact},
		{"css", &s.CSS},
		{"tagName", &s.TagName},
		{"linkText", &s.LinkText},
		{"partialLinkText", &s.PartialLinkText},
		{"xpath", &s.XPath},
		{"builder", &s.BuilderName},
	} {
		if v, found := tag.Lookup(f.key); found {
			*f.dst = v
			ok = true
		}
	}
	return s, ok
}
