package by

import (
	"strings"

	"github.com/tebeka/selenium"
)

type and []Locator

// And returns a locator matching only the elements matched by every one of
// locators. Results keep the order of the first locator.
//
// WebDriver has no native conjunction of arbitrary strategies, so each
// locator is evaluated separately and the results are intersected. Put the
// most selective locator first; evaluation stops as soon as the intersection
// is empty.
func And(locators ...Locator) Locator {
	return and(locators)
}

func (a and) FindElement(sc SearchContext) (selenium.WebElement, error) {
	elems, err := a.FindElements(sc)
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, NotFound(a)
	}
	return elems[0], nil
}

func (a and) FindElements(sc SearchContext) ([]selenium.WebElement, error) {
	if len(a) == 0 {
		return nil, nil
	}

	seed, err := a[0].FindElements(sc)
	if err != nil {
		return nil, err
	}
	set := newOrderedSet(seed)
	for _, l := range a[1:] {
		if set.empty() {
			return nil, nil
		}
		elems, err := l.FindElements(sc)
		if err != nil {
			return nil, err
		}
		set.retain(elems)
	}
	return set.elements(), nil
}

func (a and) String() string {
	parts := make([]string, len(a))
	for i, l := range a {
		parts[i] = l.String()
	}
	return "By.and({" + strings.Join(parts, ",") + "})"
}

// orderedSet holds elements deduplicated by Key, in insertion order.
type orderedSet struct {
	keys  []interface{}
	elems map[interface{}]selenium.WebElement
}

func newOrderedSet(elems []selenium.WebElement) *orderedSet {
	s := &orderedSet{elems: make(map[interface{}]selenium.WebElement, len(elems))}
	s.add(elems)
	return s
}

func (s *orderedSet) add(elems []selenium.WebElement) {
	for _, e := range elems {
		k := Key(e)
		if _, ok := s.elems[k]; ok {
			continue
		}
		s.keys = append(s.keys, k)
		s.elems[k] = e
	}
}

func (s *orderedSet) retain(elems []selenium.WebElement) {
	keep := make(map[interface{}]bool, len(elems))
	for _, e := range elems {
		keep[Key(e)] = true
	}
	kept := s.keys[:0]
	for _, k := range s.keys {
		if keep[k] {
			kept = append(kept, k)
			continue
		}
		delete(s.elems, k)
	}
	s.keys = kept
}

func (s *orderedSet) empty() bool { return len(s.keys) == 0 }

func (s *orderedSet) elements() []selenium.WebElement {
	if s.empty() {
		return nil
	}
	out := make([]selenium.WebElement, len(s.keys))
	for i, k := range s.keys {
		out[i] = s.elems[k]
	}
	return out
}
