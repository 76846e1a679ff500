package elements

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/tebeka/selenium"

	"github.com/wanmail/selenium-elements/by"
)

// An Instantiator locates and wraps declared element types. Declared types
// are passed as pointer types, e.g. reflect.TypeOf((*Search)(nil)).
//
// The Instantiator with the highest priority among those registered is used;
// see Register and Instance.
type Instantiator interface {
	// Priority ranks this Instantiator against the other registered ones.
	Priority() int
	// BuildSelector returns the locator of t, or nil if t declares none.
	BuildSelector(t reflect.Type) (by.Locator, error)
	// Find locates a single element of type t with search and wraps it.
	Find(search func(by.Locator) (selenium.WebElement, error), t reflect.Type) (interface{}, error)
	// FindAll locates all elements of type t with search and wraps them.
	FindAll(search func(by.Locator) ([]selenium.WebElement, error), t reflect.Type) ([]interface{}, error)
	// Wrap returns a new value of type t backed by we.
	Wrap(t reflect.Type, we selenium.WebElement) (interface{}, error)
}

var (
	elementType    = reflect.TypeOf(Element{})
	selectableType = reflect.TypeOf((*Selectable)(nil)).Elem()

	errNoSelector = errors.New("type declares no selector")
)

// DefaultInstantiator handles pointers to structs that embed Element,
// directly or through other embedded structs. It is registered with priority
// 0.
type DefaultInstantiator struct{}

// Priority implements Instantiator.
func (DefaultInstantiator) Priority() int { return 0 }

// BuildSelector implements Instantiator. A Selectable type wins over struct
// tags. Tags are read from the outermost tagged field on the embedding path
// to Element.
func (DefaultInstantiator) BuildSelector(t reflect.Type) (by.Locator, error) {
	path, err := elementPath(t)
	if err != nil {
		return nil, &ConfigError{Op: "build selector for", Type: t, Err: err}
	}

	var (
		sel   FindBySelector
		found bool
	)
	if t.Implements(selectableType) {
		sel, found = reflect.New(t.Elem()).Interface().(Selectable).FindBySelector(), true
	}
	for _, f := range path {
		if found {
			break
		}
		sel, found = selectorFromTag(f.Tag)
	}
	if !found {
		return nil, nil
	}

	l, err := sel.Locator()
	if err != nil {
		return nil, &ConfigError{Op: "build selector for", Type: t, Err: err}
	}
	return l, nil
}

func (d DefaultInstantiator) locator(t reflect.Type) (by.Locator, error) {
	l, err := d.BuildSelector(t)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, &ConfigError{Op: "locate", Type: t, Err: errNoSelector}
	}
	return l, nil
}

// Find implements Instantiator. Errors from search are returned unchanged.
func (d DefaultInstantiator) Find(search func(by.Locator) (selenium.WebElement, error), t reflect.Type) (interface{}, error) {
	l, err := d.locator(t)
	if err != nil {
		return nil, err
	}
	we, err := search(l)
	if err != nil {
		return nil, err
	}
	return d.Wrap(t, we)
}

// FindAll implements Instantiator. Errors from search are returned unchanged.
func (d DefaultInstantiator) FindAll(search func(by.Locator) ([]selenium.WebElement, error), t reflect.Type) ([]interface{}, error) {
	l, err := d.locator(t)
	if err != nil {
		return nil, err
	}
	elems, err := search(l)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(elems))
	for _, we := range elems {
		v, err := d.Wrap(t, we)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Wrap implements Instantiator. It allocates a new value of t and stores we
// in its Element field.
func (DefaultInstantiator) Wrap(t reflect.Type, we selenium.WebElement) (interface{}, error) {
	if we == nil {
		return nil, &ConfigError{Op: "wrap", Type: t, Err: errors.New("nil element")}
	}
	path, err := elementPath(t)
	if err != nil {
		return nil, &ConfigError{Op: "wrap", Type: t, Err: err}
	}
	v := reflect.New(t.Elem())
	f := v.Elem()
	for _, sf := range path {
		f = f.Field(sf.Index[0])
	}
	f.Set(reflect.ValueOf(Element{webElement: we}))
	return v.Interface(), nil
}

// elementPath returns the chain of embedded fields leading from *t to the
// shallowest embedded Element.
func elementPath(t reflect.Type) ([]reflect.StructField, error) {
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("want a pointer to a struct embedding elements.Element, got %v", t)
	}
	type node struct {
		t    reflect.Type
		path []reflect.StructField
	}
	queue := []node{{t: t.Elem()}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for i := 0; i < n.t.NumField(); i++ {
			f := n.t.Field(i)
			if !f.Anonymous {
				continue
			}
			path := append(append([]reflect.StructField(nil), n.path...), f)
			if f.Type == elementType {
				return path, nil
			}
			if f.Type.Kind() == reflect.Struct {
				queue = append(queue, node{f.Type, path})
			}
		}
	}
	return nil, fmt.Errorf("%v does not embed elements.Element", t.Elem())
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil))
}

func instantiator() (Instantiator, error) {
	inst := Instance()
	if inst == nil {
		return nil, ErrNoInstantiator
	}
	return inst, nil
}

func assertType[T any](v interface{}, t reflect.Type) (*T, error) {
	p, ok := v.(*T)
	if !ok {
		return nil, &ConfigError{Op: "wrap", Type: t, Err: fmt.Errorf("instantiator returned %T", v)}
	}
	return p, nil
}

// SelectorOf returns the locator declared by T, or nil if it declares none.
func SelectorOf[T any]() (by.Locator, error) {
	inst, err := instantiator()
	if err != nil {
		return nil, err
	}
	return inst.BuildSelector(typeOf[T]())
}

// Wrap returns a *T backed by we.
func Wrap[T any](we selenium.WebElement) (*T, error) {
	inst, err := instantiator()
	if err != nil {
		return nil, err
	}
	t := typeOf[T]()
	v, err := inst.Wrap(t, we)
	if err != nil {
		return nil, err
	}
	return assertType[T](v, t)
}

// Find locates the first element matching T's selector within sc.
func Find[T any](sc by.SearchContext) (*T, error) {
	inst, err := instantiator()
	if err != nil {
		return nil, err
	}
	t := typeOf[T]()
	v, err := inst.Find(func(l by.Locator) (selenium.WebElement, error) {
		return l.FindElement(sc)
	}, t)
	if err != nil {
		return nil, err
	}
	return assertType[T](v, t)
}

// FindAll locates every element matching T's selector within sc.
func FindAll[T any](sc by.SearchContext) ([]*T, error) {
	inst, err := instantiator()
	if err != nil {
		return nil, err
	}
	t := typeOf[T]()
	vs, err := inst.FindAll(func(l by.Locator) ([]selenium.WebElement, error) {
		return l.FindElements(sc)
	}, t)
	if err != nil {
		return nil, err
	}
	out := make([]*T, len(vs))
	for i, v := range vs {
		if out[i], err = assertType[T](v, t); err != nil {
			return nil, err
		}
	}
	return out, nil
}
