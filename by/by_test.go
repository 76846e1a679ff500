package by

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tebeka/selenium"

	"github.com/wanmail/selenium-elements/internal/fakewd"
)

func ids(elems []selenium.WebElement) []string {
	var out []string
	for _, e := range elems {
		out = append(out, e.(*fakewd.Element).ID)
	}
	return out
}

func el(id string) *fakewd.Element { return fakewd.NewElement(id, "div") }

func TestByString(t *testing.T) {
	tests := []struct {
		in   By
		want string
	}{
		{ID("submit"), "By.id: submit"},
		{ClassNamePart("btn"), "By.css selector: .btn"},
		{Attribute("data-test", "ok"), "By.css selector: [data-test='ok']"},
		{XPath("//a"), "By.xpath: //a"},
	}
	for _, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("%#v.String() = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestByDelegatesToScope(t *testing.T) {
	dom := &fakewd.DOM{}
	dom.Set(selenium.ByName, "q", el("1"))

	got, err := Name("q").FindElement(dom)
	if err != nil {
		t.Fatalf("Name(q).FindElement() returned error: %v", err)
	}
	if got.(*fakewd.Element).ID != "1" {
		t.Errorf("Name(q).FindElement() = %v, want element 1", got)
	}

	_, err = ID("missing").FindElement(dom)
	var se *selenium.Error
	if !errors.As(err, &se) || se.Err != "no such element" {
		t.Errorf("ID(missing).FindElement() error = %v, want the scope's no such element error", err)
	}
}

func TestAnd(t *testing.T) {
	tests := []struct {
		desc     string
		setup    func(*fakewd.DOM)
		locators []Locator
		want     []string
	}{
		{
			desc:  "no locators",
			setup: func(*fakewd.DOM) {},
			want:  nil,
		},
		{
			desc: "single locator",
			setup: func(d *fakewd.DOM) {
				d.Set(selenium.ByTagName, "div", el("1"), el("2"))
			},
			locators: []Locator{TagName("div")},
			want:     []string{"1", "2"},
		},
		{
			desc: "order of the first locator",
			setup: func(d *fakewd.DOM) {
				d.Set(selenium.ByCSSSelector, ".a", el("1"), el("2"), el("3"))
				d.Set(selenium.ByTagName, "div", el("3"), el("4"), el("1"))
			},
			locators: []Locator{CSS(".a"), TagName("div")},
			want:     []string{"1", "3"},
		},
		{
			desc: "duplicates in the seed",
			setup: func(d *fakewd.DOM) {
				d.Set(selenium.ByCSSSelector, ".a", el("1"), el("1"), el("2"))
				d.Set(selenium.ByTagName, "div", el("2"), el("1"))
			},
			locators: []Locator{CSS(".a"), TagName("div")},
			want:     []string{"1", "2"},
		},
		{
			desc: "three locators",
			setup: func(d *fakewd.DOM) {
				d.Set(selenium.ByCSSSelector, ".a", el("1"), el("2"), el("3"))
				d.Set(selenium.ByTagName, "div", el("1"), el("2"))
				d.Set(selenium.ByName, "n", el("2"), el("3"))
			},
			locators: []Locator{CSS(".a"), TagName("div"), Name("n")},
			want:     []string{"2"},
		},
		{
			desc: "disjoint",
			setup: func(d *fakewd.DOM) {
				d.Set(selenium.ByCSSSelector, ".a", el("1"))
				d.Set(selenium.ByTagName, "div", el("2"))
			},
			locators: []Locator{CSS(".a"), TagName("div")},
			want:     nil,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			dom := &fakewd.DOM{}
			test.setup(dom)
			got, err := And(test.locators...).FindElements(dom)
			if err != nil {
				t.Fatalf("FindElements() returned error: %v", err)
			}
			if diff := cmp.Diff(test.want, ids(got)); diff != "" {
				t.Errorf("FindElements() returned diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAndShortCircuits(t *testing.T) {
	dom := &fakewd.DOM{}
	dom.Set(selenium.ByCSSSelector, ".a", el("1"))
	dom.Set(selenium.ByTagName, "span")
	dom.Set(selenium.ByName, "n", el("1"))

	got, err := And(CSS(".a"), TagName("span"), Name("n")).FindElements(dom)
	if err != nil {
		t.Fatalf("FindElements() returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("FindElements() = %v, want empty", ids(got))
	}
	if n := dom.Calls(selenium.ByTagName, "span"); n != 1 {
		t.Errorf("tag locator evaluated %d times, want 1", n)
	}
	if n := dom.Calls(selenium.ByName, "n"); n != 0 {
		t.Errorf("locator after an empty intersection evaluated %d times, want 0", n)
	}

	empty := &fakewd.DOM{}
	if _, err := And(CSS(".a"), Name("n")).FindElements(empty); err != nil {
		t.Fatalf("FindElements() returned error: %v", err)
	}
	if n := empty.Calls(selenium.ByName, "n"); n != 0 {
		t.Errorf("locator after an empty seed evaluated %d times, want 0", n)
	}
}

func TestAndFindElement(t *testing.T) {
	dom := &fakewd.DOM{}
	dom.Set(selenium.ByCSSSelector, ".a", el("1"), el("2"))
	dom.Set(selenium.ByTagName, "div", el("2"), el("1"))

	got, err := And(CSS(".a"), TagName("div")).FindElement(dom)
	if err != nil {
		t.Fatalf("FindElement() returned error: %v", err)
	}
	if id := got.(*fakewd.Element).ID; id != "1" {
		t.Errorf("FindElement() = %q, want %q", id, "1")
	}

	l := And(CSS(".a"), Name("none"))
	_, err = l.FindElement(dom)
	var se *selenium.Error
	if !errors.As(err, &se) {
		t.Fatalf("FindElement() error = %v, want a *selenium.Error", err)
	}
	if se.Err != "no such element" {
		t.Errorf("FindElement() error kind = %q, want %q", se.Err, "no such element")
	}
	if !strings.Contains(se.Message, l.String()) {
		t.Errorf("FindElement() error message %q does not name %q", se.Message, l.String())
	}
}

func TestAndString(t *testing.T) {
	const want = "By.and({By.id: x,By.tag name: div})"
	if got := And(ID("x"), TagName("div")).String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := And().String(); got != "By.and({})" {
		t.Errorf("String() = %q, want %q", got, "By.and({})")
	}
}

func TestChained(t *testing.T) {
	form1, form2 := el("f1"), el("f2")
	form1.Children.Set(selenium.ByName, "q", el("1"), el("2"))
	form2.Children.Set(selenium.ByName, "q", el("2"), el("3"))
	dom := &fakewd.DOM{}
	dom.Set(selenium.ByTagName, "form", form1, form2)

	got, err := Chained(TagName("form"), Name("q")).FindElements(dom)
	if err != nil {
		t.Fatalf("FindElements() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "2", "3"}, ids(got)); diff != "" {
		t.Errorf("FindElements() returned diff (-want +got):\n%s", diff)
	}

	_, err = Chained(TagName("form"), Name("missing")).FindElement(dom)
	var se *selenium.Error
	if !errors.As(err, &se) || se.Err != "no such element" {
		t.Errorf("FindElement() error = %v, want no such element", err)
	}

	if got, _ := Chained().FindElements(dom); len(got) != 0 {
		t.Errorf("Chained().FindElements() = %v, want empty", ids(got))
	}
}

type plain struct {
	selenium.WebElement
}

func TestKey(t *testing.T) {
	if Key(el("7")) != Key(el("7")) {
		t.Error("Key() differs for two handles of the same reference")
	}
	if Key(el("7")) == Key(el("8")) {
		t.Error("Key() equal for different references")
	}
	p := &plain{}
	if Key(p) != Key(p) {
		t.Error("Key() differs for the same pointer")
	}
	if Key(p) == Key(&plain{}) {
		t.Error("Key() equal for different pointers")
	}

	// A comparable type holding an uncomparable value must still yield a
	// usable map key.
	v := tagged{data: []string{"a"}}
	seen := map[interface{}]bool{Key(v): true}
	if !seen[Key(v)] {
		t.Error("Key() differs for the same value holding a slice")
	}
}

type tagged struct {
	selenium.WebElement
	data interface{}
}
