package elements

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wanmail/selenium-elements/by"
)

func TestDefaultBuilderSingleCriterion(t *testing.T) {
	tests := []struct {
		sel  FindBySelector
		want by.Locator
	}{
		{FindBySelector{ID: "x"}, by.ID("x")},
		{FindBySelector{Name: "q"}, by.Name("q")},
		{FindBySelector{ClassNamePart: "btn"}, by.CSS(".btn")},
		{FindBySelector{ClassNameExact: "btn"}, by.ClassName("btn")},
		{FindBySelector{CSS: "div > a"}, by.CSS("div > a")},
		{FindBySelector{TagName: "input"}, by.TagName("input")},
		{FindBySelector{LinkText: "Home"}, by.LinkText("Home")},
		{FindBySelector{PartialLinkText: "Ho"}, by.PartialLinkText("Ho")},
		{FindBySelector{XPath: "//a"}, by.XPath("//a")},
	}
	for _, test := range tests {
		got := DefaultBuilder{}.Build(test.sel)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Build(%+v) returned diff (-want +got):\n%s", test.sel, diff)
		}
	}
}

func TestDefaultBuilderNoCriteria(t *testing.T) {
	if got := (DefaultBuilder{}).Build(FindBySelector{}); got != nil {
		t.Errorf("Build(FindBySelector{}) = %v, want nil", got)
	}
}

func TestDefaultBuilderOrder(t *testing.T) {
	sel := FindBySelector{
		TagName:         "a",
		PartialLinkText: "p",
		Name:            "n",
		LinkText:        "l",
		XPath:           "//a",
		ClassNameExact:  "e",
		CSS:             "c",
		ClassNamePart:   "part",
		ID:              "i",
	}
	const want = "By.and({" +
		"By.id: i," +
		"By.css selector: .part," +
		"By.css selector: c," +
		"By.class name: e," +
		"By.xpath: //a," +
		"By.link text: l," +
		"By.name: n," +
		"By.partial link text: p," +
		"By.tag name: a})"
	if got := (DefaultBuilder{}).Build(sel).String(); got != want {
		t.Errorf("Build().String() = %q, want %q", got, want)
	}
}

func TestSelectorBuilders(t *testing.T) {
	RegisterSelectorBuilder("test-first-only", SelectorBuilderFunc(func(s FindBySelector) by.Locator {
		return by.ID(s.ID)
	}))

	l, err := FindBySelector{ID: "x", Name: "n", BuilderName: "test-first-only"}.Locator()
	if err != nil {
		t.Fatalf("Locator() returned error: %v", err)
	}
	if diff := cmp.Diff(by.Locator(by.ID("x")), l); diff != "" {
		t.Errorf("Locator() with a registered builder returned diff (-want +got):\n%s", diff)
	}

	l, err = FindBySelector{Name: "n", Builder: SelectorBuilderFunc(func(FindBySelector) by.Locator {
		return by.XPath("//custom")
	})}.Locator()
	if err != nil {
		t.Fatalf("Locator() returned error: %v", err)
	}
	if got, want := l.String(), "By.xpath: //custom"; got != want {
		t.Errorf("Locator() with a builder value = %q, want %q", got, want)
	}

	if _, err := (FindBySelector{ID: "x", BuilderName: "no-such-builder"}).Locator(); err == nil {
		t.Error("Locator() with an unknown builder returned nil error")
	}
}

func TestRegisterSelectorBuilderPanics(t *testing.T) {
	RegisterSelectorBuilder("test-dup", DefaultBuilder{})
	for _, test := range []struct {
		desc string
		name string
		b    SelectorBuilder
	}{
		{"nil builder", "test-nil", nil},
		{"duplicate name", "test-dup", DefaultBuilder{}},
	} {
		t.Run(test.desc, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("RegisterSelectorBuilder(%q) did not panic", test.name)
				}
			}()
			RegisterSelectorBuilder(test.name, test.b)
		})
	}
}

func TestSelectorFromTag(t *testing.T) {
	tests := []struct {
		tag    reflect.StructTag
		want   FindBySelector
		wantOK bool
	}{
		{``, FindBySelector{}, false},
		{`json:"x"`, FindBySelector{}, false},
		{`id:"a" tagName:"button"`, FindBySelector{ID: "a", TagName: "button"}, true},
		{`classNamePart:"p" classNameExact:"e" css:"c"`, FindBySelector{ClassNamePart: "p", ClassNameExact: "e", CSS: "c"}, true},
		{`linkText:"l" partialLinkText:"pl" xpath:"//x" name:"n"`, FindBySelector{LinkText: "l", PartialLinkText: "pl", XPath: "//x", Name: "n"}, true},
		{`builder:"b"`, FindBySelector{BuilderName: "b"}, true},
	}
	for _, test := range tests {
		got, ok := selectorFromTag(test.tag)
		if ok != test.wantOK {
			t.Errorf("selectorFromTag(%q) ok = %t, want %t", test.tag, ok, test.wantOK)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("selectorFromTag(%q) returned diff (-want +got):\n%s", test.tag, diff)
		}
	}
}
