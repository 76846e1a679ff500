// Package elementstest provides browser tests that exercise package elements
// against a live WebDriver. The tests live in a separate package so that
// other harnesses can run them with their own drivers.
package elementstest

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"

	elements "github.com/wanmail/selenium-elements"
	"github.com/wanmail/selenium-elements/by"
)

// Config describes the browser and the fixture server a test run targets.
type Config struct {
	Addr, Browser, Path, ServerURL string
	ServiceOptions                 []selenium.ServiceOption
	Headless                       bool
}

func runTest(f func(*testing.T, Config), c Config) func(*testing.T) {
	return func(t *testing.T) {
		f(t, c)
	}
}

// NewRemote starts a browser session. Harnesses may replace it.
var NewRemote = func(_ *testing.T, caps selenium.Capabilities, addr string) (selenium.WebDriver, error) {
	return selenium.NewRemote(caps, addr)
}

// newRemote starts a session and installs the enhanced elements on it.
func newRemote(t *testing.T, c Config, opts ...elements.RemoteOption) *elements.Driver {
	caps := newTestCapabilities(c)
	wd, err := NewRemote(t, caps, c.Addr)
	if err != nil {
		t.Fatalf("NewRemote(%+v, %q) returned error: %v", caps, c.Addr, err)
	}
	d, err := elements.Install(wd, opts...)
	if err != nil {
		wd.Quit()
		t.Fatalf("Install() returned error: %v", err)
	}
	return d
}

func newTestCapabilities(c Config) selenium.Capabilities {
	caps := selenium.Capabilities{
		"browserName": c.Browser,
	}
	switch c.Browser {
	case "chrome":
		chrCaps := chrome.Capabilities{
			Path: c.Path,
			Args: []string{
				// Chrome binaries outside the default installation have no
				// setuid sandbox.
				"--no-sandbox",
			},
			W3C: true,
		}
		if c.Headless {
			chrCaps.Args = append(chrCaps.Args, "--headless")
		}
		caps.AddChrome(chrCaps)
	case "firefox":
		f := firefox.Capabilities{}
		if c.Path != "" {
			p, err := filepath.Abs(c.Path)
			if err != nil {
				panic(err)
			}
			f.Binary = p
		}
		if c.Headless {
			f.Args = append(f.Args, "-headless")
		}
		caps.AddFirefox(f)
	}
	return caps
}

func quitRemote(t *testing.T, wd selenium.WebDriver) {
	if err := wd.Quit(); err != nil {
		t.Errorf("wd.Quit() returned error: %v", err)
	}
}

func get(t *testing.T, wd selenium.WebDriver, u string) {
	t.Helper()
	if err := wd.Get(u); err != nil {
		t.Fatalf("wd.Get(%q) returned error: %v", u, err)
	}
}

// RunCommonTests runs the browser independent tests.
func RunCommonTests(t *testing.T, c Config) {
	t.Run("FindTyped", runTest(testFindTyped, c))
	t.Run("FindAll", runTest(testFindAll, c))
	t.Run("NotFound", runTest(testNotFound, c))
	t.Run("And", runTest(testAnd, c))
	t.Run("Chained", runTest(testChained, c))
	t.Run("WaitFor", runTest(testWaitFor, c))
	t.Run("WaitTimeout", runTest(testWaitTimeout, c))
	t.Run("ClickFallback", runTest(testClickFallback, c))
	t.Run("Readiness", runTest(testReadiness, c))
	t.Run("Properties", runTest(testProperties, c))
	t.Run("CustomEvent", runTest(testCustomEvent, c))
	t.Run("Select", runTest(testSelect, c))
	t.Run("SendKeys", runTest(testSendKeys, c))
}

type searchBox struct {
	elements.Element `name:"q"`
}

type submitButton struct {
	elements.Element `id:"submit" tagName:"input"`
}

type checkbox struct {
	elements.Element `css:"input[type=checkbox]"`
}

type link struct {
	elements.Element `tagName:"a"`
}

type missing struct {
	elements.Element `id:"does-not-exist"`
}

type lateItem struct {
	elements.Element `classNamePart:"late"`
}

type coveredButton struct {
	elements.Element `id:"covered"`
}

type output struct {
	elements.Element `id:"output"`
}

type formSelect struct {
	elements.Select `name:"s"`
}

func testFindTyped(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL)

	q, err := elements.Find[searchBox](wd)
	if err != nil {
		t.Fatalf("Find[searchBox]() returned error: %v", err)
	}
	if q.RemoteElement() == nil {
		t.Error("Find[searchBox]() element is not backed by a RemoteElement")
	}
	if name, err := q.GetAttribute("name"); err != nil || name != "q" {
		t.Errorf("GetAttribute(name) = %q, %v, want %q, nil", name, err, "q")
	}

	b, err := elements.Find[submitButton](wd)
	if err != nil {
		t.Fatalf("Find[submitButton]() returned error: %v", err)
	}
	if typ, err := b.GetAttribute("type"); err != nil || typ != "submit" {
		t.Errorf("GetAttribute(type) = %q, %v, want %q, nil", typ, err, "submit")
	}

	if _, err := elements.Find[checkbox](wd); err != nil {
		t.Errorf("Find[checkbox]() returned error: %v", err)
	}
}

func testFindAll(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL)

	links, err := elements.FindAll[link](wd)
	if err != nil {
		t.Fatalf("FindAll[link]() returned error: %v", err)
	}
	var texts []string
	for _, l := range links {
		s, err := l.Text()
		if err != nil {
			t.Fatalf("Text() returned error: %v", err)
		}
		texts = append(texts, s)
	}
	if diff := cmp.Diff([]string{"other page", "search"}, texts); diff != "" {
		t.Errorf("FindAll[link]() texts returned diff (-want +got):\n%s", diff)
	}
}

func testNotFound(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL)

	if _, err := elements.Find[missing](wd); !elements.IsNotFound(err) {
		t.Errorf("Find[missing]() error = %v, want no such element", err)
	}
	all, err := elements.FindAll[missing](wd)
	if err != nil || len(all) != 0 {
		t.Errorf("FindAll[missing]() = %v, %v, want no elements and nil", all, err)
	}
}

func testAnd(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL)

	l := by.And(by.TagName("input"), by.Attribute("type", "checkbox"))
	we, err := l.FindElement(wd)
	if err != nil {
		t.Fatalf("%s.FindElement() returned error: %v", l, err)
	}
	if id, err := we.GetAttribute("id"); err != nil || id != "chuk" {
		t.Errorf("%s matched id %q, %v, want %q", l, id, err, "chuk")
	}

	all, err := by.And(by.TagName("input"), by.Attribute("type", "radio")).FindElements(wd)
	if err != nil || len(all) != 0 {
		t.Errorf("And() over disjoint criteria = %v, %v, want no elements", all, err)
	}
}

func testChained(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL)

	we, err := wd.Finder().WaitForFirstChained(by.TagName("form"), by.ID("chuk"))
	if err != nil {
		t.Fatalf("WaitForFirstChained() returned error: %v", err)
	}
	if _, ok := we.(*elements.RemoteElement); !ok {
		t.Errorf("WaitForFirstChained() = %T, want *elements.RemoteElement", we)
	}
}

func testWaitFor(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL+"/late")

	f := wd.Finder()
	f.Timeout = 5 * time.Second
	item, err := elements.WaitFor[lateItem](f)
	if err != nil {
		t.Fatalf("WaitFor[lateItem]() returned error: %v", err)
	}
	if text, err := item.Text(); err != nil || text != "arrived" {
		t.Errorf("Text() = %q, %v, want %q, nil", text, err, "arrived")
	}

	changed, err := elements.WaitUntil(f, func(wd selenium.WebDriver) (bool, error) {
		title, err := wd.Title()
		return title == "Late", err
	})
	if err != nil || !changed {
		t.Errorf("WaitUntil(title changed) = %t, %v, want true, nil", changed, err)
	}
}

func testWaitTimeout(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL)

	_, err := elements.WaitForTimeout[missing](wd.Finder(), 500*time.Millisecond)
	if !elements.IsTimeout(err) || !elements.IsNotFound(err) {
		t.Errorf("WaitForTimeout[missing]() error = %v, want a timeout after no such element", err)
	}
}

func testClickFallback(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL+"/covered")

	b, err := elements.Find[coveredButton](wd)
	if err != nil {
		t.Fatalf("Find[coveredButton]() returned error: %v", err)
	}
	if err := b.NativeClick(); !elements.IsNotInteractable(err) {
		t.Errorf("NativeClick() on a covered button error = %v, want not interactable", err)
	}
	if err := b.Click(); err != nil {
		t.Fatalf("Click() returned error: %v", err)
	}

	out, err := elements.Find[output](wd)
	if err != nil {
		t.Fatalf("Find[output]() returned error: %v", err)
	}
	if text, err := out.Text(); err != nil || text != "clicked" {
		t.Errorf("output = %q, %v, want %q, nil", text, err, "clicked")
	}
}

func testReadiness(t *testing.T, c Config) {
	wd := newRemote(t, c,
		elements.ReadinessScript("return window.appReady === true"),
		elements.ReadinessTimeout(5*time.Second),
	)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL+"/busy")

	out, err := elements.Find[output](wd)
	if err != nil {
		t.Fatalf("Find[output]() returned error: %v", err)
	}
	// Text waits for the page to report ready before reading.
	if text, err := out.Text(); err != nil || text != "ready" {
		t.Errorf("Text() = %q, %v, want %q, nil", text, err, "ready")
	}
}

func testProperties(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL)

	q, err := elements.Find[searchBox](wd)
	if err != nil {
		t.Fatalf("Find[searchBox]() returned error: %v", err)
	}
	if tag, ok, err := q.StringProperty("tagName"); err != nil || !ok || tag != "INPUT" {
		t.Errorf("StringProperty(tagName) = %q, %t, %v, want %q, true, nil", tag, ok, err, "INPUT")
	}
	if n, ok, err := q.IntProperty("form", "elements", "length"); err != nil || !ok || n != 4 {
		t.Errorf("IntProperty(form.elements.length) = %d, %t, %v, want 4, true, nil", n, ok, err)
	}
	if _, ok, err := q.StringProperty("noSuchProperty", "deeper"); err != nil || ok {
		t.Errorf("StringProperty(noSuchProperty.deeper) = %t, %v, want false, nil", ok, err)
	}

	if err := q.SetProperty("value", "gopher"); err != nil {
		t.Fatalf("SetProperty(value) returned error: %v", err)
	}
	if v, err := q.GetAttribute("value"); err != nil || v != "gopher" {
		t.Errorf("GetAttribute(value) after SetProperty = %q, %v, want %q, nil", v, err, "gopher")
	}

	for attr, want := range map[string]bool{"autofocus": true, "disabled": false} {
		if got, err := q.HasAttribute(attr); err != nil || got != want {
			t.Errorf("HasAttribute(%q) = %t, %v, want %t, nil", attr, got, err, want)
		}
	}
}

func testCustomEvent(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL+"/events")

	out, err := elements.Find[output](wd)
	if err != nil {
		t.Fatalf("Find[output]() returned error: %v", err)
	}
	if err := out.DispatchCustomEvent("ping", map[string]interface{}{"detail": "pong"}); err != nil {
		t.Fatalf("DispatchCustomEvent() returned error: %v", err)
	}
	if text, err := out.Text(); err != nil || text != "ping:pong" {
		t.Errorf("Text() after event = %q, %v, want %q, nil", text, err, "ping:pong")
	}
}

func testSelect(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL)

	s, err := elements.Find[formSelect](wd)
	if err != nil {
		t.Fatalf("Find[formSelect]() returned error: %v", err)
	}
	if s.IsMultiple() {
		t.Error("IsMultiple() = true, want false")
	}
	if err := s.SelectByVisibleText("Second Value"); err != nil {
		t.Fatalf("SelectByVisibleText() returned error: %v", err)
	}
	opt, err := s.FirstSelectedOption()
	if err != nil {
		t.Fatalf("FirstSelectedOption() returned error: %v", err)
	}
	if v, err := opt.GetAttribute("value"); err != nil || v != "second_value" {
		t.Errorf("selected value = %q, %v, want %q, nil", v, err, "second_value")
	}
	if err := s.SelectByIndex(0); err != nil {
		t.Fatalf("SelectByIndex(0) returned error: %v", err)
	}
	if err := s.DeselectAll(); err == nil {
		t.Error("DeselectAll() on a single select returned nil error")
	}
}

func testSendKeys(t *testing.T, c Config) {
	wd := newRemote(t, c)
	defer quitRemote(t, wd)
	get(t, wd, c.ServerURL)

	q, err := elements.Find[searchBox](wd)
	if err != nil {
		t.Fatalf("Find[searchBox]() returned error: %v", err)
	}
	const query = "golang"
	if err := q.SendKeys(query + selenium.EnterKey); err != nil {
		t.Fatalf("SendKeys() returned error: %v", err)
	}

	f := wd.Finder()
	f.Timeout = 5 * time.Second
	src, err := elements.WaitUntil(f, func(wd selenium.WebDriver) (*string, error) {
		src, err := wd.PageSource()
		if err != nil || !strings.Contains(src, "You searched for") {
			return nil, err
		}
		return &src, nil
	})
	if err != nil {
		t.Fatalf("waiting for the search page returned error: %v", err)
	}
	if !strings.Contains(*src, query) {
		t.Errorf("search page does not mention %q", query)
	}
}

var homePage = `
<html>
<head>
	<title>Elements Test Suite</title>
</head>
<body>
	<form action="/search">
		<input name="q" autofocus />
		<input name="submit" type="submit" id="submit" /> <br />
		<input id="chuk" type="checkbox" /> A checkbox.
		<select name="s">
			<option value="first_value">First Value</option>
			<option id="secondValue" value="second_value">Second Value</option>
		</select>
	</form>
	Link to the <a href="/other">other page</a>.
	<a href="/search">search</a>
</body>
</html>
`

var searchPage = `
<html>
<head>
	<title>Elements Test Suite - Search</title>
</head>
<body>
	You searched for "%s".
</body>
</html>
`

var latePage = `
<html>
<head>
	<title>Elements Test Suite - Late</title>
</head>
<body>
	<ul id="list"></ul>
	<script>
		setTimeout(function() {
			var li = document.createElement('li');
			li.className = 'item late';
			li.textContent = 'arrived';
			document.getElementById('list').appendChild(li);
			document.title = 'Late';
		}, 1000);
	</script>
</body>
</html>
`

var coveredPage = `
<html>
<head>
	<title>Elements Test Suite - Covered</title>
	<style>
		#cover { position: absolute; top: 0; left: 0; width: 400px; height: 200px; z-index: 10; background: rgba(0, 0, 0, 0.1); }
		#covered { position: absolute; top: 50px; left: 50px; }
	</style>
</head>
<body>
	<button id="covered" onclick="document.getElementById('output').textContent = 'clicked'">Press</button>
	<div id="cover"></div>
	<div id="output" style="margin-top: 250px">waiting</div>
</body>
</html>
`

var busyPage = `
<html>
<head>
	<title>Elements Test Suite - Busy</title>
</head>
<body>
	<div id="output">loading</div>
	<script>
		setTimeout(function() {
			document.getElementById('output').textContent = 'ready';
			window.appReady = true;
		}, 1000);
	</script>
</body>
</html>
`

var eventsPage = `
<html>
<head>
	<title>Elements Test Suite - Events</title>
</head>
<body>
	<div id="output">none</div>
	<script>
		document.getElementById('output').addEventListener('ping', function(e) {
			e.target.textContent = e.type + ':' + e.detail;
		});
	</script>
</body>
</html>
`

// Handler serves the fixture pages RunCommonTests navigates to.
var Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	page, ok := map[string]string{
		"/":        homePage,
		"/search":  searchPage,
		"/late":    latePage,
		"/covered": coveredPage,
		"/busy":    busyPage,
		"/events":  eventsPage,
	}[path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	if path == "/search" {
		r.ParseForm()
		page = fmt.Sprintf(page, r.Form.Get("q"))
	}
	fmt.Fprint(w, page)
})
