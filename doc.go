/*
Package elements adds typed page elements and robust interactions on top of
the github.com/tebeka/selenium WebDriver client.

Install a driver so that elements wait for the page to settle, scroll into
view and fall back to a JavaScript click when the browser rejects a native
one. Declare element types by embedding Element and describing how to find
them, then look them up with Find, FindAll or WaitFor.

Example usage:

	package main

	import (
		"fmt"

		"github.com/tebeka/selenium"
		"github.com/wanmail/selenium-elements"
		"github.com/wanmail/selenium-elements/by"
	)

	// Every criterion must match: this finds <button class="primary" name="save">.
	type SaveButton struct {
		elements.Element `tagName:"button" classNamePart:"primary" name:"save"`
	}

	type Status struct {
		elements.Element `id:"status"`
	}

	// Errors are ignored for brevity.

	func main() {
		caps := selenium.Capabilities{"browserName": "firefox"}
		remote, _ := selenium.NewRemote(caps, "")
		defer remote.Quit()

		wd, _ := elements.Install(remote,
			elements.ReadinessScript("return document.readyState === 'complete'"))
		wd.Get("http://localhost:8080/settings")

		f := wd.Finder()
		save, _ := elements.WaitFor[SaveButton](f)
		save.Click()

		status, _ := elements.WaitFor[Status](f, by.ClassNamePart("done"))
		text, _ := status.Text()
		fmt.Printf("Got: %s\n", text)
	}

Locators in package by compose the WebDriver strategies; by.And matches
elements found by every one of its locators.
*/
package elements
