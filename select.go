package elements

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tebeka/selenium"
)

// Select is a <select> element.
//
//	type Country struct {
//		elements.Select `name:"country"`
//	}
type Select struct {
	Element `tagName:"select"`
}

// IsMultiple reports whether several options can be selected at once, per the
// "multiple" attribute.
func (s *Select) IsMultiple() bool {
	v, err := s.GetAttribute("multiple")
	if err != nil {
		// WebDriver reports an absent attribute as an error.
		return false
	}
	return v != "" && strings.ToLower(v) != "false"
}

// Options returns all options of the select.
func (s *Select) Options() ([]selenium.WebElement, error) {
	return s.FindElements(selenium.ByTagName, "option")
}

// SelectedOptions returns the options that are currently selected.
func (s *Select) SelectedOptions() ([]selenium.WebElement, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	var selected []selenium.WebElement
	for _, o := range opts {
		ok, err := o.IsSelected()
		if err != nil {
			return nil, err
		}
		if ok {
			selected = append(selected, o)
		}
	}
	return selected, nil
}

// FirstSelectedOption returns the first selected option.
func (s *Select) FirstSelectedOption() (selenium.WebElement, error) {
	opts, err := s.SelectedOptions()
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return nil, &selenium.Error{Err: "no such element", Message: "no option is selected"}
	}
	return opts[0], nil
}

// SelectByVisibleText selects the options whose text is text, ignoring
// surrounding whitespace. A single select stops at the first one.
func (s *Select) SelectByVisibleText(text string) error {
	options, err := s.FindElements(selenium.ByXPATH, `.//option[normalize-space(.) = "`+escapeQuotes(text)+`"]`)
	if err != nil {
		return err
	}
	multi := s.IsMultiple()
	for _, o := range options {
		if err := setSelected(o, true); err != nil {
			return err
		}
		if !multi {
			return nil
		}
	}
	if len(options) > 0 {
		return nil
	}
	if !strings.Contains(text, " ") {
		return fmt.Errorf("cannot locate option with text: %s", text)
	}

	// The text may hold whitespace that normalize-space folded away.
	var candidates []selenium.WebElement
	if word := longestWord(text); word == "" {
		candidates, err = s.Options()
	} else {
		candidates, err = s.FindElements(selenium.ByXPATH, `.//option[contains(., "`+escapeQuotes(word)+`")]`)
	}
	if err != nil {
		return err
	}
	matched := false
	trimmed := strings.TrimSpace(text)
	for _, o := range candidates {
		t, err := o.Text()
		if err != nil {
			return err
		}
		if strings.TrimSpace(t) != trimmed {
			continue
		}
		if err := setSelected(o, true); err != nil {
			return err
		}
		if !multi {
			return nil
		}
		matched = true
	}
	if !matched {
		return fmt.Errorf("cannot locate option with text: %s", text)
	}
	return nil
}

// SelectByIndex selects the option whose "index" property is index.
func (s *Select) SelectByIndex(index int) error {
	return s.setSelectedByIndex(index, true)
}

// SelectByValue selects the options whose value is value. A single select
// stops at the first one.
func (s *Select) SelectByValue(value string) error {
	opts, err := s.optionsByValue(value)
	if err != nil {
		return err
	}
	multi := s.IsMultiple()
	for _, o := range opts {
		if err := setSelected(o, true); err != nil {
			return err
		}
		if !multi {
			return nil
		}
	}
	return nil
}

// DeselectAll clears the selection of a multi-select.
func (s *Select) DeselectAll() error {
	if err := s.requireMultiple(); err != nil {
		return err
	}
	opts, err := s.Options()
	if err != nil {
		return err
	}
	return setAllSelected(opts, false)
}

// DeselectByValue deselects the options whose value is value.
func (s *Select) DeselectByValue(value string) error {
	if err := s.requireMultiple(); err != nil {
		return err
	}
	opts, err := s.optionsByValue(value)
	if err != nil {
		return err
	}
	return setAllSelected(opts, false)
}

// DeselectByIndex deselects the option whose "index" property is index.
func (s *Select) DeselectByIndex(index int) error {
	if err := s.requireMultiple(); err != nil {
		return err
	}
	return s.setSelectedByIndex(index, false)
}

// DeselectByVisibleText deselects the options whose text is text.
func (s *Select) DeselectByVisibleText(text string) error {
	if err := s.requireMultiple(); err != nil {
		return err
	}
	opts, err := s.FindElements(selenium.ByXPATH, `.//option[normalize-space(.) = "`+escapeQuotes(text)+`"]`)
	if err != nil {
		return err
	}
	if len(opts) == 0 {
		return fmt.Errorf("cannot locate option with text: %s", text)
	}
	return setAllSelected(opts, false)
}

func (s *Select) requireMultiple() error {
	if !s.IsMultiple() {
		return fmt.Errorf("you may only deselect options of a multi-select")
	}
	return nil
}

func (s *Select) optionsByValue(value string) ([]selenium.WebElement, error) {
	opts, err := s.FindElements(selenium.ByXPATH, `.//option[@value = "`+escapeQuotes(value)+`"]`)
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return nil, fmt.Errorf("cannot locate option with value: %s", value)
	}
	return opts, nil
}

func (s *Select) setSelectedByIndex(index int, selected bool) error {
	opts, err := s.Options()
	if err != nil {
		return err
	}
	want := strconv.Itoa(index)
	for _, o := range opts {
		idx, err := o.GetAttribute("index")
		if err != nil {
			return err
		}
		if idx == want {
			return setSelected(o, selected)
		}
	}
	return fmt.Errorf("cannot locate option with index: %d", index)
}

func setAllSelected(opts []selenium.WebElement, selected bool) error {
	for _, o := range opts {
		if err := setSelected(o, selected); err != nil {
			return err
		}
	}
	return nil
}

func setSelected(option selenium.WebElement, selected bool) error {
	sel, err := option.IsSelected()
	if err != nil {
		return err
	}
	if sel != selected {
		return option.Click()
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}

func longestWord(s string) string {
	result := ""
	for _, w := range strings.Split(s, " ") {
		if len(w) > len(result) {
			result = w
		}
	}
	return result
}
