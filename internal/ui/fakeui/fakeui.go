// Package fakeui provides an in-memory ui.Driver for exercising the login flow without a browser.
package fakeui

import (
	"fmt"
	"time"

	"console-login-harness/internal/ui"
)

// Element is the state of one fake element, keyed by locator in Driver.Elements
type Element struct {
	Present  bool
	Disabled bool
	Checked  bool
	Text     string
	// AppearAfter makes the first N Exists calls report absence
	AppearAfter int
	// Err is returned by every call on the element
	Err error

	existsCalls int
}

// Driver records every interaction in Calls, in order
type Driver struct {
	Elements map[string]*Element
	// Windows lists the titles SwitchToWindow can find
	Windows       []string
	ActiveWindow  string
	SwitchErr     error
	ScreenshotErr error
	Screenshots   int
	Calls         []string
}

var _ ui.Driver = (*Driver)(nil)

func New() *Driver {
	return &Driver{Elements: map[string]*Element{}}
}

// Set registers el under locator and returns the driver for chaining
func (d *Driver) Set(locator string, el *Element) *Driver {
	d.Elements[locator] = el
	return d
}

func (d *Driver) Element(locator string) ui.Element {
	return &handle{driver: d, locator: locator}
}

func (d *Driver) SwitchToWindow(title string) (bool, error) {
	d.Calls = append(d.Calls, "switch "+title)
	if d.SwitchErr != nil {
		return false, d.SwitchErr
	}
	for _, w := range d.Windows {
		if w == title {
			d.ActiveWindow = title
			return true, nil
		}
	}
	return false, nil
}

func (d *Driver) Screenshot() ([]byte, error) {
	if d.ScreenshotErr != nil {
		return nil, d.ScreenshotErr
	}
	d.Screenshots++
	return []byte("png"), nil
}

func (d *Driver) Close() error { return nil }

// Called reports whether an exact call was recorded, e.g. "click #submit"
func (d *Driver) Called(call string) bool {
	for _, c := range d.Calls {
		if c == call {
			return true
		}
	}
	return false
}

type handle struct {
	driver  *Driver
	locator string
}

func (h *handle) record(format string, args ...any) {
	h.driver.Calls = append(h.driver.Calls, fmt.Sprintf(format, args...))
}

func (h *handle) lookup() (*Element, error) {
	el, ok := h.driver.Elements[h.locator]
	if !ok || !el.Present {
		return nil, fmt.Errorf("%w: %s", ui.ErrElementNotFound, h.locator)
	}
	if el.Err != nil {
		return nil, el.Err
	}
	return el, nil
}

func (h *handle) Exists(timeout time.Duration) (bool, error) {
	h.record("exists %s %s", h.locator, timeout)
	el, ok := h.driver.Elements[h.locator]
	if !ok {
		return false, nil
	}
	if el.Err != nil {
		return false, el.Err
	}
	el.existsCalls++
	if el.existsCalls <= el.AppearAfter {
		return false, nil
	}
	return el.Present, nil
}

func (h *handle) IsEnabled() (bool, error) {
	el, err := h.lookup()
	if err != nil {
		return false, err
	}
	return !el.Disabled, nil
}

func (h *handle) IsChecked() (bool, error) {
	el, err := h.lookup()
	if err != nil {
		return false, err
	}
	return el.Checked, nil
}

func (h *handle) ClearText() error {
	el, err := h.lookup()
	if err != nil {
		return err
	}
	h.record("clear %s", h.locator)
	el.Text = ""
	return nil
}

func (h *handle) SetText(text string) error {
	el, err := h.lookup()
	if err != nil {
		return err
	}
	h.record("type %s", h.locator)
	el.Text += text
	return nil
}

func (h *handle) Click() error {
	if _, err := h.lookup(); err != nil {
		return err
	}
	h.record("click %s", h.locator)
	return nil
}

func (h *handle) Check() error {
	el, err := h.lookup()
	if err != nil {
		return err
	}
	h.record("check %s", h.locator)
	el.Checked = true
	return nil
}

func (h *handle) Text() (string, error) {
	el, err := h.lookup()
	if err != nil {
		return "", err
	}
	return el.Text, nil
}
