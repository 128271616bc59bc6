package ui

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrElementNotFound is returned by actions on an element that is not in the page
	ErrElementNotFound = errors.New("element not found")
	// ErrSessionBusy is returned by Session.Acquire while another run owns the driver
	ErrSessionBusy = errors.New("session already in use")
)

// Element is a lazily resolved handle on the element matched by a locator.
// All calls block; driver faults are returned as errors.
type Element interface {
	Exists(timeout time.Duration) (bool, error)
	IsEnabled() (bool, error)
	IsChecked() (bool, error)
	ClearText() error
	SetText(text string) error
	Click() error
	Check() error
	Text() (string, error)
}

// Driver is the browser session the login flow runs against
type Driver interface {
	Element(locator string) Element
	// SwitchToWindow makes the window whose title equals title the active one
	SwitchToWindow(title string) (bool, error)
	Screenshot() ([]byte, error)
	Close() error
}

// Session owns a Driver. Only one login sequence may drive it at a time.
type Session struct {
	driver Driver
	mu     sync.Mutex
}

func NewSession(driver Driver) *Session {
	return &Session{driver: driver}
}

// Acquire hands out the driver together with the release func of the ownership token.
// It does not block: a session already in use fails with ErrSessionBusy.
func (s *Session) Acquire() (Driver, func(), error) {
	if !s.mu.TryLock() {
		return nil, nil, ErrSessionBusy
	}
	var once sync.Once
	return s.driver, func() { once.Do(s.mu.Unlock) }, nil
}

// Driver returns the driver without taking ownership, for read-only probes
func (s *Session) Driver() Driver {
	return s.driver
}
