package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"console-login-harness/internal/logging"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const profilePattern = "rod-console-*"

var activeRodSessions atomic.Int32

// RodDriver drives a fresh Chromium profile through go-rod
type RodDriver struct {
	browser *rod.Browser
	page    *rod.Page
	tmpDir  string
}

var _ Driver = (*RodDriver)(nil)

// NewRodDriver launches a browser with a throwaway user data dir and opens url in it
func NewRodDriver(url string, headless bool) (*RodDriver, error) {
	tmpDir, err := os.MkdirTemp("", profilePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp user data dir: %w", err)
	}

	u, err := launcher.New().
		Headless(headless).
		NoSandbox(true).
		UserDataDir(tmpDir).
		Launch()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	d := &RodDriver{browser: browser, tmpDir: tmpDir}
	activeRodSessions.Add(1)

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to open %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("page %s did not load: %w", url, err)
	}
	d.page = page

	logging.Log.Infof("Opened %s with rod", url)
	return d, nil
}

// Element returns a handle resolved against whichever window is active when it is used
func (d *RodDriver) Element(locator string) Element {
	return &rodElement{driver: d, selector: locator}
}

// SwitchToWindow activates the first page whose title equals title
func (d *RodDriver) SwitchToWindow(title string) (bool, error) {
	pages, err := d.browser.Pages()
	if err != nil {
		return false, fmt.Errorf("failed to list windows: %w", err)
	}

	for _, p := range pages {
		info, err := p.Info()
		if err != nil {
			return false, fmt.Errorf("failed to read window info: %w", err)
		}
		if info.Title != title {
			continue
		}
		if _, err := p.Activate(); err != nil {
			return false, fmt.Errorf("failed to activate window %q: %w", title, err)
		}
		d.page = p
		return true, nil
	}

	return false, nil
}

// Screenshot captures the viewport of the active window as PNG
func (d *RodDriver) Screenshot() ([]byte, error) {
	if d.page == nil {
		return nil, errors.New("no active window")
	}
	return d.page.Screenshot(false, nil)
}

// Close shuts the browser down and removes its profile directory
func (d *RodDriver) Close() error {
	defer activeRodSessions.Add(-1)

	err := d.browser.Close()
	if rmErr := os.RemoveAll(d.tmpDir); rmErr != nil {
		logging.Log.WithError(rmErr).Warn("failed to remove temp user data dir")
	}
	return err
}

type rodElement struct {
	driver   *RodDriver
	selector string
	el       *rod.Element
}

func (e *rodElement) Exists(timeout time.Duration) (bool, error) {
	e.el = nil
	page := e.driver.page

	if timeout <= 0 {
		has, el, err := page.Has(e.selector)
		if err != nil {
			return false, err
		}
		if has {
			e.el = el
		}
		return has, nil
	}

	el, err := page.Timeout(timeout).Element(e.selector)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return false, nil
		}
		return false, err
	}
	e.el = el.CancelTimeout()
	return true, nil
}

func (e *rodElement) resolve() (*rod.Element, error) {
	if e.el != nil {
		return e.el, nil
	}
	has, el, err := e.driver.page.Has(e.selector)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, e.selector)
	}
	e.el = el
	return el, nil
}

func (e *rodElement) boolProperty(name string) (bool, error) {
	el, err := e.resolve()
	if err != nil {
		return false, err
	}
	prop, err := el.Property(name)
	if err != nil {
		return false, err
	}
	return prop.Bool(), nil
}

func (e *rodElement) IsEnabled() (bool, error) {
	disabled, err := e.boolProperty("disabled")
	return !disabled, err
}

func (e *rodElement) IsChecked() (bool, error) {
	return e.boolProperty("checked")
}

func (e *rodElement) ClearText() error {
	el, err := e.resolve()
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input("")
}

func (e *rodElement) SetText(text string) error {
	el, err := e.resolve()
	if err != nil {
		return err
	}
	return el.Input(text)
}

func (e *rodElement) Click() error {
	el, err := e.resolve()
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Check() error {
	checked, err := e.IsChecked()
	if err != nil || checked {
		return err
	}
	return e.Click()
}

func (e *rodElement) Text() (string, error) {
	el, err := e.resolve()
	if err != nil {
		return "", err
	}
	return el.Text()
}

// StartCleanup starts a background goroutine that cleans up old Rod temp directories
func StartCleanup() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			CleanupProfiles()
		}
	}()
}

// CleanupProfiles removes the profile directories left behind by earlier runs unless a driver is open
func CleanupProfiles() {
	if activeRodSessions.Load() > 0 {
		logging.Log.Info("Skipping /tmp cleanup: active Rod sessions detected")
		return
	}

	pattern := filepath.Join(os.TempDir(), profilePattern)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		logging.Log.WithError(err).Warn("Failed to glob temp directories")
		return
	}

	for _, dir := range matches {
		if err := os.RemoveAll(dir); err != nil {
			logging.Log.WithError(err).Warnf("Failed to remove temp dir: %s", dir)
		} else {
			logging.Log.Infof("Cleaned up temp dir: %s", dir)
		}
	}
}

// GetActiveSessionCount returns the current number of active Rod sessions (for testing)
func GetActiveSessionCount() int32 {
	return activeRodSessions.Load()
}
