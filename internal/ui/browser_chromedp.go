package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"console-login-harness/internal/logging"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// chromeActionTimeout bounds actions on an element that was not located beforehand
const chromeActionTimeout = 2 * time.Second

// ChromeDriver drives Chrome through chromedp
type ChromeDriver struct {
	rootCtx context.Context
	tabCtx  context.Context
	cancels []context.CancelFunc
}

var _ Driver = (*ChromeDriver)(nil)

// NewChromeDriver starts a Chrome allocator and navigates its first tab to url
func NewChromeDriver(url string, headless bool) (*ChromeDriver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.NoSandbox,
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	d := &ChromeDriver{
		rootCtx: browserCtx,
		tabCtx:  browserCtx,
		cancels: []context.CancelFunc{cancelAlloc, cancelBrowser},
	}

	if err := chromedp.Run(browserCtx, chromedp.Navigate(url)); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	logging.Log.Infof("Opened %s with chromedp", url)
	return d, nil
}

func (d *ChromeDriver) Element(locator string) Element {
	return &chromeElement{driver: d, selector: locator}
}

// SwitchToWindow attaches to the first page target whose title equals title and brings it to front
func (d *ChromeDriver) SwitchToWindow(title string) (bool, error) {
	targets, err := chromedp.Targets(d.rootCtx)
	if err != nil {
		return false, fmt.Errorf("failed to list windows: %w", err)
	}

	for _, t := range targets {
		if t.Type != "page" || t.Title != title {
			continue
		}
		ctx, cancel := chromedp.NewContext(d.rootCtx, chromedp.WithTargetID(t.TargetID))
		if err := chromedp.Run(ctx, page.BringToFront()); err != nil {
			cancel()
			return false, fmt.Errorf("failed to activate window %q: %w", title, err)
		}
		d.tabCtx = ctx
		d.cancels = append(d.cancels, cancel)
		return true, nil
	}

	return false, nil
}

func (d *ChromeDriver) Screenshot() ([]byte, error) {
	var buf []byte
	if err := chromedp.Run(d.tabCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close cancels every context in reverse order, which closes the browser
func (d *ChromeDriver) Close() error {
	for i := len(d.cancels) - 1; i >= 0; i-- {
		d.cancels[i]()
	}
	d.cancels = nil
	return nil
}

type chromeElement struct {
	driver   *ChromeDriver
	selector string
}

func (e *chromeElement) Exists(timeout time.Duration) (bool, error) {
	if timeout <= 0 {
		var nodes []*cdp.Node
		err := chromedp.Run(e.driver.tabCtx,
			chromedp.Nodes(e.selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
		)
		if err != nil {
			return false, err
		}
		return len(nodes) > 0, nil
	}

	ctx, cancel := context.WithTimeout(e.driver.tabCtx, timeout)
	defer cancel()
	err := chromedp.Run(ctx, chromedp.WaitReady(e.selector, chromedp.ByQuery))
	if errors.Is(err, context.DeadlineExceeded) {
		return false, nil
	}
	return err == nil, err
}

// run executes actions with a bounded wait for the element, so a missing element
// yields ErrElementNotFound instead of blocking forever
func (e *chromeElement) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(e.driver.tabCtx, chromeActionTimeout)
	defer cancel()
	err := chromedp.Run(ctx, actions...)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrElementNotFound, e.selector)
	}
	return err
}

// IsEnabled reads the disabled attribute rather than the JS property, which is
// undefined on elements such as <a> or <span> that cannot be disabled
func (e *chromeElement) IsEnabled() (bool, error) {
	var value string
	var disabled bool
	err := e.run(chromedp.AttributeValue(e.selector, "disabled", &value, &disabled, chromedp.ByQuery))
	return !disabled, err
}

func (e *chromeElement) IsChecked() (bool, error) {
	var checked bool
	err := e.run(chromedp.JavascriptAttribute(e.selector, "checked", &checked, chromedp.ByQuery))
	return checked, err
}

func (e *chromeElement) ClearText() error {
	return e.run(chromedp.SetValue(e.selector, "", chromedp.ByQuery))
}

func (e *chromeElement) SetText(text string) error {
	return e.run(chromedp.SendKeys(e.selector, text, chromedp.ByQuery))
}

func (e *chromeElement) Click() error {
	return e.run(chromedp.Click(e.selector, chromedp.ByQuery))
}

func (e *chromeElement) Check() error {
	checked, err := e.IsChecked()
	if err != nil || checked {
		return err
	}
	return e.Click()
}

func (e *chromeElement) Text() (string, error) {
	var text string
	err := e.run(chromedp.Text(e.selector, &text, chromedp.ByQuery))
	return text, err
}
