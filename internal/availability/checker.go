package availability

import (
	"errors"
	"time"

	"console-login-harness/internal/models"
	"console-login-harness/internal/ui"
	"console-login-harness/internal/waiter"
)

type Checker struct {
	driver         ui.Driver
	waiter         *waiter.Waiter
	titleLocator   string
	settleDelay    time.Duration
	defaultTimeout time.Duration
	pollInterval   time.Duration
}

// NewChecker creates a Checker polling the element at titleLocator with the timings from cfg
func NewChecker(driver ui.Driver, w *waiter.Waiter, titleLocator string, cfg models.TimeoutsConfig) *Checker {
	return &Checker{
		driver:         driver,
		waiter:         w,
		titleLocator:   titleLocator,
		settleDelay:    cfg.SettleDelay,
		defaultTimeout: cfg.Availability,
		pollInterval:   cfg.PollInterval,
	}
}

// IsConsoleAvailable reports whether the console title reads exactly expectedTitle within timeout
func (c *Checker) IsConsoleAvailable(expectedTitle string, timeout time.Duration) (bool, error) {
	verdict, err := c.Check(expectedTitle, timeout)
	return verdict.Available, err
}

// Check waits the settle delay, then polls until the title element exists and its text equals
// expectedTitle. The comparison is exact: case and surrounding whitespace matter.
// A zero timeout selects the configured default.
func (c *Checker) Check(expectedTitle string, timeout time.Duration) (models.AvailabilityVerdict, error) {
	if timeout <= 0 {
		timeout = c.defaultTimeout
	}

	clock := c.waiter.Clock()

	// The title node is attached before its text is rendered
	clock.Sleep(c.settleDelay)

	start := clock.Now()
	title := c.driver.Element(c.titleLocator)
	available, err := c.waiter.WaitUntil(func() (bool, error) {
		exists, err := title.Exists(0)
		if err != nil || !exists {
			return false, err
		}
		text, err := title.Text()
		if errors.Is(err, ui.ErrElementNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return text == expectedTitle, nil
	}, timeout, c.pollInterval)

	return models.AvailabilityVerdict{
		Available:          available,
		ElapsedPollSeconds: clock.Now().Sub(start).Seconds(),
	}, err
}
