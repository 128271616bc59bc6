package login

import (
	"fmt"
	"time"

	"console-login-harness/internal/models"
	"console-login-harness/internal/ui"
)

const (
	StepEnsureAdminCheckbox  = "ensureAdminCheckbox"
	StepEnterUsername        = "enterUsername"
	StepEnterPassword        = "enterPassword"
	StepClickSubmit          = "clickSubmit"
	StepSwitchToAdminConsole = "switchToAdminConsole"
	StepVerifyConsole        = "verifyConsoleAvailable"
	StepVerifyAdminConsole   = "verifyAdminConsoleAvailable"
	StepDismissTutorial      = "dismissTutorial"
)

// The admin checkbox is missing from some entry points, so its absence is tolerated
func ensureAdminCheckbox(cfg *models.Config) GuardedStep {
	return ElementStep{
		StepName: StepEnsureAdminCheckbox,
		Locator:  cfg.Locators.AdminCheckbox,
		Timeout:  cfg.Timeouts.OptionalElement,
		Presence: models.Optional,
		Action: func(el ui.Element) error {
			checked, err := el.IsChecked()
			if err != nil || checked {
				return err
			}
			return el.Check()
		},
	}
}

func enterText(name, locator, text string, timeout time.Duration) GuardedStep {
	return ElementStep{
		StepName: name,
		Locator:  locator,
		Timeout:  timeout,
		Action: func(el ui.Element) error {
			if err := el.ClearText(); err != nil {
				return err
			}
			return el.SetText(text)
		},
	}
}

func clickSubmit(cfg *models.Config) GuardedStep {
	return ElementStep{
		StepName:       StepClickSubmit,
		Locator:        cfg.Locators.Submit,
		Timeout:        cfg.Timeouts.Element,
		RequireEnabled: true,
		Action:         ui.Element.Click,
	}
}

// windowSwitchStep moves to the administrator console window once it had time to open
type windowSwitchStep struct {
	title  string
	settle time.Duration
}

func (s windowSwitchStep) Name() string { return StepSwitchToAdminConsole }

func (s windowSwitchStep) Execute(c *Context) (models.StepResult, error) {
	c.Clock.Sleep(s.settle)

	switched, err := c.Driver.SwitchToWindow(s.title)
	if err != nil {
		return models.StepResult{StepName: s.Name()}, fmt.Errorf("%s: %w", s.Name(), err)
	}
	if switched {
		c.Log.Infof("Switched to window %q", s.title)
		return models.Passed(s.Name()), nil
	}

	// The admin screen may have replaced the login page in the same window
	c.Log.Warnf("No window titled %q, probing the current one", s.title)
	available, err := c.Checker.IsConsoleAvailable(s.title, 0)
	if err != nil {
		return models.StepResult{StepName: s.Name()}, fmt.Errorf("%s: %w", s.Name(), err)
	}
	if available {
		return models.Passed(s.Name()), nil
	}

	return c.Fail(s.Name(), fmt.Sprintf("no window titled %q and admin screen not available", s.title)), nil
}

// availabilityStep turns a negative availability verdict into a step failure
type availabilityStep struct {
	name  string
	title string
}

func (s availabilityStep) Name() string { return s.name }

func (s availabilityStep) Execute(c *Context) (models.StepResult, error) {
	verdict, err := c.Checker.Check(s.title, 0)
	if err != nil {
		return models.StepResult{StepName: s.name}, fmt.Errorf("%s: %w", s.name, err)
	}
	if !verdict.Available {
		return c.Fail(s.name, fmt.Sprintf("title %q not shown after %.1fs", s.title, verdict.ElapsedPollSeconds)), nil
	}
	c.Log.Infof("Console %q available after %.1fs", s.title, verdict.ElapsedPollSeconds)
	return models.Passed(s.name), nil
}

// tutorialStep closes the tutorial overlay when it shows up. The overlay is optional,
// but once shown its close control must be present and enabled.
type tutorialStep struct {
	overlay      string
	close        string
	timeout      time.Duration
	closeTimeout time.Duration
}

func (s tutorialStep) Name() string { return StepDismissTutorial }

func (s tutorialStep) Execute(c *Context) (models.StepResult, error) {
	shown, err := c.Driver.Element(s.overlay).Exists(s.timeout)
	if err != nil {
		return models.StepResult{StepName: s.Name()}, fmt.Errorf("%s: %w", s.Name(), err)
	}
	if !shown {
		return models.Passed(s.Name()), nil
	}

	c.Log.Info("Tutorial overlay detected, closing")
	return ElementStep{
		StepName:       s.Name(),
		Locator:        s.close,
		Timeout:        s.closeTimeout,
		RequireEnabled: true,
		Action:         ui.Element.Click,
	}.Execute(c)
}
