package login

import (
	"fmt"
	"time"

	"console-login-harness/internal/availability"
	"console-login-harness/internal/diagnostics"
	"console-login-harness/internal/models"
	"console-login-harness/internal/ui"
	"console-login-harness/internal/waiter"

	"github.com/sirupsen/logrus"
)

// Context is everything a step may touch during one sequence run
type Context struct {
	Driver  ui.Driver
	Sink    diagnostics.Sink
	Checker *availability.Checker
	Clock   waiter.Clock
	Log     *logrus.Entry
}

// GuardedStep is one precondition-checked unit of the login sequence.
// Unmet preconditions are reported in the StepResult; only driver faults are returned as errors.
type GuardedStep interface {
	Name() string
	Execute(c *Context) (models.StepResult, error)
}

// Fail records a failed precondition: one warning line and one screenshot tagged after the step
func (c *Context) Fail(step, msg string) models.StepResult {
	tag := diagnostics.NewTag(step)
	c.Sink.Warning(fmt.Sprintf("%s: %s", step, msg))
	if _, err := c.Sink.CaptureScreenshot(tag); err != nil {
		c.Log.WithError(err).Warnf("%s: screenshot %s not captured", step, tag)
	}
	return models.StepResult{
		StepName:          step,
		DiagnosticMessage: msg,
		ScreenshotTag:     tag,
	}
}

// ElementStep waits for an element, optionally requires it to be enabled, then acts on it
type ElementStep struct {
	StepName       string
	Locator        string
	Timeout        time.Duration
	Presence       models.Presence
	RequireEnabled bool
	// Action is skipped when nil
	Action func(el ui.Element) error
}

func (s ElementStep) Name() string { return s.StepName }

func (s ElementStep) Execute(c *Context) (models.StepResult, error) {
	el := c.Driver.Element(s.Locator)

	exists, err := el.Exists(s.Timeout)
	if err != nil {
		return models.StepResult{StepName: s.StepName}, fmt.Errorf("%s: %w", s.StepName, err)
	}
	if !exists {
		if s.Presence == models.Optional {
			c.Log.Debugf("%s: %s not present, nothing to do", s.StepName, s.Locator)
			return models.Passed(s.StepName), nil
		}
		return c.Fail(s.StepName, fmt.Sprintf("element %s not found within %s", s.Locator, s.Timeout)), nil
	}

	if s.RequireEnabled {
		enabled, err := el.IsEnabled()
		if err != nil {
			return models.StepResult{StepName: s.StepName}, fmt.Errorf("%s: %w", s.StepName, err)
		}
		if !enabled {
			return c.Fail(s.StepName, fmt.Sprintf("element %s is present but disabled", s.Locator)), nil
		}
	}

	if s.Action != nil {
		if err := s.Action(el); err != nil {
			return models.StepResult{StepName: s.StepName}, fmt.Errorf("%s: %w", s.StepName, err)
		}
	}

	return models.Passed(s.StepName), nil
}
