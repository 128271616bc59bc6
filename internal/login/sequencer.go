package login

import (
	"fmt"

	"console-login-harness/internal/availability"
	"console-login-harness/internal/diagnostics"
	"console-login-harness/internal/logging"
	"console-login-harness/internal/models"
	"console-login-harness/internal/ui"
	"console-login-harness/internal/waiter"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// State of the login state machine
type State int

const (
	StateInit State = iota
	StateCredentialsEntered
	StateSubmitted
	StatePostSubmitVerification
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateCredentialsEntered:
		return "CredentialsEntered"
	case StateSubmitted:
		return "Submitted"
	case StatePostSubmitVerification:
		return "PostSubmitVerification"
	case StateSuccess:
		return "Success"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further step may run
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateFailed
}

// SinkFactory builds the diagnostics sink of one run
type SinkFactory func(log *logrus.Entry, shooter diagnostics.Screenshotter) diagnostics.Sink

// RecorderSinks returns a SinkFactory writing screenshots into dir
func RecorderSinks(dir string) SinkFactory {
	return func(log *logrus.Entry, shooter diagnostics.Screenshotter) diagnostics.Sink {
		return diagnostics.NewRecorder(log, shooter, dir)
	}
}

type Sequencer struct {
	config *models.Config
	waiter *waiter.Waiter
	sinks  SinkFactory
}

// NewSequencer creates a Sequencer. It holds no per-run state and may be reused.
func NewSequencer(cfg *models.Config, w *waiter.Waiter, sinks SinkFactory) *Sequencer {
	return &Sequencer{
		config: cfg,
		waiter: w,
		sinks:  sinks,
	}
}

// Run establishes a console session on the driver owned by session.
// Steps run strictly in order and the first unmet precondition ends the run in Failed.
// A driver fault aborts the run and is returned as an error.
func (s *Sequencer) Run(session *ui.Session, creds models.Credentials, mode models.SessionMode) (models.SequenceOutcome, error) {
	traceID := uuid.NewString()

	driver, release, err := session.Acquire()
	if err != nil {
		return models.SequenceOutcome{TraceID: traceID}, err
	}
	defer release()

	locallog := logging.ForRun(traceID).WithField("mode", mode.String())
	c := &Context{
		Driver:  driver,
		Sink:    s.sinks(locallog, driver),
		Checker: availability.NewChecker(driver, s.waiter, s.config.Locators.ConsoleTitle, s.config.Timeouts),
		Clock:   s.waiter.Clock(),
		Log:     locallog,
	}

	locallog.Infof("Starting login as %s", creds.Username)

	state := StateInit
	var failure models.StepResult
	for !state.Terminal() {
		next, steps := s.plan(state, mode, creds)

		result, err := runSteps(c, steps)
		if err != nil {
			c.Sink.Failure(fmt.Sprintf("Login aborted in state %s: %v", state, err))
			return models.SequenceOutcome{TraceID: traceID}, err
		}

		if !result.Succeeded {
			failure = result
			next = StateFailed
		}
		c.Sink.Info(fmt.Sprintf("%s -> %s", state, next))
		state = next
	}

	// The failed step already emitted the diagnostic line and screenshot
	if state == StateFailed {
		return models.SequenceOutcome{
			FailedStep:    failure.StepName,
			ScreenshotTag: failure.ScreenshotTag,
			TraceID:       traceID,
		}, nil
	}

	locallog.Info("Login succeeded")
	return models.SequenceOutcome{Success: true, TraceID: traceID}, nil
}

// plan returns the steps leading out of state and the state reached when they all pass
func (s *Sequencer) plan(state State, mode models.SessionMode, creds models.Credentials) (State, []GuardedStep) {
	cfg := s.config

	switch state {
	case StateInit:
		var steps []GuardedStep
		if mode == models.AdminConsoleLogin {
			steps = append(steps, ensureAdminCheckbox(cfg))
		}
		steps = append(steps,
			enterText(StepEnterUsername, cfg.Locators.Username, creds.Username, cfg.Timeouts.Element),
			enterText(StepEnterPassword, cfg.Locators.Password, creds.Password, cfg.Timeouts.Element),
		)
		return StateCredentialsEntered, steps

	case StateCredentialsEntered:
		return StateSubmitted, []GuardedStep{clickSubmit(cfg)}

	case StateSubmitted:
		if mode == models.AdminConsoleLogin {
			return StatePostSubmitVerification, []GuardedStep{
				windowSwitchStep{title: cfg.Titles.AdminConsole, settle: cfg.Timeouts.AdminSettleDelay},
				availabilityStep{name: StepVerifyAdminConsole, title: cfg.Titles.AdminConsole},
			}
		}
		return StatePostSubmitVerification, []GuardedStep{
			availabilityStep{name: StepVerifyConsole, title: cfg.Titles.Console},
		}

	case StatePostSubmitVerification:
		return StateSuccess, []GuardedStep{tutorialStep{
			overlay:      cfg.Locators.Tutorial,
			close:        cfg.Locators.TutorialClose,
			timeout:      cfg.Timeouts.Tutorial,
			closeTimeout: cfg.Timeouts.OptionalElement,
		}}
	}

	return StateFailed, nil
}

// runSteps executes steps in order and stops at the first failed one
func runSteps(c *Context, steps []GuardedStep) (models.StepResult, error) {
	result := models.StepResult{Succeeded: true}
	for _, step := range steps {
		c.Log.Debugf("Running step %s", step.Name())

		var err error
		result, err = step.Execute(c)
		if err != nil {
			return result, err
		}
		if !result.Succeeded {
			return result, nil
		}
	}
	return result, nil
}
