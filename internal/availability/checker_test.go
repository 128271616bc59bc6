package availability

import (
	"errors"
	"testing"
	"time"

	"console-login-harness/internal/models"
	"console-login-harness/internal/ui/fakeui"
	"console-login-harness/internal/waiter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const titleLocator = ".page-title"

var timeouts = models.TimeoutsConfig{
	Availability: 5 * time.Second,
	PollInterval: time.Second,
	SettleDelay:  time.Second,
}

func newChecker(driver *fakeui.Driver) (*Checker, *fakeui.Clock) {
	clock := fakeui.NewClock()
	return NewChecker(driver, waiter.New(clock), titleLocator, timeouts), clock
}

func TestIsConsoleAvailable_ExactMatch(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{name: "Exact title", text: "3PAR StoreServ", expected: true},
		{name: "Trailing space", text: "3PAR StoreServ ", expected: false},
		{name: "Case mismatch", text: "3par storeserv", expected: false},
		{name: "Partial title", text: "3PAR", expected: false},
		{name: "Empty title", text: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := fakeui.New().Set(titleLocator, &fakeui.Element{Present: true, Text: tt.text})
			checker, _ := newChecker(driver)

			available, err := checker.IsConsoleAvailable("3PAR StoreServ", 10*time.Second)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, available)
		})
	}
}

func TestCheck_SettleDelayBeforeFirstPoll(t *testing.T) {
	driver := fakeui.New().Set(titleLocator, &fakeui.Element{Present: true, Text: "3PAR StoreServ"})
	checker, clock := newChecker(driver)

	verdict, err := checker.Check("3PAR StoreServ", 0)
	require.NoError(t, err)
	assert.True(t, verdict.Available)
	assert.Equal(t, []time.Duration{time.Second}, clock.Sleeps)
	assert.Zero(t, verdict.ElapsedPollSeconds)
}

func TestCheck_TitleRendersLate(t *testing.T) {
	driver := fakeui.New().Set(titleLocator, &fakeui.Element{Present: true, Text: "3PAR StoreServ", AppearAfter: 2})
	checker, _ := newChecker(driver)

	verdict, err := checker.Check("3PAR StoreServ", 0)
	require.NoError(t, err)
	assert.True(t, verdict.Available)
	assert.Equal(t, 2.0, verdict.ElapsedPollSeconds)
}

func TestCheck_DefaultTimeout(t *testing.T) {
	driver := fakeui.New()
	checker, clock := newChecker(driver)

	verdict, err := checker.Check("3PAR StoreServ", 0)
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, 5.0, verdict.ElapsedPollSeconds)
	assert.Equal(t, 6*time.Second, clock.Slept)
}

func TestCheck_ExplicitTimeout(t *testing.T) {
	driver := fakeui.New()
	checker, _ := newChecker(driver)

	verdict, err := checker.Check("3PAR StoreServ", 3*time.Second)
	require.NoError(t, err)
	assert.False(t, verdict.Available)
	assert.Equal(t, 3.0, verdict.ElapsedPollSeconds)
}

func TestCheck_DriverFault(t *testing.T) {
	boom := errors.New("websocket closed")
	driver := fakeui.New().Set(titleLocator, &fakeui.Element{Present: true, Err: boom})
	checker, _ := newChecker(driver)

	available, err := checker.IsConsoleAvailable("3PAR StoreServ", 0)
	assert.False(t, available)
	assert.ErrorIs(t, err, boom)
}
