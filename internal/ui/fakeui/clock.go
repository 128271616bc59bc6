package fakeui

import "time"

// Clock is a waiter.Clock that only advances when slept on
type Clock struct {
	now    time.Time
	Slept  time.Duration
	Sleeps []time.Duration
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time { return c.now }

func (c *Clock) Sleep(d time.Duration) {
	c.Sleeps = append(c.Sleeps, d)
	c.Slept += d
	c.now = c.now.Add(d)
}
