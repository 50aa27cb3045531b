package gotest

import "time"

// EventClock tells the time according to the timestamps of the events that Feed has read, so
// that replaying a saved stream measures the original run rather than how long reading took.
//
// An EventClock is not safe for concurrent use; read it from the goroutine that calls Feed, or
// after Feed returns.
type EventClock struct {
	last time.Time
}

// Now returns the time of the latest timestamped event seen so far, or the current time if no
// event has carried a timestamp.
func (c *EventClock) Now() time.Time {
	if c.last.IsZero() {
		return time.Now()
	}
	return c.last
}

func (c *EventClock) observe(t time.Time) {
	if !t.IsZero() && t.After(c.last) {
		c.last = t
	}
}
