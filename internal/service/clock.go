package service

import "time"

// Clock supplies the current instant. Location decides which calendar day
// counts as today; nil means time.Local.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// SystemClock reads the wall clock and judges today in loc.
func SystemClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c Clock) today(now time.Time) time.Time {
	if c.Location == nil {
		return now.In(time.Local)
	}
	return now.In(c.Location)
}
