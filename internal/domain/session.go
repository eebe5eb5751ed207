package domain

import "time"

// Session is one closed interval of logged work. Sessions are only produced
// by stopping a running timer.
type Session struct {
	Start time.Time
	End   time.Time
}

// NewSession closes an interval. An end before start (clock skew) collapses
// to an empty session so elapsed time is never negative.
func NewSession(start, end time.Time) Session {
	if end.Before(start) {
		end = start
	}
	return Session{Start: start, End: end}
}

// Duration returns the elapsed time of the session.
func (s Session) Duration() time.Duration {
	if s.End.Before(s.Start) {
		return 0
	}
	return s.End.Sub(s.Start)
}
