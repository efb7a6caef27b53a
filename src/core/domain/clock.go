package domain

import "time"

// Clock supplies the reference time used by date invariants.
// Production code uses SystemClock; tests substitute a fixed clock so that
// age and employment-date checks stay deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// SystemClock returns a Clock backed by time.Now in UTC.
func SystemClock() Clock {
	return systemClock{}
}
