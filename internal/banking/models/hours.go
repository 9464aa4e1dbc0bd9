package models

import (
	"time"

	dErrors "minibank/pkg/domain-errors"
)

// BusinessHours is the fixed time-of-day window during which withdrawals are
// permitted. Hour bounds are inclusive at both edges: with Open=9 and
// Close=17, a withdrawal at 17:59 is allowed and one at 18:00 is rejected.
// Weekends are always outside the window.
type BusinessHours struct {
	Open  int
	Close int
}

// DefaultBusinessHours is Mon-Fri, hour values 9 through 17.
var DefaultBusinessHours = BusinessHours{Open: 9, Close: 17}

// Allows reports whether at falls inside the window. The timestamp is
// evaluated in its own location; callers pick the wall clock.
func (h BusinessHours) Allows(at time.Time) error {
	if wd := at.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return dErrors.New(dErrors.CodeValidation, "cannot perform operations outside business days")
	}
	if hour := at.Hour(); hour < h.Open || hour > h.Close {
		return dErrors.New(dErrors.CodeValidation, "cannot perform operations outside business hours")
	}
	return nil
}
