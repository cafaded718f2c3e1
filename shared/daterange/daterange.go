// Package daterange models a stay as a half-open interval of calendar dates.
package daterange

import (
	"errors"
	"fmt"
	"time"
)

const hoursPerDay = 24

var (
	ErrInvalidRange = errors.New("check-out must be after check-in")
)

// DateRange is the half-open interval [CheckIn, CheckOut).
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{CheckIn: Truncate(checkIn), CheckOut: Truncate(checkOut)}
	if !r.Valid() {
		return DateRange{}, ErrInvalidRange
	}

	return r, nil
}

// Parse reads both ends in YYYY-MM-DD form.
func Parse(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(time.DateOnly, checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid check-in date: %w", err)
	}

	out, err := time.Parse(time.DateOnly, checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid check-out date: %w", err)
	}

	return New(in, out)
}

// Truncate drops the clock part and normalises to UTC midnight.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r DateRange) Valid() bool {
	return r.CheckOut.After(r.CheckIn)
}

// Overlaps reports whether two stays share at least one night. Back-to-back stays do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// OverlapsByCases is the three-case form used by the package booking query:
// other starts on or before r and runs into it, other starts inside r and runs past its end,
// or other lies completely inside r. For valid ranges it agrees with Overlaps.
func (r DateRange) OverlapsByCases(other DateRange) bool {
	startsBefore := !other.CheckIn.After(r.CheckIn) && other.CheckOut.After(r.CheckIn)
	endsAfter := other.CheckIn.Before(r.CheckOut) && !other.CheckOut.Before(r.CheckOut)
	inside := !other.CheckIn.Before(r.CheckIn) && !other.CheckOut.After(r.CheckOut)

	return startsBefore || endsAfter || inside
}

// Nights is the billable length of the stay, never less than one.
func (r DateRange) Nights() int {
	days := int(Truncate(r.CheckOut).Sub(Truncate(r.CheckIn)).Hours() / hoursPerDay)

	return max(1, days)
}

// Contains reports whether day falls on a night of the stay.
func (r DateRange) Contains(day time.Time) bool {
	d := Truncate(day)

	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

// Extension returns the extra nights gained by moving the check-out to newCheckOut.
func (r DateRange) Extension(newCheckOut time.Time) (DateRange, error) {
	return New(r.CheckOut, newCheckOut)
}
