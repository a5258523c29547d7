package booking

import (
	"sync"
	"sync/atomic"
	"time"
)

const stayLength = 24 * time.Hour

// Form holds the date selection of one property details screen.
type Form struct {
	mu         sync.Mutex
	checkIn    time.Time
	checkOut   time.Time
	submitting atomic.Bool
}

// NewForm starts with check-in on now's calendar day and check-out one day
// later. All dates are held as UTC midnights.
func NewForm(now time.Time) *Form {
	d := truncateDay(now)
	return &Form{checkIn: d, checkOut: d.Add(stayLength)}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *Form) Dates() (checkIn, checkOut time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checkIn, f.checkOut
}

// SetDates sets both dates as typed, without the picker adjustments.
func (f *Form) SetDates(checkIn, checkOut time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkIn, f.checkOut = truncateDay(checkIn), truncateDay(checkOut)
}

// SelectCheckIn sets check-in. A check-in on or after the current check-out
// pushes check-out to the following day.
func (f *Form) SelectCheckIn(d time.Time) {
	d = truncateDay(d)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkIn = d
	if !d.Before(f.checkOut) {
		f.checkOut = d.Add(stayLength)
	}
}

// SelectCheckOut sets check-out only if d is strictly after check-in.
func (f *Form) SelectCheckOut(d time.Time) bool {
	d = truncateDay(d)
	f.mu.Lock()
	defer f.mu.Unlock()
	if !d.After(f.checkIn) {
		return false
	}
	f.checkOut = d
	return true
}

func (f *Form) Validate() error {
	checkIn, checkOut := f.Dates()
	if !checkOut.After(checkIn) {
		return ErrInvalidDates
	}
	return nil
}

// Submitting reports whether a submission is in flight; the submit control is
// disabled while it is.
func (f *Form) Submitting() bool {
	return f.submitting.Load()
}

func (f *Form) beginSubmit() bool {
	return f.submitting.CompareAndSwap(false, true)
}

func (f *Form) endSubmit() {
	f.submitting.Store(false)
}
