package booking

import "time"

// Window is the calendar footprint of a booking or an availability query.
// Stays also carry their dates.
type Window struct {
	StartAt  time.Time
	EndAt    time.Time
	CheckIn  *time.Time
	CheckOut *time.Time
}

// HasDates reports whether the window carries stay dates
func (w Window) HasDates() bool {
	return w.CheckIn != nil && w.CheckOut != nil
}

// Overlaps reports whether half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Conflicts reports whether w and other claim the same time. Two stays are
// compared by date, anything else by timestamp.
func (w Window) Conflicts(other Window) bool {
	if w.HasDates() && other.HasDates() {
		return Overlaps(*w.CheckIn, *w.CheckOut, *other.CheckIn, *other.CheckOut)
	}
	return Overlaps(w.StartAt, w.EndAt, other.StartAt, other.EndAt)
}

// firstConflict returns the earliest candidate whose window conflicts with w
func firstConflict(w Window, candidates []*Booking) *Booking {
	for _, b := range candidates {
		if w.Conflicts(b.Window()) {
			return b
		}
	}
	return nil
}
