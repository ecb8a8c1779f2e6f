package schedule

// BookedInterval is the capacity-relevant projection of a committed booking:
// which bay it occupies and over which sub-slots.
type BookedInterval struct {
	Interval Interval
	Bay      int
}

// Snapshot is a point-in-time read of everything availability depends on for
// one (location, date). It is assembled lock-free from the ledger; callers
// that mutate re-validate against a fresh snapshot inside the schedule lock.
type Snapshot struct {
	Hours      OperatingHours
	ActiveBays int
	Blocked    map[Slot]struct{}
	Booked     []BookedInterval
}

// coveringCount returns how many committed bookings cover the sub-slot.
func (s Snapshot) coveringCount(sub Slot) int {
	n := 0
	for _, b := range s.Booked {
		if b.Interval.Covers(sub) {
			n++
		}
	}
	return n
}

// CanFit is the availability predicate: every sub-slot of [start, start+d)
// must be inside operating hours, unblocked, and strictly below capacity.
// A 30-minute service therefore consumes its own slot and the following one,
// one bay-unit at a time.
func (s Snapshot) CanFit(start Slot, d Duration) bool {
	iv := NewInterval(start, d)
	if !s.Hours.Contains(iv) {
		return false
	}
	for _, sub := range iv.SubSlotSeq() {
		if _, blocked := s.Blocked[sub]; blocked {
			return false
		}
		if s.coveringCount(sub) >= s.ActiveBays {
			return false
		}
	}
	return true
}

// AvailableStartSlots returns, in slot order, every start slot the service
// duration still fits into. Recomputed on every call; availability is never
// cached across mutations.
func (s Snapshot) AvailableStartSlots(d Duration) []Slot {
	out := make([]Slot, 0)
	for _, start := range s.Hours.Slots() {
		if s.CanFit(start, d) {
			out = append(out, start)
		}
	}
	return out
}

// AssignBay picks the lowest bay index in 1..activeBays with no committed
// booking overlapping the interval. Reports false when every bay is taken,
// which callers surface as a lost race.
func (s Snapshot) AssignBay(iv Interval) (int, bool) {
	for bay := 1; bay <= s.ActiveBays; bay++ {
		free := true
		for _, b := range s.Booked {
			if b.Bay == bay && b.Interval.Overlaps(iv) {
				free = false
				break
			}
		}
		if free {
			return bay, true
		}
	}
	return 0, false
}

// PeakConcurrent is the maximum number of committed bookings simultaneously
// in progress at any sub-slot of the day. CapacityManager compares new bay
// counts against it before shrinking capacity.
func PeakConcurrent(hours OperatingHours, booked []BookedInterval) int {
	peak := 0
	for _, sub := range hours.Slots() {
		n := 0
		for _, b := range booked {
			if b.Interval.Covers(sub) {
				n++
			}
		}
		if n > peak {
			peak = n
		}
	}
	return peak
}
