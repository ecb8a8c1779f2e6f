package schedule

import "errors"

var (
	ErrInvalidOperatingHours = errors.New("invalid operating hours")
)

// OperatingHours is the daily bookable window of a location. Fatal to get
// wrong, so Validate runs at startup when reference data is loaded.
type OperatingHours struct {
	open        Slot
	close       Slot
	intervalMin int
}

func NewOperatingHours(open, close Slot, intervalMin int) (OperatingHours, error) {
	if intervalMin <= 0 {
		return OperatingHours{}, ErrInvalidOperatingHours
	}
	if !open.Before(close) {
		return OperatingHours{}, ErrInvalidOperatingHours
	}
	if (close.Minutes()-open.Minutes())%intervalMin != 0 {
		return OperatingHours{}, ErrInvalidOperatingHours
	}
	return OperatingHours{open: open, close: close, intervalMin: intervalMin}, nil
}

func (h OperatingHours) Open() Slot {
	return h.open
}

func (h OperatingHours) Close() Slot {
	return h.close
}

func (h OperatingHours) IntervalMin() int {
	return h.intervalMin
}

// Slots generates the ordered slot sequence spanning [open, close).
// Deterministic and finite; this is the single slot source for the whole
// system (listing, blocking grid, reservation, commit).
func (h OperatingHours) Slots() []Slot {
	n := (h.close.Minutes() - h.open.Minutes()) / h.intervalMin
	out := make([]Slot, 0, n)
	for s := h.open; s.Before(h.close); s = s.Add(h.intervalMin) {
		out = append(out, s)
	}
	return out
}

// Contains reports whether the whole interval fits inside the window.
func (h OperatingHours) Contains(iv Interval) bool {
	return !iv.Start().Before(h.open) && !h.close.Before(iv.End())
}
