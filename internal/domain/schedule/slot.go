package schedule

import (
	"errors"
	"fmt"
	"time"
)

// SlotIntervalMin is the scheduling granularity. Every slot, service duration
// and operating window is expressed in multiples of it.
const SlotIntervalMin = 15

var (
	ErrInvalidSlot     = errors.New("invalid slot")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Slot is a time-of-day value at fixed granularity, stored as minutes since
// midnight. It is meaningful only together with a (location, date) scope.
type Slot struct {
	min int
}

func NewSlot(minutesSinceMidnight int) (Slot, error) {
	if minutesSinceMidnight < 0 || minutesSinceMidnight >= 24*60 {
		return Slot{}, ErrInvalidSlot
	}
	if minutesSinceMidnight%SlotIntervalMin != 0 {
		return Slot{}, ErrInvalidSlot
	}
	return Slot{min: minutesSinceMidnight}, nil
}

// ParseSlot parses the wire format "HH:MM" used by the mobile clients.
func ParseSlot(s string) (Slot, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Slot{}, ErrInvalidSlot
	}
	return NewSlot(t.Hour()*60 + t.Minute())
}

func (s Slot) Minutes() int {
	return s.min
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.min/60, s.min%60)
}

func (s Slot) Add(minutes int) Slot {
	return Slot{min: s.min + minutes}
}

func (s Slot) Before(other Slot) bool {
	return s.min < other.min
}

// Duration is a service length in minutes, always a positive multiple of the
// slot interval.
type Duration struct {
	min int
}

func NewDuration(minutes int) (Duration, error) {
	if minutes <= 0 || minutes%SlotIntervalMin != 0 {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{min: minutes}, nil
}

func (d Duration) Minutes() int {
	return d.min
}

// SubSlots returns how many interval-sized slots the duration spans.
func (d Duration) SubSlots() int {
	return d.min / SlotIntervalMin
}

// Interval is the half-open range [start, start+duration) a booking occupies.
type Interval struct {
	start    Slot
	duration Duration
}

func NewInterval(start Slot, duration Duration) Interval {
	return Interval{start: start, duration: duration}
}

func (iv Interval) Start() Slot {
	return iv.start
}

func (iv Interval) End() Slot {
	return iv.start.Add(iv.duration.Minutes())
}

func (iv Interval) Duration() Duration {
	return iv.duration
}

// Covers reports whether the sub-slot starting at s lies inside the interval.
func (iv Interval) Covers(s Slot) bool {
	return s.min >= iv.start.min && s.min < iv.End().min
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.min < other.End().min && other.start.min < iv.End().min
}

// SubSlotSeq returns the interval's sub-slots in order.
func (iv Interval) SubSlotSeq() []Slot {
	out := make([]Slot, 0, iv.duration.SubSlots())
	for s := iv.start; s.Before(iv.End()); s = s.Add(SlotIntervalMin) {
		out = append(out, s)
	}
	return out
}

// Date is a calendar day in the location's timezone, wire format "2006-01-02".
type Date struct {
	value string
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil || t.Format("2006-01-02") != s {
		return Date{}, ErrInvalidDate
	}
	return Date{value: s}, nil
}

func DateOf(t time.Time) Date {
	return Date{value: t.Format("2006-01-02")}
}

func (d Date) String() string {
	return d.value
}

func (d Date) IsZero() bool {
	return d.value == ""
}

func (d Date) Time() time.Time {
	t, _ := time.Parse("2006-01-02", d.value)
	return t
}
