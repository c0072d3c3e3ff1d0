package timing

import (
	"math"
	"strconv"
)

// Time is an optional timing value (constraint, arrival, or required time).
// The zero value is unset.
type Time struct {
	value float64
	set   bool
}

// Some returns a set Time holding v.
// A NaN v yields an unset Time.
func Some(v float64) Time { return FromFloat(v) }

// None returns an unset Time.
func None() Time { return Time{} }

// FromFloat converts a raw engine value into a Time, treating NaN as unset.
func FromFloat(v float64) Time {
	if math.IsNaN(v) {
		return Time{}
	}
	return Time{value: v, set: true}
}

// FromPtr converts a nullable value into a Time. A nil pointer is unset.
func FromPtr(v *float64) Time {
	if v == nil {
		return Time{}
	}
	return FromFloat(*v)
}

// Valid reports whether t holds a value.
func (t Time) Valid() bool { return t.set }

// Value returns the held value and whether it is set.
func (t Time) Value() (float64, bool) { return t.value, t.set }

// Float returns the held value, or NaN when unset.
func (t Time) Float() float64 {
	if !t.set {
		return math.NaN()
	}
	return t.value
}

// Ptr returns a pointer to a copy of the held value, or nil when unset.
func (t Time) Ptr() *float64 {
	if !t.set {
		return nil
	}
	v := t.value
	return &v
}

func (t Time) String() string {
	if !t.set {
		return "unset"
	}
	return strconv.FormatFloat(t.value, 'g', -1, 64)
}
