package dump

import (
	"io"
	"math"
	"strconv"
)

// sink wraps an io.Writer and remembers the first write error. Once an error
// occurs every later write is dropped.
type sink struct {
	w     io.Writer
	err   error
	lines int
}

func newSink(w io.Writer) *sink {
	return &sink{w: w}
}

func (s *sink) str(v string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, v)
}

// line writes the concatenation of parts followed by a newline.
func (s *sink) line(parts ...string) {
	for _, p := range parts {
		s.str(p)
	}
	s.str("\n")
	if s.err == nil {
		s.lines++
	}
}

func itoa[T ~int32](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

// float formats v with six significant digits in the shortest of plain or
// exponent notation, e.g. 2.5, 0.333333, 1e-09. Infinities print as inf and
// -inf.
func float(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
