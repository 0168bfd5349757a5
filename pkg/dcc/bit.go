// Package dcc decodes NMRA DCC packets from the bit timings recovered off
// the track signal.
package dcc

import (
	"github.com/womat/debug"

	"dccdump/pkg/signal"
	"dccdump/pkg/stats"
)

// Bit is one decoded track bit.
type Bit int

const (
	// Zero is a valid zero bit.
	Zero Bit = 0
	// One is a valid one bit.
	One Bit = 1
	// Unknown is a duration pair that matches neither encoding. The frame
	// decoder treats it as loss of synchronization, never as data.
	Unknown Bit = -1
)

// BitSource is the pull interface between the classifier and the frame
// decoder.
type BitSource interface {
	Next() (Bit, bool)
}

// maxTimebase is the coarsest sample duration (µs) that can still resolve
// a DCC one bit.
const maxTimebase = 40

// Classifier maps duration pairs to bits using the DCC timing windows
// scaled by the capture timebase.
type Classifier struct {
	src      signal.PairSource
	timebase float64

	// one bit window and high/low tolerance, in samples
	oneMin    int
	oneMax    int
	tolerance int

	// optional measurement series of the accepted high durations (µs)
	ones  *stats.Collector
	zeros *stats.Collector
}

// NewClassifier derives the timing windows from the sample duration in
// microseconds. The ones and zeros collectors may be nil.
func NewClassifier(src signal.PairSource, timebase float64, ones, zeros *stats.Collector) *Classifier {
	if timebase > maxTimebase {
		debug.WarningLog.Print("timebase will have insufficient resolution for DCC")
	}

	return &Classifier{
		src:       src,
		timebase:  timebase,
		oneMin:    int(52 / timebase),
		oneMax:    int(64/timebase) + 1,
		tolerance: int(6/timebase) + 2,
		ones:      ones,
		zeros:     zeros,
	}
}

// Next classifies the next duration pair. A one bit is matched on the high
// duration alone; a low duration outside the tolerance is reported but the
// bit is still accepted.
func (c *Classifier) Next() (Bit, bool) {
	pair, ok := c.src.Next()
	if !ok {
		return Unknown, false
	}

	switch {
	case pair.High >= c.oneMin && pair.High <= c.oneMax:
		if diff := pair.High - pair.Low; diff > c.tolerance || -diff > c.tolerance {
			debug.WarningLog.Printf("mismatched pair: %d, %d", pair.High, pair.Low)
		}
		if c.ones != nil {
			c.ones.Append(float64(pair.High) * c.timebase)
		}
		return One, true

	case float64(pair.High)*c.timebase >= 95 && float64(pair.Low)*c.timebase >= 95:
		if c.zeros != nil {
			c.zeros.Append(float64(pair.High) * c.timebase)
		}
		return Zero, true

	default:
		debug.WarningLog.Printf("unknown pair: %d, %d", pair.High, pair.Low)
		return Unknown, true
	}
}
