package dcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dccdump/pkg/signal"
	"dccdump/pkg/stats"
)

// pairSlice yields duration pairs from a slice.
type pairSlice struct {
	pairs []signal.Pair
	pos   int
}

func (s *pairSlice) Next() (signal.Pair, bool) {
	if s.pos >= len(s.pairs) {
		return signal.Pair{}, false
	}
	s.pos++
	return s.pairs[s.pos-1], true
}

func classify(timebase float64, pairs ...signal.Pair) []Bit {
	c := NewClassifier(&pairSlice{pairs: pairs}, timebase, nil, nil)

	var bits []Bit
	for {
		bit, ok := c.Next()
		if !ok {
			return bits
		}
		bits = append(bits, bit)
	}
}

func TestClassifier(t *testing.T) {
	t.Run("one microsecond per sample", func(t *testing.T) {
		// 58us/58us is a one, 100us/100us a zero and 30us/30us neither
		bits := classify(1,
			signal.Pair{High: 58, Low: 58},
			signal.Pair{High: 100, Low: 100},
			signal.Pair{High: 30, Low: 30},
		)
		assert.Equal(t, []Bit{One, Zero, Unknown}, bits)
	})

	t.Run("one window bounds", func(t *testing.T) {
		// the window is [52, 65] samples at 1us per sample
		assert.Equal(t, []Bit{One}, classify(1, signal.Pair{High: 52, Low: 52}))
		assert.Equal(t, []Bit{One}, classify(1, signal.Pair{High: 65, Low: 65}))
		assert.Equal(t, []Bit{Unknown}, classify(1, signal.Pair{High: 51, Low: 51}))
	})

	t.Run("mismatched pair is still a one", func(t *testing.T) {
		assert.Equal(t, []Bit{One}, classify(1, signal.Pair{High: 58, Low: 100}))
	})

	t.Run("default timebase", func(t *testing.T) {
		// 20us per sample: one window [2, 4] samples, zero needs 5 samples
		bits := classify(20,
			signal.Pair{High: 3, Low: 3},
			signal.Pair{High: 5, Low: 5},
			signal.Pair{High: 1, Low: 1},
		)
		assert.Equal(t, []Bit{One, Zero, Unknown}, bits)
	})

	t.Run("zero needs both halves long", func(t *testing.T) {
		assert.Equal(t, []Bit{Unknown}, classify(1, signal.Pair{High: 100, Low: 50}))
	})

	t.Run("records accepted high durations", func(t *testing.T) {
		ones := stats.NewCollector()
		zeros := stats.NewCollector()

		c := NewClassifier(&pairSlice{pairs: []signal.Pair{
			{High: 3, Low: 3},
			{High: 5, Low: 5},
			{High: 1, Low: 1},
		}}, 20, ones, zeros)
		for {
			if _, ok := c.Next(); !ok {
				break
			}
		}

		require.Equal(t, 1, ones.Len())
		require.Equal(t, 1, zeros.Len())
		assert.Equal(t, "one bit: 60-60us avg 60.00us stddev 0.00us", ones.Summary("one bit", "us"))
		assert.Equal(t, "zero bit: 100-100us avg 100.00us stddev 0.00us", zeros.Summary("zero bit", "us"))
	})
}
