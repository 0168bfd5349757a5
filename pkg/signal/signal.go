// Package signal turns raw capture samples into timed polarity runs and
// high/low duration pairs.
//
// All stages are pull based: each Next call consumes just enough of the
// upstream sequence to produce one element and reports false once the
// source is exhausted.
package signal

// SampleSource yields one signed amplitude per capture tick.
type SampleSource interface {
	Next() (sample int, ok bool)
}

// RunSource yields polarity runs in temporal order.
type RunSource interface {
	Next() (Run, bool)
}

// PairSource yields high/low duration pairs in temporal order.
type PairSource interface {
	Next() (Pair, bool)
}

// Run is an unbroken stretch of samples sharing one polarity.
type Run struct {
	// Polarity is true while the signal is at or above zero.
	Polarity bool
	// Duration is the length of the run in samples, always >= 1.
	Duration int
}

// Pair couples a high run with the low run that immediately followed it.
// Durations are in samples.
type Pair struct {
	High int
	Low  int
}

// EdgeExtractor merges consecutive same-polarity samples into runs.
type EdgeExtractor struct {
	src SampleSource

	// current run, carried between pulls
	polarity bool
	duration int
	done     bool
}

func NewEdgeExtractor(src SampleSource) *EdgeExtractor {
	return &EdgeExtractor{src: src}
}

// Next returns the next completed run. Consecutive runs never share a
// polarity; the final run is flushed when the source ends, even if no
// edge terminates it.
func (e *EdgeExtractor) Next() (Run, bool) {
	if e.done {
		return Run{}, false
	}

	for {
		sample, ok := e.src.Next()
		if !ok {
			e.done = true
			if e.duration > 0 {
				return Run{Polarity: e.polarity, Duration: e.duration}, true
			}
			return Run{}, false
		}

		polarity := sample >= 0
		if e.duration == 0 {
			// first sample of the capture starts the first run
			e.polarity = polarity
		}

		if polarity != e.polarity {
			run := Run{Polarity: e.polarity, Duration: e.duration}
			e.polarity = polarity
			e.duration = 1
			return run, true
		}

		e.duration++
	}
}

// Pairer matches each high run with its immediately following low run.
type Pairer struct {
	src RunSource

	// pending high duration, waiting for its low run
	high    int
	pending bool
}

func NewPairer(src RunSource) *Pairer {
	return &Pairer{src: src}
}

// Next returns the next duration pair. A low run with no preceding high
// run is discarded, a high run with no following low run is dropped and
// only the most recent unpaired high survives.
func (p *Pairer) Next() (Pair, bool) {
	for {
		run, ok := p.src.Next()
		if !ok {
			return Pair{}, false
		}

		if run.Polarity {
			p.high = run.Duration
			p.pending = true
		} else if p.pending {
			p.pending = false
			return Pair{High: p.high, Low: run.Duration}, true
		}
	}
}
