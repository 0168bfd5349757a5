// Package stats collects timing measurements and renders summary lines.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Collector accumulates the samples of one measurement series.
type Collector struct {
	values []float64
}

func NewCollector() *Collector {
	return &Collector{}
}

// Append records one measurement.
func (c *Collector) Append(v float64) {
	c.values = append(c.values, v)
}

// Len returns the number of recorded measurements.
func (c *Collector) Len() int {
	return len(c.values)
}

// Summary renders the series as "<legend>: <min>-<max><unit> avg
// <mean><unit> stddev <stddev><unit>". The standard deviation is the
// population deviation over all recorded samples. Summary must not be
// called on an empty collector.
func (c *Collector) Summary(legend, unit string) string {
	mean := stat.Mean(c.values, nil)
	stddev := stat.PopStdDev(c.values, nil)

	return fmt.Sprintf("%s: %.0f-%.0f%s avg %.2f%s stddev %.2f%s",
		legend, floats.Min(c.values), floats.Max(c.values), unit, mean, unit, stddev, unit)
}
