// Package app wires the decode pipeline together.
package app

import (
	"fmt"
	"io"
	"strings"

	"dccdump/pkg/app/config"
	"dccdump/pkg/dcc"
	"dccdump/pkg/dsbuf"
	"dccdump/pkg/signal"
	"dccdump/pkg/stats"

	"github.com/womat/debug"
)

// App is the main application struct.
// App is where the decode pipeline is wired up.
type App struct {
	// config is the application configuration
	config *config.Config

	// buf is the capture file reader
	buf *dsbuf.Reader

	// out receives the primary output; diagnostics go to the debug stream
	out io.Writer

	// timing measurement series for the trailing summary
	ones      *stats.Collector
	zeros     *stats.Collector
	preambles *stats.Collector
}

// New opens the buffer file and initializes the main app structure.
// An unopenable buffer file is the only fatal error of the program.
func New(cfg *config.Config, out io.Writer) (*App, error) {
	buf, err := dsbuf.Open(cfg.Filename, cfg.SelectedChannel)
	if err != nil {
		debug.ErrorLog.Printf("can't open buffer file %q: %v", cfg.Filename, err)
		return nil, err
	}

	return &App{
		config:    cfg,
		buf:       buf,
		out:       out,
		ones:      stats.NewCollector(),
		zeros:     stats.NewCollector(),
		preambles: stats.NewCollector(),
	}, nil
}

// Run executes the configured output mode over the capture.
func (app *App) Run() error {
	switch app.config.Mode {
	case config.OutputSamples:
		app.dumpSamples()
	case config.OutputBits:
		app.dumpBits()
	default:
		app.decode()
	}
	return nil
}

// Close closes the buffer file.
func (app *App) Close() error {
	return app.buf.Close()
}

// source returns the sample source, smoothed when the filter is enabled.
func (app *App) source() signal.SampleSource {
	if app.config.Filter {
		return signal.NewFilter(app.buf)
	}
	return app.buf
}

// bits assembles the sample-to-bit part of the pipeline.
func (app *App) bits() dcc.BitSource {
	runs := signal.NewEdgeExtractor(app.source())
	pairs := signal.NewPairer(runs)
	return dcc.NewClassifier(pairs, app.config.SampleDuration, app.ones, app.zeros)
}

// dumpSamples prints one sample per line.
func (app *App) dumpSamples() {
	src := app.source()
	for {
		sample, ok := src.Next()
		if !ok {
			return
		}
		fmt.Fprintln(app.out, sample)
	}
}

// dumpBits prints the classified bit stream as a single line of 0, 1 and
// ? characters.
func (app *App) dumpBits() {
	bits := app.bits()

	var sb strings.Builder
	for {
		bit, ok := bits.Next()
		if !ok {
			break
		}
		switch bit {
		case dcc.One:
			sb.WriteByte('1')
		case dcc.Zero:
			sb.WriteByte('0')
		default:
			sb.WriteByte('?')
		}
	}

	fmt.Fprintln(app.out, sb.String())
}

// decode prints one line per decoded instruction, an ERR line for every
// checksum failure and a raw binary dump for unrecognized packets.
func (app *App) decode() {
	decoder := dcc.NewDecoder(app.bits(), app.preambles)

	for {
		packet, ok := decoder.Next()
		if !ok {
			break
		}

		if !packet.Valid() {
			fmt.Fprintln(app.out, "ERR "+packet.String())
			continue
		}

		commands, err := dcc.Interpret(packet.Payload())
		for _, command := range commands {
			fmt.Fprintln(app.out, command)
		}
		if err != nil {
			fmt.Fprintln(app.out, packet.Payload().String())
		}
	}

	if app.config.Stats {
		app.printStats()
	}
}

// printStats prints the timing summary after a separating blank line.
// Series without measurements are skipped.
func (app *App) printStats() {
	fmt.Fprintln(app.out)

	for _, s := range []struct {
		collector    *stats.Collector
		legend, unit string
	}{
		{app.ones, "one bit", "us"},
		{app.zeros, "zero bit", "us"},
		{app.preambles, "preamble", "b"},
	} {
		if s.collector.Len() == 0 {
			debug.DebugLog.Printf("no %s measurements", s.legend)
			continue
		}
		fmt.Fprintln(app.out, s.collector.Summary(s.legend, s.unit))
	}
}
