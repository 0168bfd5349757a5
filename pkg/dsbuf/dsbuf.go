// Package dsbuf reads sample buffers captured with a DS202 pocket
// oscilloscope.
//
// A buffer file is a flat sequence of two byte frames, one byte per
// channel, each an unsigned amplitude. The selected channel's byte is
// converted to a signed sample by subtracting 128.
package dsbuf

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

var (
	ErrInvalidChannel  = errors.New("invalid channel")
	ErrInvalidTimebase = errors.New("invalid timebase")
)

// Channel selects which of the two capture channels to decode.
type Channel int

const (
	// ChannelA is the first capture channel.
	ChannelA Channel = iota
	// ChannelB is the second capture channel.
	ChannelB
)

// ParseChannel maps the configuration labels "A" and "B" to a Channel.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToUpper(s) {
	case "A":
		return ChannelA, nil
	case "B":
		return ChannelB, nil
	}
	return 0, ErrInvalidChannel
}

// timebases maps the DS202 timebase labels to microseconds per sample.
// Each timebase is one square on the display, the display has 10 squares
// and the device records 25 samples per square.
var timebases = map[string]float64{
	"2.0s":  80000,
	"1.0s":  40000,
	"0.5s":  20000,
	"0.2s":  8000,
	"0.1s":  4000,
	"50ms":  2000,
	"20ms":  800,
	"10ms":  400,
	"5.0ms": 200,
	"2.0ms": 80,
	"1.0ms": 40,
	"0.5ms": 20,
	"0.2ms": 8,
	"0.1ms": 4,
	"50us":  2,
	"20us":  0.8,
	"10us":  0.4,
	"5.0us": 0.2,
	"2.0us": 0.08,
	"1.0us": 0.04,
}

// Timebase returns the sample duration in microseconds for a DS202
// timebase label.
func Timebase(label string) (float64, error) {
	us, ok := timebases[strings.ToLower(label)]
	if !ok {
		return 0, ErrInvalidTimebase
	}
	return us, nil
}

// frameSize is the size of one capture frame: one byte per channel.
const frameSize = 2

// Reader yields the signed samples of one channel of a buffer file.
type Reader struct {
	file    *os.File
	r       *bufio.Reader
	channel Channel
}

// Open opens a buffer file for reading the given channel.
func Open(name string, channel Channel) (*Reader, error) {
	if channel != ChannelA && channel != ChannelB {
		return nil, ErrInvalidChannel
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	return &Reader{
		file:    file,
		r:       bufio.NewReader(file),
		channel: channel,
	}, nil
}

// Next returns the next sample of the selected channel. It reports false
// at the end of the buffer; a truncated final frame ends the sample
// sequence at the last complete frame.
func (r *Reader) Next() (int, bool) {
	var frame [frameSize]byte
	if _, err := io.ReadFull(r.r, frame[:]); err != nil {
		return 0, false
	}
	return int(frame[r.channel]) - 128, true
}

// Close closes the underlying buffer file.
func (r *Reader) Close() error {
	return r.file.Close()
}
