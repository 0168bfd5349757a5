package dcc

import (
	"github.com/womat/debug"

	"dccdump/pkg/stats"
)

// preambleMin is the number of consecutive one bits that must precede a
// start bit.
const preambleMin = 10

// byteOutcome is the result of one byte-assembly attempt.
type byteOutcome int

const (
	// byteCompleted: eight data bits and a zero continuation bit, another
	// byte follows.
	byteCompleted byteOutcome = iota
	// packetDone: eight data bits and a one stop bit, the packet is
	// complete.
	packetDone
	// corrupted: an Unknown bit arrived inside the byte.
	corrupted
	// sourceExhausted: the bit stream ended mid byte.
	sourceExhausted
)

// Decoder frames packets out of the classified bit stream. It owns the
// carried framing state; one Decoder serves one decode pass.
type Decoder struct {
	src BitSource

	// preambleLen counts consecutive one bits towards the next preamble.
	// A packet's terminating one bit seeds the next count at 1.
	preambleLen int
	// garbageLogged limits the garbage-at-start diagnostic to one report
	// per decode pass.
	garbageLogged bool

	// optional measurement series of accepted preamble lengths (bits)
	preambles *stats.Collector
}

// NewDecoder wraps a bit source. The preambles collector may be nil.
func NewDecoder(src BitSource, preambles *stats.Collector) *Decoder {
	return &Decoder{src: src, preambles: preambles}
}

// Next returns the next fully framed packet and reports false once the bit
// stream is exhausted. Corrupt packets are discarded and framing reenters
// the preamble search; incomplete data at the end of the stream is
// reported and dropped.
func (d *Decoder) Next() (Packet, bool) {
	for {
		start, ok := d.seekStart()
		if !ok {
			if d.preambleLen > 0 {
				debug.WarningLog.Print("garbage at end")
			}
			return nil, false
		}

		if start == Unknown {
			// the would-be start bit is unreadable, whatever followed the
			// preamble is lost
			debug.WarningLog.Print("corrupt packet at start")
			continue
		}

		packet, outcome := d.readPacket()
		switch outcome {
		case packetDone:
			return packet, true
		case sourceExhausted:
			debug.WarningLog.Print("partial packet at end")
			return nil, false
		}
		// corrupted: reenter the preamble search
	}
}

// seekStart counts the preamble and returns the first bit following at
// least preambleMin consecutive ones. Shorter runs are reset and counted
// as garbage.
func (d *Decoder) seekStart() (Bit, bool) {
	for {
		bit, ok := d.src.Next()
		if !ok {
			return Unknown, false
		}

		switch {
		case bit == One:
			d.preambleLen++
		case d.preambleLen >= preambleMin:
			if d.preambles != nil {
				d.preambles.Append(float64(d.preambleLen))
			}
			return bit, true
		default:
			if !d.garbageLogged {
				debug.WarningLog.Print("garbage at start")
				d.garbageLogged = true
			}
			d.preambleLen = 0
		}
	}
}

// readPacket assembles bytes until the stop bit, corruption or the end of
// the stream.
func (d *Decoder) readPacket() (Packet, byteOutcome) {
	var packet Packet
	for {
		b, outcome := d.readByte()
		switch outcome {
		case byteCompleted:
			packet = append(packet, b)
		case packetDone:
			packet = append(packet, b)
			d.preambleLen = 1
			return packet, packetDone
		case corrupted:
			debug.WarningLog.Print("corrupt packet")
			d.preambleLen = 0
			return nil, corrupted
		case sourceExhausted:
			return nil, sourceExhausted
		}
	}
}

// readByte assembles eight data bits, most significant first, and consumes
// the continuation bit that follows them: zero means another byte follows,
// one ends the packet and counts as the first one bit of the next
// preamble.
func (d *Decoder) readByte() (byte, byteOutcome) {
	var b byte
	for n := 0; n < 9; n++ {
		bit, ok := d.src.Next()
		if !ok {
			return 0, sourceExhausted
		}
		if bit == Unknown {
			return 0, corrupted
		}

		if n < 8 {
			b = b<<1 | byte(bit)
			continue
		}

		if bit == One {
			return b, packetDone
		}
	}
	return b, byteCompleted
}
