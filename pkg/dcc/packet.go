package dcc

import (
	"fmt"
	"strings"

	"github.com/womat/debug"
)

// Packet is a framed DCC packet. The final byte is the checksum.
type Packet []byte

// Valid reports whether the checksum byte equals the exclusive-or of all
// preceding bytes. A mismatch is reported on the diagnostic stream; the
// caller still owns the packet and decides how to surface it.
func (p Packet) Valid() bool {
	if len(p) == 0 {
		return false
	}

	var check byte
	for _, b := range p[:len(p)-1] {
		check ^= b
	}

	if check != p[len(p)-1] {
		debug.WarningLog.Printf("checksum error, expected %08b got %08b", check, p[len(p)-1])
		return false
	}
	return true
}

// Payload returns the packet without its checksum byte.
func (p Packet) Payload() Packet {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// String renders the packet bytes as space separated 8-bit binary groups.
func (p Packet) String() string {
	var sb strings.Builder
	for i, b := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08b", b)
	}
	return sb.String()
}
