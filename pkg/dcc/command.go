package dcc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPacket reports a structurally valid packet whose bytes match
// no recognized command layout. Accessory decoder addressing is among
// these: it is reported raw, never decoded.
var ErrUnknownPacket = errors.New("unknown packet layout")

// broadcastAddress addresses every decoder on the track.
const broadcastAddress = 0

// Command is one decoded instruction with its target decoder.
type Command struct {
	// Loco is the addressed decoder, 0 the broadcast address and -1 an
	// untargeted command (idle).
	Loco int
	// Text is the human readable instruction.
	Text string
}

func (c Command) String() string {
	switch {
	case c.Loco < 0:
		return c.Text
	case c.Loco == broadcastAddress:
		return "All: " + c.Text
	default:
		return fmt.Sprintf("Loco %d: %s", c.Loco, c.Text)
	}
}

// Interpret decodes the payload of a checksum-validated packet, the
// checksum byte already stripped. Commands decoded before an unrecognized
// instruction are returned alongside ErrUnknownPacket so the caller can
// still dump the raw packet.
func Interpret(payload Packet) ([]Command, error) {
	if len(payload) == 0 {
		return nil, ErrUnknownPacket
	}

	var loco int
	var instructions []byte

	switch first := payload[0]; {
	case first == 0x00:
		// broadcast
		loco = broadcastAddress
		instructions = payload[1:]

	case first == 0xFF:
		// idle, valid only as 0xFF 0x00
		if len(payload) == 2 && payload[1] == 0x00 {
			return []Command{{Loco: -1, Text: "Idle"}}, nil
		}
		return nil, ErrUnknownPacket

	case first>>6 == 0b11 && len(payload) > 1:
		// multi-function decoder with 14-bit address
		loco = int(first&0x3F) | int(payload[1])
		instructions = payload[2:]

	case first>>6 == 0b10:
		// accessory decoder with 9 or 11-bit address
		return nil, ErrUnknownPacket

	case first>>7 == 0:
		// multi-function decoder with 7-bit address
		loco = int(first)
		instructions = payload[1:]

	default:
		return nil, ErrUnknownPacket
	}

	var commands []Command
	for i := 0; i < len(instructions); {
		b := instructions[i]

		switch b >> 5 {
		case 0b001:
			// advanced operations, only 128 speed-step control is known
			if len(instructions)-i < 2 || b&0x1F != 0x1F {
				return commands, ErrUnknownPacket
			}
			commands = append(commands, Command{Loco: loco, Text: speed126(instructions[i+1])})
			i += 2

		case 0b010, 0b011:
			commands = append(commands, Command{Loco: loco, Text: speed28(b)})
			i++

		case 0b100:
			commands = append(commands, Command{Loco: loco, Text: functionGroup1(b)})
			i++

		case 0b101:
			commands = append(commands, Command{Loco: loco, Text: functionGroup2(b)})
			i++

		default:
			if loco == broadcastAddress && b == 0x00 {
				commands = append(commands, Command{Loco: loco, Text: "Reset All"})
				i++
				continue
			}
			return commands, ErrUnknownPacket
		}
	}

	return commands, nil
}

// speed126 decodes the second byte of a 128 speed-step instruction.
func speed126(b byte) string {
	spd := int(b & 0x7F)
	switch spd {
	case 0:
		return "Stop"
	case 1:
		return "E-Stop"
	}
	return fmt.Sprintf("%s %d/126", direction(b&0x80 != 0), spd-1)
}

// speed28 decodes a 28 speed-step instruction: bit 5 is the direction,
// bit 4 the speed LSB and bits 0-3 the speed MSB.
func speed28(b byte) string {
	spd := int(b&0x0F) << 1
	if b&0x10 != 0 {
		spd |= 1
	}

	switch spd {
	case 0:
		return "Stop"
	case 1:
		return "Stop (I)"
	case 2:
		return "E-Stop"
	case 3:
		return "E-Stop (I)"
	}
	return fmt.Sprintf("%s %d/28", direction(b&0x20 != 0), spd-3)
}

func direction(fwd bool) string {
	if fwd {
		return "fwd"
	}
	return "rev"
}

// functionGroup1 decodes the headlight and functions F1-F4.
func functionGroup1(b byte) string {
	var f []string
	if b&0x10 != 0 {
		f = append(f, "FL")
	}
	for i, name := range []string{"F1", "F2", "F3", "F4"} {
		if b&(byte(1)<<i) != 0 {
			f = append(f, name)
		}
	}
	return "FG1 " + strings.Join(f, " ")
}

// functionGroup2 decodes F5-F8 when bit 4 is set, F9-F12 when clear.
func functionGroup2(b byte) string {
	names := []string{"F9", "F10", "F11", "F12"}
	if b&0x10 != 0 {
		names = []string{"F5", "F6", "F7", "F8"}
	}

	var f []string
	for i, name := range names {
		if b&(byte(1)<<i) != 0 {
			f = append(f, name)
		}
	}
	return "FG2 " + strings.Join(f, " ")
}
