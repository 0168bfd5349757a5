package dcc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPacketValid(t *testing.T) {
	t.Run("matching checksum", func(t *testing.T) {
		assert.True(t, Packet{0x03, 0x65, 0x66}.Valid())
		assert.True(t, Packet{0x00, 0x00, 0x00}.Valid())
	})

	t.Run("any flipped data bit fails", func(t *testing.T) {
		good := Packet{0x03, 0x65, 0x66}
		for i := 0; i < 16; i++ {
			bad := append(Packet{}, good...)
			bad[i/8] ^= byte(1) << (i % 8)
			assert.False(t, bad.Valid(), "bit %d", i)
		}
	})

	t.Run("single byte packet", func(t *testing.T) {
		// the checksum of no data is zero
		assert.True(t, Packet{0x00}.Valid())
		assert.False(t, Packet{0x01}.Valid())
	})
}

func TestPacketPayload(t *testing.T) {
	assert.Equal(t, Packet{0x03, 0x65}, Packet{0x03, 0x65, 0x66}.Payload())
	assert.Empty(t, Packet{}.Payload())
}

func TestPacketString(t *testing.T) {
	assert.Equal(t, "00000011 01100101", Packet{0x03, 0x65}.String())
	assert.Equal(t, "11111111", Packet{0xFF}.String())
	assert.Equal(t, "", Packet{}.String())
}
