package dsbuf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBuffer(t *testing.T, data []byte) string {
	t.Helper()

	name := filepath.Join(t.TempDir(), "DATA001.BUF")
	require.NoError(t, os.WriteFile(name, data, 0o644))
	return name
}

func readAll(t *testing.T, r *Reader) []int {
	t.Helper()

	var samples []int
	for {
		sample, ok := r.Next()
		if !ok {
			return samples
		}
		samples = append(samples, sample)
	}
}

func TestReader(t *testing.T) {
	// two complete frames plus a truncated third one
	data := []byte{0x80, 0x00, 0x81, 0x01, 0xFF}

	t.Run("channel A", func(t *testing.T) {
		r, err := Open(writeBuffer(t, data), ChannelA)
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, []int{0, 1}, readAll(t, r))
	})

	t.Run("channel B", func(t *testing.T) {
		r, err := Open(writeBuffer(t, data), ChannelB)
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, []int{-128, -127}, readAll(t, r))
	})

	t.Run("empty file", func(t *testing.T) {
		r, err := Open(writeBuffer(t, nil), ChannelA)
		require.NoError(t, err)
		defer r.Close()

		assert.Empty(t, readAll(t, r))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.BUF"), ChannelA)
		assert.Error(t, err)
	})
}

func TestParseChannel(t *testing.T) {
	for label, want := range map[string]Channel{
		"A": ChannelA,
		"a": ChannelA,
		"B": ChannelB,
		"b": ChannelB,
	} {
		ch, err := ParseChannel(label)
		require.NoError(t, err)
		assert.Equal(t, want, ch)
	}

	_, err := ParseChannel("C")
	assert.ErrorIs(t, err, ErrInvalidChannel)
}

func TestTimebase(t *testing.T) {
	us, err := Timebase("0.5ms")
	require.NoError(t, err)
	assert.Equal(t, 20.0, us)

	us, err = Timebase("50US")
	require.NoError(t, err)
	assert.Equal(t, 2.0, us)

	_, err = Timebase("3.0ms")
	assert.ErrorIs(t, err, ErrInvalidTimebase)
}
