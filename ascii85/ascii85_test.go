package ascii85

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeScenarios(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	is.Equal("<~z~>", Ascii85.Encode([]byte{0, 0, 0, 0}))
	is.Equal("<~~>", Ascii85.Encode([]byte{}))
	is.Equal("y", Ascii85BToA.Encode([]byte{0x20, 0x20, 0x20, 0x20}))

	got, err := Ascii85.Decode("<~z~>")
	req.NoError(err)
	is.Equal([]byte{0, 0, 0, 0}, got)
}

func TestZShortcutOnlyAtBoundary(t *testing.T) {
	is := assert.New(t)

	// four zero bytes followed by one more byte: the shortcut applies to
	// the first full block, the remainder is a genuine partial block.
	enc := Ascii85.Encode([]byte{0, 0, 0, 0, 1})
	is.Contains(enc, "z")
}

func TestRoundTrip(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	r := rand.New(rand.NewPCG(3, 4))
	for _, conv := range []struct {
		name string
		c    interface {
			Encode([]byte) string
			Decode(string) ([]byte, error)
		}
	}{
		{"ascii85", Ascii85},
		{"btoa", Ascii85BToA},
	} {
		for n := 0; n < 20; n++ {
			data := make([]byte, n)
			for i := range data {
				data[i] = byte(r.Uint32())
			}

			enc := conv.c.Encode(data)
			dec, err := conv.c.Decode(enc)
			req.NoError(err, "%s n=%d", conv.name, n)
			is.Equal(data, dec, "%s n=%d", conv.name, n)
		}
	}
}

func TestDecodeSingleCharTailInvalid(t *testing.T) {
	is := assert.New(t)

	_, err := Ascii85.Decode("<~!~>")
	is.Error(err)
}

func TestCleanCanonicalAndIdempotent(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	for _, conv := range []struct {
		name string
		c    interface {
			Encode([]byte) string
			Clean([]byte) []byte
			Decode(string) ([]byte, error)
		}
	}{
		{"ascii85", Ascii85},
		{"btoa", Ascii85BToA},
	} {
		data := []byte("four score and seven years ago")
		enc := conv.c.Encode(data)

		is.Equal([]byte(enc), conv.c.Clean([]byte(enc)), conv.name)
		is.Equal(conv.c.Clean([]byte(enc)), conv.c.Clean(conv.c.Clean([]byte(enc))), conv.name)

		// 0x01 and '~' fall outside the '!'-'u' alphabet range (unlike
		// most printable ASCII, which this alphabet actually covers), so
		// they are genuine noise for both the framed and unframed variant.
		messy := append([]byte(" \t"), []byte(enc)...)
		messy = append(messy, 0x01, '~')
		cleaned := conv.c.Clean(messy)
		dec, err := conv.c.Decode(string(cleaned))
		req.NoError(err, conv.name)
		is.Equal(data, dec, conv.name)
	}
}
