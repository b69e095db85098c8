package base128

import (
	"math/rand/v2"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabetHas128Entries(t *testing.T) {
	is := assert.New(t)
	seen := make(map[rune]bool, 128)
	for _, r := range alphabet {
		is.False(seen[r], "duplicate rune %q", r)
		seen[r] = true
		is.Greater(r, rune(0x20))
	}
	is.Len(seen, 128)
}

func TestSizeLaw(t *testing.T) {
	is := assert.New(t)

	for n := 1; n <= 21; n++ {
		data := make([]byte, n)
		enc := Codec.Encode(data)

		full, rem := n/7, n%7
		want := full * 8
		if rem != 0 {
			want += 1 + rem
		}
		is.Equal(want, utf8.RuneCountInString(enc), "n=%d", n)
		is.Equal(EncodedLength(n), utf8.RuneCountInString(enc), "n=%d", n)
	}
}

func TestRoundTrip(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	r := rand.New(rand.NewPCG(7, 8))
	for n := 0; n < 30; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(r.Uint32())
		}

		enc := Codec.Encode(data)
		dec, err := Codec.Decode(enc)
		req.NoError(err, "n=%d", n)
		is.Equal(data, dec, "n=%d", n)
	}
}

func TestCleanCanonical(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	data := []byte("hello, base128!")
	enc := Codec.Encode(data)

	is.Equal(enc, Codec.CleanString(enc))
	is.Equal(Codec.CleanString(enc), Codec.CleanString(Codec.CleanString(enc)))

	messy := " " + enc + "\t"
	cleaned := Codec.CleanString(messy)
	dec, err := Codec.Decode(cleaned)
	req.NoError(err)
	is.Equal(data, dec)
}

// Many alphabet entries beyond the ASCII range are multi-byte UTF-8
// sequences (Unicode currency symbols, non-Latin letters); this exercises
// encode/decode across the full digit range so a byte-truncation regression
// would show up as either invalid UTF-8 or a failed round trip.
func TestRoundTripFullAlphabet(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	// Pack the digit values 0..127 back to back as 7-bit groups, so the
	// encoding emits every alphabet entry once, in order.
	data := make([]byte, 0, 128*7/8+8)
	var acc uint32
	var bits uint
	for v := 0; v < 128; v++ {
		acc = acc<<7 | uint32(v)
		bits += 7
		for bits >= 8 {
			bits -= 8
			data = append(data, byte(acc>>bits))
		}
		acc &= (1 << bits) - 1
	}

	enc := Codec.Encode(data)
	is.True(utf8.ValidString(enc))

	dec, err := Codec.Decode(enc)
	req.NoError(err)
	is.Equal(data, dec)
}

func TestDecodeBadLength(t *testing.T) {
	is := assert.New(t)

	// Any single dangling character past a full 8-char block is invalid.
	enc := Codec.Encode(make([]byte, 7))
	_, err := Codec.Decode(enc + string(alphabet[0]))
	is.Error(err)
}
