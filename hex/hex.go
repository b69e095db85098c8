// Package hex implements the lowercase-canonical hexadecimal Converter.
//
// A single init-time closure builds the encode and decode tables once, and
// the hot loops do plain table lookups rather than branching on digit
// ranges.
package hex

import (
	"github.com/simon-greatrix/textcodecs/converter"
	"github.com/simon-greatrix/textcodecs/textutil"
)

const invalid = 0xFF

var hiTab, loTab, decodeTab = func() ([256]byte, [256]byte, [256]byte) {
	const digits = "0123456789abcdef"

	var hi, lo [256]byte
	for b := 0; b < 256; b++ {
		hi[b] = digits[b>>4]
		lo[b] = digits[b&0xF]
	}

	var dec [256]byte
	for i := range dec {
		dec[i] = invalid
	}
	for i := 0; i < 10; i++ {
		dec['0'+i] = byte(i)
	}
	for i := 0; i < 6; i++ {
		dec['a'+i] = byte(10 + i)
		dec['A'+i] = byte(10 + i)
	}

	return hi, lo, dec
}()

// fullWidthFold maps full-width digit/letter codepoints (U+FF10-FF19,
// U+FF21-FF26, U+FF41-FF46) to their ASCII equivalents; Clean accepts
// these, Decode does not.
func fullWidthFold(r rune) (rune, bool) {
	switch {
	case r >= 0xFF10 && r <= 0xFF19: // full-width 0-9
		return r - 0xFF10 + '0', true
	case r >= 0xFF21 && r <= 0xFF26: // full-width A-F
		return r - 0xFF21 + 'A', true
	case r >= 0xFF41 && r <= 0xFF46: // full-width a-f
		return r - 0xFF41 + 'a', true
	default:
		return r, false
	}
}

type codec struct{}

// Codec is the shared Hex Converter instance.
var Codec converter.Converter = codec{}

func (codec) EncodeChars(data []byte) []byte {
	if data == nil {
		return nil
	}
	out := make([]byte, len(data)*2)
	for i, b := range data {
		out[2*i] = hiTab[b]
		out[2*i+1] = loTab[b]
	}
	return out
}

func (c codec) Encode(data []byte) string {
	return string(c.EncodeChars(data))
}

func (codec) DecodeChars(text []byte) ([]byte, error) {
	if text == nil {
		return nil, nil
	}

	stripped := textutil.StripWhitespace(text)
	if len(stripped)%2 != 0 {
		return nil, &converter.OddLengthError{Input: string(text)}
	}
	if len(stripped) == 0 {
		return []byte{}, nil
	}

	out := make([]byte, len(stripped)/2)
	for i := range out {
		hiC := stripped[2*i]
		loC := stripped[2*i+1]
		hi := decodeTab[hiC]
		lo := decodeTab[loC]
		if hi == invalid {
			return nil, converter.NewBadCharacter(string(stripped), 2*i, rune(hiC))
		}
		if lo == invalid {
			return nil, converter.NewBadCharacter(string(stripped), 2*i+1, rune(loC))
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func (c codec) Decode(text string) ([]byte, error) {
	return c.DecodeChars([]byte(text))
}

// Clean folds full-width digit/letter forms to ASCII, drops characters
// outside the hex alphabet, folds to lowercase, and pads an odd-length
// result with a trailing '0' so Decode always succeeds afterward.
func (codec) Clean(text []byte) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range string(text) {
		if folded, ok := fullWidthFold(r); ok {
			r = folded
		}
		if r > 0xFF || decodeTab[byte(r)] == invalid {
			continue
		}
		c := byte(r)
		if c >= 'A' && c <= 'F' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	if len(out)%2 != 0 {
		out = append(out, '0')
	}
	return out
}

func (c codec) CleanString(text string) string {
	return string(c.Clean([]byte(text)))
}
