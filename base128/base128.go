// Package base128 implements a dense 7-bits-per-character Converter whose
// 128-character alphabet is derived once at init time from Unicode
// category data, rather than hand listed.
//
// Encoding and decoding use a sliding 7-bit bit-accumulator rather than a
// fixed set of tail cases, since base128's block ratio (7 bytes <-> 8
// characters) isn't byte-aligned the way a 5-bit or 6-bit alphabet is.
package base128

import (
	"unicode"
	"unicode/utf8"

	"github.com/simon-greatrix/textcodecs/converter"
	"github.com/simon-greatrix/textcodecs/textutil"
)

// alphabet holds exactly 128 characters, selected by scanning codepoints
// above 0x20 for Unicode category Decimal-Digit (Nd), Lowercase-Letter
// (Ll), Uppercase-Letter (Lu), or Currency-Symbol (Sc), in codepoint order,
// until 128 are collected.
var alphabet, decodeTab = buildAlphabet()

func buildAlphabet() ([128]rune, map[rune]byte) {
	var tab [128]rune
	n := 0
	for r := rune(0x21); n < 128; r++ {
		if unicode.Is(unicode.Nd, r) || unicode.Is(unicode.Ll, r) ||
			unicode.Is(unicode.Lu, r) || unicode.Is(unicode.Sc, r) {
			tab[n] = r
			n++
		}
	}

	dec := make(map[rune]byte, 128)
	for i, r := range tab {
		dec[r] = byte(i)
	}
	return tab, dec
}

type codec struct{}

// Codec is the shared Base128 Converter instance.
var Codec converter.Converter = codec{}

// EncodedLength returns the number of characters needed to encode n bytes:
// 8*(n/7) when n is a multiple of 7, else 8*(n/7) + 1 + (n%7).
func EncodedLength(n int) int {
	full, rem := n/7, n%7
	if rem == 0 {
		return full * 8
	}
	return full*8 + 1 + rem
}

func (codec) EncodeChars(data []byte) []byte {
	if data == nil {
		return nil
	}
	if len(data) == 0 {
		return []byte{}
	}

	out := make([]byte, 0, EncodedLength(len(data))*utf8.UTFMax)

	var bitBuf uint32
	var bitCount uint
	for _, b := range data {
		bitBuf = bitBuf<<8 | uint32(b)
		bitCount += 8
		for bitCount >= 7 {
			bitCount -= 7
			v := (bitBuf >> bitCount) & 0x7F
			out = utf8.AppendRune(out, alphabet[v])
		}
		bitBuf &= (1 << bitCount) - 1
	}
	if bitCount > 0 {
		v := byte(bitBuf&((1<<bitCount)-1)) << (7 - bitCount)
		out = utf8.AppendRune(out, alphabet[v])
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
	if len(stripped) == 0 {
		return []byte{}, nil
	}

	var bitBuf uint32
	var bitCount uint
	out := make([]byte, 0, len(stripped)*7/8)

	var lastDigit rune
	i := 0
	for _, ch := range string(stripped) {
		v, ok := decodeTab[ch]
		if !ok {
			return nil, converter.NewBadCharacter(string(text), i, ch)
		}
		bitBuf = bitBuf<<7 | uint32(v)
		bitCount += 7
		if bitCount >= 8 {
			bitCount -= 8
			out = append(out, byte(bitBuf>>bitCount))
		}
		bitBuf &= (1 << bitCount) - 1
		lastDigit = ch
		i++
	}

	if bitCount >= 7 {
		return nil, converter.NewBadLength(string(text))
	}
	if bitCount > 0 && bitBuf != 0 {
		return nil, converter.NewTrailingBits(string(lastDigit))
	}

	return out, nil
}

func (c codec) Decode(text string) ([]byte, error) {
	return c.DecodeChars([]byte(text))
}

// Clean drops non-alphabet characters and, if the trailing character
// carries non-zero uncovered bits, clears them in place so the result
// decodes. A single dangling character past the last full block encodes
// no bits and is dropped outright rather than padded, since there is no
// zero-digit that would make it decodable.
func (codec) Clean(text []byte) []byte {
	stripped := textutil.StripWhitespace(text)

	kept := make([]rune, 0, len(stripped))
	for _, ch := range string(stripped) {
		if _, ok := decodeTab[ch]; ok {
			kept = append(kept, ch)
		}
	}

	if len(kept) == 0 {
		return []byte{}
	}

	if len(kept)%8 == 1 {
		// A single dangling character past a full block encodes nothing:
		// drop it rather than try to repair it, mirroring how the Base32
		// and Base64 families treat a structurally invalid remainder.
		kept = kept[:len(kept)-1]
	}
	if len(kept) == 0 {
		return []byte{}
	}

	leftover := (7 * len(kept)) % 8
	if leftover > 0 {
		last := decodeTab[kept[len(kept)-1]]
		mask := byte(1)<<uint(leftover) - 1
		if last&mask != 0 {
			kept[len(kept)-1] = alphabet[last&^mask]
		}
	}

	out := make([]byte, 0, len(kept)*utf8.UTFMax)
	for _, r := range kept {
		out = utf8.AppendRune(out, r)
	}
	return out
}

func (c codec) CleanString(text string) string {
	return string(c.Clean([]byte(text)))
}
