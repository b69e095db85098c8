// Package ascii85 implements the Ascii85 Converter family: the classic
// Adobe/PostScript `<~ ~>`-framed form and the unframed btoa-style form.
//
// Both variants share one 4-byte/5-character base-85 block transform (a
// big-endian uint32 divided and remaindered by powers of 85, written
// through a contiguous '!'-offset alphabet); only the framing and the `z`/
// `y` shortcut configuration differ between them.
package ascii85

import (
	"github.com/simon-greatrix/textcodecs/converter"
	"github.com/simon-greatrix/textcodecs/textutil"
)

const (
	minDigit = '!' // 0x21, digit value 0
	maxDigit = 'u' // 0x75, digit value 84

	zShortcut = 'z'
	yShortcut = 'y'

	openFrame  = "<~"
	closeFrame = "~>"
)

var pow85 = [5]uint64{85 * 85 * 85 * 85, 85 * 85 * 85, 85 * 85, 85, 1}

var decodeTab = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalid
	}
	for d := byte(0); d < 85; d++ {
		t[minDigit+d] = d
	}
	return t
}()

const invalid = 0xFF

// codec is one Ascii85 variant: whether encode wraps output in <~ ~>
// framing, and whether the z/y full-zero/full-space shortcuts are enabled.
type codec struct {
	framed bool
	allowZ bool
	allowY bool
}

// Ascii85 is the framed variant with the z shortcut and no y shortcut.
var Ascii85 converter.Converter = codec{framed: true, allowZ: true, allowY: false}

// Ascii85BToA is the unframed btoa-style variant with both z and y
// shortcuts.
var Ascii85BToA converter.Converter = codec{framed: false, allowZ: true, allowY: true}

func encodeBlock(v uint32) [5]byte {
	var out [5]byte
	val := uint64(v)
	for i := 0; i < 5; i++ {
		r := val % 85
		val /= 85
		out[4-i] = minDigit + byte(r)
	}
	return out
}

// decodeBlock decodes 5 alphabet digits into a uint32, reporting overflow
// when the base-85 value exceeds 0xFFFFFFFF.
func decodeBlock(digits [5]byte) (uint32, bool) {
	var val uint64
	for i := 0; i < 5; i++ {
		val += uint64(digits[i]) * pow85[i]
	}
	if val > 0xFFFFFFFF {
		return 0, false
	}
	return uint32(val), true
}

func (c codec) EncodeChars(data []byte) []byte {
	if data == nil {
		return nil
	}
	if len(data) == 0 {
		if c.framed {
			return []byte(openFrame + closeFrame)
		}
		return []byte{}
	}

	out := make([]byte, 0, len(data)*5/4+8)
	if c.framed {
		out = append(out, openFrame...)
	}

	i := 0
	for ; i+4 <= len(data); i += 4 {
		v := uint32(data[i])<<24 | uint32(data[i+1])<<16 | uint32(data[i+2])<<8 | uint32(data[i+3])
		switch {
		case v == 0 && c.allowZ:
			out = append(out, zShortcut)
		case v == 0x20202020 && c.allowY:
			out = append(out, yShortcut)
		default:
			block := encodeBlock(v)
			out = append(out, block[:]...)
		}
	}

	if rem := len(data) - i; rem > 0 {
		var tail [4]byte
		copy(tail[:], data[i:])
		for j := rem; j < 4; j++ {
			tail[j] = 0x00
		}
		v := uint32(tail[0])<<24 | uint32(tail[1])<<16 | uint32(tail[2])<<8 | uint32(tail[3])
		block := encodeBlock(v)
		out = append(out, block[:rem+1]...)
	}

	if c.framed {
		out = append(out, closeFrame...)
	}
	return out
}

func (c codec) Encode(data []byte) string {
	return string(c.EncodeChars(data))
}

func framePayload(text []byte) []byte {
	start := 0
	if i := indexOf(text, openFrame); i >= 0 {
		start = i + len(openFrame)
	}
	end := len(text)
	if i := indexOf(text[start:], closeFrame); i >= 0 {
		end = start + i
	}
	return text[start:end]
}

func indexOf(haystack []byte, needle string) int {
	n := len(needle)
	for i := 0; i+n <= len(haystack); i++ {
		if string(haystack[i:i+n]) == needle {
			return i
		}
	}
	return -1
}

func (c codec) DecodeChars(text []byte) ([]byte, error) {
	if text == nil {
		return nil, nil
	}

	stripped := textutil.StripWhitespace(text)
	payload := framePayload(stripped)
	if len(payload) == 0 {
		return []byte{}, nil
	}

	out := make([]byte, 0, len(payload)*4/5+4)
	var buf [5]byte
	bufLen := 0

	flush := func(n int) error {
		digits := buf
		for i := n; i < 5; i++ {
			digits[i] = decodeTab[maxDigit]
		}
		v, ok := decodeBlock(digits)
		if !ok {
			return converter.NewBadCharacter(string(payload), -1, rune(minDigit+buf[0]))
		}
		var b [4]byte
		b[0] = byte(v >> 24)
		b[1] = byte(v >> 16)
		b[2] = byte(v >> 8)
		b[3] = byte(v)
		out = append(out, b[:n-1]...)
		return nil
	}

	for i := 0; i < len(payload); i++ {
		ch := payload[i]
		if bufLen == 0 {
			if ch == zShortcut && c.allowZ {
				out = append(out, 0, 0, 0, 0)
				continue
			}
			if ch == yShortcut && c.allowY {
				out = append(out, 0x20, 0x20, 0x20, 0x20)
				continue
			}
		}
		d := decodeTab[ch]
		if d == invalid {
			return nil, converter.NewBadCharacter(string(payload), i, rune(ch))
		}
		buf[bufLen] = d
		bufLen++
		if bufLen == 5 {
			v, ok := decodeBlock(buf)
			if !ok {
				return nil, converter.NewBadCharacter(string(payload[i-4:i+1]), 0, rune(payload[i-4]))
			}
			out = append(out, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
			bufLen = 0
		}
	}

	switch bufLen {
	case 0:
	case 1:
		return nil, converter.NewBadLength(string(payload))
	default:
		if err := flush(bufLen); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (c codec) Decode(text string) ([]byte, error) {
	return c.DecodeChars([]byte(text))
}

// Clean routes the input through a lenient decode (skipping non-alphabet
// characters, dropping overflowing 5-character blocks, padding a trailing
// partial block with 'u' digits exactly as DecodeChars does) and then
// re-encodes the result, which is always canonical and so trivially a
// fixed point of both Clean and decode-then-encode.
func (c codec) Clean(text []byte) []byte {
	stripped := textutil.StripWhitespace(text)
	payload := framePayload(stripped)

	decoded := make([]byte, 0, len(payload)*4/5+4)
	var buf [5]byte
	bufLen := 0

	for i := 0; i < len(payload); i++ {
		ch := payload[i]
		if bufLen == 0 {
			if ch == zShortcut && c.allowZ {
				decoded = append(decoded, 0, 0, 0, 0)
				continue
			}
			if ch == yShortcut && c.allowY {
				decoded = append(decoded, 0x20, 0x20, 0x20, 0x20)
				continue
			}
		}
		d := decodeTab[ch]
		if d == invalid {
			continue
		}
		buf[bufLen] = d
		bufLen++
		if bufLen == 5 {
			if v, ok := decodeBlock(buf); ok {
				decoded = append(decoded, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
			}
			bufLen = 0
		}
	}

	if bufLen >= 2 {
		digits := buf
		for i := bufLen; i < 5; i++ {
			digits[i] = decodeTab[maxDigit]
		}
		if v, ok := decodeBlock(digits); ok {
			var b [4]byte
			b[0] = byte(v >> 24)
			b[1] = byte(v >> 16)
			b[2] = byte(v >> 8)
			b[3] = byte(v)
			decoded = append(decoded, b[:bufLen-1]...)
		}
	}

	return c.EncodeChars(decoded)
}

func (c codec) CleanString(text string) string {
	return string(c.Clean([]byte(text)))
}
