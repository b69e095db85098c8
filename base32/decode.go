package base32

import (
	"github.com/simon-greatrix/textcodecs/converter"
	"github.com/simon-greatrix/textcodecs/textutil"
)

// validDecodeRemainder marks which n%8 remainders are structurally valid
// base32 lengths: 0, 2, 4, 5, 7. 1, 3, 6 can never arise from encoding.
const validDecodeRemainder = uint8((1 << 0) | (1 << 2) | (1 << 4) | (1 << 5) | (1 << 7))

// decodedLen returns the decoded byte length for n stripped input
// characters, or -1 if n is not a legal Base32 length.
func decodedLen(n int) int {
	rem := n % 8
	if validDecodeRemainder&(1<<uint(rem)) == 0 {
		return -1
	}
	dl := (n / 8) * 5
	switch rem {
	case 2:
		dl += 1
	case 4:
		dl += 2
	case 5:
		dl += 3
	case 7:
		dl += 4
	}
	return dl
}

// decodeInto fills dst with the decoded form of stripped (whitespace and
// padding already removed): two or three table lookups OR'd together per
// output byte, reading from the receiver's per-variant decode table and
// overflow mask.
func (c *config) decodeInto(dst []byte, stripped []byte) error {
	n := len(stripped)
	di := 0

	for i := 0; i+8 <= n; i += 8 {
		c0 := c.decode[stripped[i]]
		c1 := c.decode[stripped[i+1]]
		c2 := c.decode[stripped[i+2]]
		c3 := c.decode[stripped[i+3]]
		c4 := c.decode[stripped[i+4]]
		c5 := c.decode[stripped[i+5]]
		c6 := c.decode[stripped[i+6]]
		c7 := c.decode[stripped[i+7]]

		if c0|c1|c2|c3|c4|c5|c6|c7 == invalid {
			return c.badChar(stripped, i, 8)
		}

		dst[di] = c0<<3 | c1>>2
		dst[di+1] = (c1&0x03)<<6 | c2<<1 | c3>>4
		dst[di+2] = (c3&0x0F)<<4 | c4>>1
		dst[di+3] = (c4&0x01)<<7 | c5<<2 | c6>>3
		dst[di+4] = (c6&0x07)<<5 | c7

		di += 5
	}

	tail := stripped[n-n%8:]
	tailStart := n - len(tail)
	switch len(tail) {
	case 2:
		c0 := c.decode[tail[0]]
		c1 := c.decode[tail[1]]
		if c0|c1 == invalid {
			return c.badChar(stripped, tailStart, 2)
		}
		if c1&c.overflowMask[2] != 0 {
			return converter.NewTrailingBits(string(tail))
		}
		dst[di] = c0<<3 | c1>>2
	case 4:
		c0 := c.decode[tail[0]]
		c1 := c.decode[tail[1]]
		c2 := c.decode[tail[2]]
		c3 := c.decode[tail[3]]
		if c0|c1|c2|c3 == invalid {
			return c.badChar(stripped, tailStart, 4)
		}
		if c3&c.overflowMask[4] != 0 {
			return converter.NewTrailingBits(string(tail))
		}
		dst[di] = c0<<3 | c1>>2
		dst[di+1] = (c1&0x03)<<6 | c2<<1 | c3>>4
	case 5:
		c0 := c.decode[tail[0]]
		c1 := c.decode[tail[1]]
		c2 := c.decode[tail[2]]
		c3 := c.decode[tail[3]]
		c4 := c.decode[tail[4]]
		if c0|c1|c2|c3|c4 == invalid {
			return c.badChar(stripped, tailStart, 5)
		}
		if c4&c.overflowMask[5] != 0 {
			return converter.NewTrailingBits(string(tail))
		}
		dst[di] = c0<<3 | c1>>2
		dst[di+1] = (c1&0x03)<<6 | c2<<1 | c3>>4
		dst[di+2] = (c3&0x0F)<<4 | c4>>1
	case 7:
		c0 := c.decode[tail[0]]
		c1 := c.decode[tail[1]]
		c2 := c.decode[tail[2]]
		c3 := c.decode[tail[3]]
		c4 := c.decode[tail[4]]
		c5 := c.decode[tail[5]]
		c6 := c.decode[tail[6]]
		if c0|c1|c2|c3|c4|c5|c6 == invalid {
			return c.badChar(stripped, tailStart, 7)
		}
		if c6&c.overflowMask[7] != 0 {
			return converter.NewTrailingBits(string(tail))
		}
		dst[di] = c0<<3 | c1>>2
		dst[di+1] = (c1&0x03)<<6 | c2<<1 | c3>>4
		dst[di+2] = (c3&0x0F)<<4 | c4>>1
		dst[di+3] = (c4&0x01)<<7 | c5<<2 | c6>>3
	}

	return nil
}

func (c *config) badChar(stripped []byte, start, count int) error {
	for i := 0; i < count; i++ {
		ch := stripped[start+i]
		if c.decode[ch] == invalid {
			return converter.NewBadCharacter(string(stripped), start+i, rune(ch))
		}
	}
	return converter.NewBadCharacter(string(stripped), start, rune(stripped[start]))
}

func (c *config) stripPad(text []byte) []byte {
	if c.pad == 0 {
		return text
	}
	end := len(text)
	for end > 0 && text[end-1] == c.pad {
		end--
	}
	return text[:end]
}

// DecodeChars decodes text (whitespace and trailing padding are ignored)
// into bytes.
func (c *config) DecodeChars(text []byte) ([]byte, error) {
	if text == nil {
		return nil, nil
	}

	stripped := c.stripPad(textutil.StripWhitespace(text))
	n := len(stripped)
	if n == 0 {
		return []byte{}, nil
	}

	outLen := decodedLen(n)
	if outLen < 0 {
		return nil, converter.NewBadLength(string(text))
	}

	dst := make([]byte, outLen)
	if err := c.decodeInto(dst, stripped); err != nil {
		return nil, err
	}
	return dst, nil
}

// Decode is DecodeChars taking and returning strings.
func (c *config) Decode(text string) ([]byte, error) {
	return c.DecodeChars([]byte(text))
}
