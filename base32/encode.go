package base32

// encodedLen returns the output length for n input bytes (5 bytes -> 8
// characters, no padding).
func encodedLen(n int) int {
	return (n/5)*8 + ((n%5)*8+4)/5
}

// encodeInto fills dst (already sized to fit) with the Base32 encoding of src,
// one 5-byte/8-character block at a time, shifting and masking each output
// character through the receiver's per-variant table, then fills the rest
// of dst with padding when the variant requires it.
func (c *config) encodeInto(dst []byte, src []byte) {
	n := len(src)
	di := 0

	for i := 0; i+5 <= n; i += 5 {
		b0, b1, b2, b3, b4 := src[i], src[i+1], src[i+2], src[i+3], src[i+4]

		dst[di] = c.encode[b0>>3]
		dst[di+1] = c.encode[(b0<<2|b1>>6)&31]
		dst[di+2] = c.encode[(b1>>1)&31]
		dst[di+3] = c.encode[(b1<<4|b2>>4)&31]
		dst[di+4] = c.encode[(b2<<1|b3>>7)&31]
		dst[di+5] = c.encode[(b3>>2)&31]
		dst[di+6] = c.encode[(b3<<3|b4>>5)&31]
		dst[di+7] = c.encode[b4&31]

		di += 8
	}

	tail := src[n-n%5:]
	switch len(tail) {
	case 1:
		b0 := tail[0]
		dst[di] = c.encode[b0>>3]
		dst[di+1] = c.encode[(b0<<2)&31]
		di += 2
	case 2:
		b0, b1 := tail[0], tail[1]
		dst[di] = c.encode[b0>>3]
		dst[di+1] = c.encode[(b0<<2|b1>>6)&31]
		dst[di+2] = c.encode[(b1>>1)&31]
		dst[di+3] = c.encode[(b1<<4)&31]
		di += 4
	case 3:
		b0, b1, b2 := tail[0], tail[1], tail[2]
		dst[di] = c.encode[b0>>3]
		dst[di+1] = c.encode[(b0<<2|b1>>6)&31]
		dst[di+2] = c.encode[(b1>>1)&31]
		dst[di+3] = c.encode[(b1<<4|b2>>4)&31]
		dst[di+4] = c.encode[(b2<<1)&31]
		di += 5
	case 4:
		b0, b1, b2, b3 := tail[0], tail[1], tail[2], tail[3]
		dst[di] = c.encode[b0>>3]
		dst[di+1] = c.encode[(b0<<2|b1>>6)&31]
		dst[di+2] = c.encode[(b1>>1)&31]
		dst[di+3] = c.encode[(b1<<4|b2>>4)&31]
		dst[di+4] = c.encode[(b2<<1|b3>>7)&31]
		dst[di+5] = c.encode[(b3>>2)&31]
		dst[di+6] = c.encode[(b3<<3)&31]
		di += 7
	}

	if c.padRequired {
		for di < len(dst) {
			dst[di] = c.pad
			di++
		}
	}
}

// EncodeChars returns the canonical (possibly padded) Base32 encoding of
// data using this variant's alphabet.
func (c *config) EncodeChars(data []byte) []byte {
	if data == nil {
		return nil
	}
	n := len(data)
	if n == 0 {
		return []byte{}
	}

	outLen := encodedLen(n)
	if c.padRequired && outLen%8 != 0 {
		outLen += 8 - outLen%8
	}

	dst := make([]byte, outLen)
	c.encodeInto(dst, data)
	return dst
}

// Encode is EncodeChars wrapped as a string.
func (c *config) Encode(data []byte) string {
	return string(c.EncodeChars(data))
}
