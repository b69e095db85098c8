package base32

import "github.com/simon-greatrix/textcodecs/textutil"

// clean keeps only alphabet characters (rewritten to the variant's
// canonical case, with Crockford's O/I/L aliases folded to 0/1), repairs a
// tail whose length is structurally invalid (remainder 1, 3 or 6) by
// appending canonical zero-digits until a legal remainder is reached,
// clears any nonzero overflow bits on the final character, and appends
// padding when the variant requires it.
func (c *config) clean(text []byte) []byte {
	stripped := textutil.StripWhitespace(text)

	kept := make([]byte, 0, len(stripped))
	for _, b := range stripped {
		v := c.decode[b]
		if v == invalid {
			continue
		}
		kept = append(kept, c.encode[v])
	}

	zero := c.encode[0]
	for {
		rem := len(kept) % 8
		if validDecodeRemainder&(1<<uint(rem)) != 0 {
			break
		}
		kept = append(kept, zero)
	}

	if n := len(kept); n > 0 {
		rem := n % 8
		if mask := c.overflowMask[rem]; mask != 0 {
			last := c.decode[kept[n-1]]
			if last&mask != 0 {
				kept[n-1] = c.encode[last&^mask]
			}
		}
	}

	if c.padRequired {
		for len(kept)%8 != 0 {
			kept = append(kept, c.pad)
		}
	}

	return kept
}
