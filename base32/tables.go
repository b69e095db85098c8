// Package base32 implements the RFC-4648 Base32 Converter family: Base32,
// Base32Hex, Base32LowerHex, Base32Crockford and ZBase32.
//
// Each variant's encode/decode tables are built once at init time by a
// shared closure, and the shift-and-mask arithmetic is parameterized by a
// per-variant config so all five alphabets share one code path instead of
// five near-identical copies.
package base32

const invalid = 0xFF

// config is one Base32 variant's alphabet, decode table, and canonical-form
// rules. It is built once per variant at package init and never mutated.
type config struct {
	encode      [32]byte
	decode      [256]byte
	pad         byte // 0 means the variant forbids padding
	padRequired bool
	preferLower bool
	// overflowMask[rem] is the bitmask of the final character's bits that
	// must be zero for a block of the given remainder to be valid; only
	// indices 2, 4, 5, 7 are meaningful (1, 3, 6 are structurally invalid
	// lengths, 0 has no partial tail).
	overflowMask [8]byte
}

var stdOverflowMask = [8]byte{
	0: 0,
	2: 0x03,
	4: 0x0F,
	5: 0x01,
	7: 0x07,
}

// buildConfig constructs the encode/decode tables for an alphabet given in
// canonical (preferred-case) order.
func buildConfig(alphabet string, pad byte, padRequired, preferLower bool) config {
	var c config
	c.pad = pad
	c.padRequired = padRequired
	c.preferLower = preferLower
	c.overflowMask = stdOverflowMask

	copy(c.encode[:], alphabet)

	for i := range c.decode {
		c.decode[i] = invalid
	}

	const caseFold = 'a' - 'A'
	for i := 0; i < 32; i++ {
		v := alphabet[i]
		c.decode[v] = byte(i)
		if v >= 'A' && v <= 'Z' {
			c.decode[v+caseFold] = byte(i)
		} else if v >= 'a' && v <= 'z' {
			c.decode[v-caseFold] = byte(i)
		}
	}

	return c
}

// alias registers an additional decodable character (e.g. Crockford's
// 'O' -> 0, 'I'/'L' -> 1) without altering the canonical encode table.
func (c *config) alias(ch byte, digitOf byte) {
	v := c.decode[digitOf]
	const caseFold = 'a' - 'A'
	c.decode[ch] = v
	if ch >= 'A' && ch <= 'Z' {
		c.decode[ch+caseFold] = v
	} else if ch >= 'a' && ch <= 'z' {
		c.decode[ch-caseFold] = v
	}
}

var (
	std = buildConfig("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", '=', true, false)

	hexUpper = buildConfig("0123456789ABCDEFGHIJKLMNOPQRSTUV", '=', false, false)

	hexLower = buildConfig("0123456789abcdefghijklmnopqrstuv", '=', false, true)

	crockford = func() config {
		c := buildConfig("0123456789ABCDEFGHJKMNPQRSTVWXYZ", '=', false, false)
		c.alias('O', '0')
		c.alias('I', '1')
		c.alias('L', '1')
		return c
	}()

	zbase32 = buildConfig("ybndrfg8ejkmcpqxot1uwisza345h769", 0, false, true)
)
