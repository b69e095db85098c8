// Package base64 implements the RFC-4648 Base64 Converter and its URL and
// order-preserving-hex variants.
//
// Decoding is an OR of masked shifts per output byte, read from a
// precomputed per-alphabet table; a small `config` struct parameterizes the
// alphabet so the same arithmetic serves all three variants.
package base64

const invalid = 0xFF

// config is the per-variant table set: Base64, Base64URL and Base64Hex are
// three instances of the same arithmetic over different alphabets.
type config struct {
	encode      [64]byte
	decode      [256]byte
	pad         byte // 0 means "no padding character defined"
	padRequired bool
}

func buildConfig(alphabet string, pad byte, padRequired bool) config {
	var c config
	copy(c.encode[:], alphabet)

	for i := range c.decode {
		c.decode[i] = invalid
	}
	for i := 0; i < 64; i++ {
		c.decode[alphabet[i]] = byte(i)
	}
	c.pad = pad
	c.padRequired = padRequired
	return c
}

var (
	stdConfig = buildConfig(
		"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/",
		'=', true)

	urlConfig = buildConfig(
		"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_",
		'=', false)

	// hexConfig's alphabet is monotonic in codepoint order so that
	// unsigned-byte lexicographic order of inputs equals lexicographic
	// order of outputs: '-' (0x2D) < '0'-'9' (0x30-39) < 'A'-'Z' (0x41-5A)
	// < '_' (0x5F) < 'a'-'z' (0x61-7A).
	hexConfig = buildConfig(
		"-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz",
		0, false)
)
