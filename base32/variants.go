package base32

import "github.com/simon-greatrix/textcodecs/converter"

// Variant wraps a config as a converter.Converter, giving each Base32
// alphabet its own addressable type.
type Variant struct {
	cfg *config
}

var (
	// Std is RFC-4648 Base32 (A-Z, 2-7), '=' padding required.
	Std converter.Converter = Variant{&std}

	// Hex is RFC-4648 Base32Hex (0-9, A-V), '=' padding optional.
	Hex converter.Converter = Variant{&hexUpper}

	// LowerHex is Base32Hex canonicalised to lowercase (0-9, a-v).
	LowerHex converter.Converter = Variant{&hexLower}

	// Crockford is Douglas Crockford's Base32 (0-9, A-HJKMNP-TV-Z), with
	// 'O'->0 and 'I'/'L'->1 decode aliases.
	Crockford converter.Converter = Variant{&crockford}

	// ZBase32 is zooko's human-oriented Base32 permutation; padding is
	// forbidden.
	ZBase32 converter.Converter = Variant{&zbase32}
)

func (v Variant) EncodeChars(data []byte) []byte { return v.cfg.EncodeChars(data) }
func (v Variant) Encode(data []byte) string      { return v.cfg.Encode(data) }

func (v Variant) DecodeChars(text []byte) ([]byte, error) { return v.cfg.DecodeChars(text) }
func (v Variant) Decode(text string) ([]byte, error)      { return v.cfg.Decode(text) }

func (v Variant) Clean(text []byte) []byte       { return v.cfg.clean(text) }
func (v Variant) CleanString(text string) string { return string(v.cfg.clean([]byte(text))) }
