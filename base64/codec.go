package base64

import (
	"github.com/simon-greatrix/textcodecs/converter"
	"github.com/simon-greatrix/textcodecs/textutil"
)

type codec struct {
	cfg config
}

// Codec is the standard RFC-4648 Base64 Converter (required '=' padding).
var Codec converter.Converter = codec{stdConfig}

// CodecURL is the URL-safe Base64 Converter ('-', '_'; padding optional).
var CodecURL converter.Converter = codec{urlConfig}

func (c codec) EncodeChars(data []byte) []byte {
	if data == nil {
		return nil
	}
	return encodeBlocks(c.cfg, data)
}

func (c codec) Encode(data []byte) string {
	return string(c.EncodeChars(data))
}

func encodeBlocks(cfg config, data []byte) []byte {
	n := len(data)
	full := n / 3
	rem := n % 3

	outLen := full * 4
	switch rem {
	case 1:
		outLen += 2
	case 2:
		outLen += 3
	}
	if cfg.padRequired && rem != 0 {
		outLen += 4 - (outLen % 4)
	}

	out := make([]byte, 0, outLen)
	for i := 0; i < full; i++ {
		b0, b1, b2 := data[3*i], data[3*i+1], data[3*i+2]
		out = append(out,
			cfg.encode[b0>>2],
			cfg.encode[(b0<<4|b1>>4)&63],
			cfg.encode[(b1<<2|b2>>6)&63],
			cfg.encode[b2&63],
		)
	}

	tail := data[3*full:]
	switch len(tail) {
	case 1:
		b0 := tail[0]
		out = append(out, cfg.encode[b0>>2], cfg.encode[(b0<<4)&63])
		if cfg.padRequired {
			out = append(out, cfg.pad, cfg.pad)
		}
	case 2:
		b0, b1 := tail[0], tail[1]
		out = append(out, cfg.encode[b0>>2], cfg.encode[(b0<<4|b1>>4)&63], cfg.encode[(b1<<2)&63])
		if cfg.padRequired {
			out = append(out, cfg.pad)
		}
	}

	return out
}

func (c codec) DecodeChars(text []byte) ([]byte, error) {
	if text == nil {
		return nil, nil
	}
	return decodeBlocks(c.cfg, text)
}

func (c codec) Decode(text string) ([]byte, error) {
	return c.DecodeChars([]byte(text))
}

func decodeBlocks(cfg config, text []byte) ([]byte, error) {
	stripped := stripPadding(cfg, textutil.StripWhitespace(text))
	n := len(stripped)
	if n == 0 {
		return []byte{}, nil
	}

	rem := n % 4
	if rem == 1 {
		return nil, converter.NewBadLength(string(text))
	}

	full := n / 4
	outLen := full * 3
	switch rem {
	case 2:
		outLen += 1
	case 3:
		outLen += 2
	}

	out := make([]byte, outLen)
	pos := 0
	for i := 0; i < full; i++ {
		c0 := cfg.decode[stripped[4*i]]
		c1 := cfg.decode[stripped[4*i+1]]
		c2 := cfg.decode[stripped[4*i+2]]
		c3 := cfg.decode[stripped[4*i+3]]
		if c0|c1|c2|c3 == invalid {
			return nil, badChar(cfg, string(stripped), stripped, 4*i)
		}
		out[3*i] = c0<<2 | c1>>4
		out[3*i+1] = (c1&0x0F)<<4 | c2>>2
		out[3*i+2] = (c2&0x03)<<6 | c3
		pos = 3 * (i + 1)
	}

	tail := stripped[4*full:]
	switch len(tail) {
	case 2:
		c0 := cfg.decode[tail[0]]
		c1 := cfg.decode[tail[1]]
		if c0|c1 == invalid {
			return nil, badChar(cfg, string(stripped), stripped, 4*full)
		}
		if c1&0x0F != 0 {
			return nil, converter.NewTrailingBits(string(tail))
		}
		out[pos] = c0<<2 | c1>>4
	case 3:
		c0 := cfg.decode[tail[0]]
		c1 := cfg.decode[tail[1]]
		c2 := cfg.decode[tail[2]]
		if c0|c1|c2 == invalid {
			return nil, badChar(cfg, string(stripped), stripped, 4*full)
		}
		if c2&0x03 != 0 {
			return nil, converter.NewTrailingBits(string(tail))
		}
		out[pos] = c0<<2 | c1>>4
		out[pos+1] = (c1&0x0F)<<4 | c2>>2
	}

	return out, nil
}

func badChar(cfg config, original string, stripped []byte, blockStart int) error {
	for i := 0; i < 4 && blockStart+i < len(stripped); i++ {
		c := stripped[blockStart+i]
		if cfg.decode[c] == invalid {
			return converter.NewBadCharacter(original, blockStart+i, rune(c))
		}
	}
	return converter.NewBadCharacter(original, blockStart, rune(stripped[blockStart]))
}

func stripPadding(cfg config, text []byte) []byte {
	if cfg.pad == 0 {
		return text
	}
	end := len(text)
	for end > 0 && text[end-1] == cfg.pad {
		end--
	}
	return text[:end]
}

// Clean keeps only alphabet characters, repairs a truncated final block
// (dropping a dangling single character that cannot form a valid block, or
// masking the last character's residual low bits to zero for blocks of 2
// or 3), and pads to a multiple of 4 when the variant requires padding.
func (c codec) Clean(text []byte) []byte {
	return cleanBlocks(c.cfg, text)
}

func cleanBlocks(cfg config, text []byte) []byte {
	kept := make([]byte, 0, len(text))
	for _, b := range text {
		if cfg.decode[b] != invalid {
			kept = append(kept, b)
		}
	}
	kept = stripPadding(cfg, kept)

	rem := len(kept) % 4
	switch rem {
	case 1:
		kept = kept[:len(kept)-1]
	case 2:
		last := cfg.decode[kept[len(kept)-1]] & 0x30
		kept[len(kept)-1] = cfg.encode[last]
	case 3:
		last := cfg.decode[kept[len(kept)-1]] & 0x3C
		kept[len(kept)-1] = cfg.encode[last]
	}

	if cfg.padRequired && len(kept)%4 != 0 {
		for len(kept)%4 != 0 {
			kept = append(kept, cfg.pad)
		}
	}

	return kept
}

func (c codec) CleanString(text string) string {
	return string(c.Clean([]byte(text)))
}
