// Package codecs exposes the shared default instance of every Converter in
// this module under the names external callers look them up by.
package codecs

import (
	"github.com/simon-greatrix/textcodecs/ascii85"
	"github.com/simon-greatrix/textcodecs/base128"
	"github.com/simon-greatrix/textcodecs/base32"
	"github.com/simon-greatrix/textcodecs/base64"
	"github.com/simon-greatrix/textcodecs/converter"
	"github.com/simon-greatrix/textcodecs/hex"
)

var (
	ASCII85         = ascii85.Ascii85
	ASCII85BToA     = ascii85.Ascii85BToA
	BASE32          = base32.Std
	BASE32HEX       = base32.Hex
	BASE32LOWERHEX  = base32.LowerHex
	BASE32CROCKFORD = base32.Crockford
	ZBASE32         = base32.ZBase32
	BASE64          = base64.Codec
	BASE64URL       = base64.CodecURL
	BASE128         = base128.Codec
	HEX             = hex.Codec
)

// ByName returns the default Converter registered under name, exactly as
// listed in the package's named constants, or false if no codec has that
// name.
func ByName(name string) (converter.Converter, bool) {
	switch name {
	case "ASCII85":
		return ASCII85, true
	case "ASCII85BToA":
		return ASCII85BToA, true
	case "BASE32":
		return BASE32, true
	case "BASE32HEX":
		return BASE32HEX, true
	case "BASE32LOWERHEX":
		return BASE32LOWERHEX, true
	case "BASE32CROCKFORD":
		return BASE32CROCKFORD, true
	case "ZBASE32":
		return ZBASE32, true
	case "BASE64":
		return BASE64, true
	case "BASE64URL":
		return BASE64URL, true
	case "BASE128":
		return BASE128, true
	case "HEX":
		return HEX, true
	default:
		return nil, false
	}
}
