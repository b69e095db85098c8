// Package textutil provides the whitespace-handling and buffer-hygiene
// helpers shared by every codec: stripping whitespace before decode,
// growing a char buffer without leaving stale copies behind, and trimming
// to an exact final length.
package textutil

import (
	"unicode"
	"unicode/utf8"

	"github.com/ericlagergren/subtle"
)

// IsWhitespace reports whether r is whitespace under the Unicode
// White_Space property, the same classification Decode/Clean use to skip
// formatting characters in encoded text.
func IsWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// StripWhitespace returns a copy of text with every whitespace rune
// removed. The input is never modified.
func StripWhitespace(text []byte) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRune(text[i:])
		if !IsWhitespace(r) {
			out = append(out, text[i:i+size]...)
		}
		i += size
	}
	return out
}

// StripWhitespaceInPlace compacts text by removing whitespace runes in
// place, returning the new length. The vacated tail (text[n:]) is
// overwritten with spaces so no compacted-away data lingers in the
// caller's backing array.
func StripWhitespaceInPlace(text []byte) int {
	n := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRune(text[i:])
		if !IsWhitespace(r) {
			n += copy(text[n:], text[i:i+size])
		}
		i += size
	}
	for i := n; i < len(text); i++ {
		text[i] = ' '
	}
	return n
}

// Grow returns a buffer of capacity n+8 containing buf's contents (its
// length stays len(buf)), zeroing
// buf before returning if growth was necessary. If buf already has
// capacity >= n, buf is reused in place and returned unchanged, since no
// reallocation - and therefore no abandoned copy to zero - occurred.
func Grow(buf []byte, n int) []byte {
	if cap(buf) >= n {
		return buf
	}

	next := make([]byte, len(buf), n+8)
	copy(next, buf)
	Zero(buf)
	return next
}

// Trim returns a new buffer of exactly n bytes containing the first n
// bytes of buf, and zeroes buf before returning.
func Trim(buf []byte, n int) []byte {
	next := make([]byte, n)
	copy(next, buf)
	Zero(buf)
	return next
}

// Zero overwrites every byte of buf with zero. Used on any buffer that
// held sensitive data and is about to be abandoned. Delegates to
// subtle.Wipe rather than the clear builtin so the zeroing survives
// compiler dead-store elimination even when buf is otherwise unused after
// this call.
func Zero(buf []byte) {
	subtle.Wipe(buf)
}
