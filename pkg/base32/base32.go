package base32

import "strings"

// alphabet is the RFC 4648 Base32 character set. No padding character is used;
// secrets are always transmitted and stored unpadded.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// decodeMap maps an ASCII byte to its 5-bit value, or 0xFF for characters
// outside the alphabet. Built once at init to keep Decode allocation-free.
var decodeMap [256]byte

func init() {
	for i := range decodeMap {
		decodeMap[i] = 0xFF
	}
	for i := range len(alphabet) {
		c := alphabet[i]
		decodeMap[c] = byte(i)
		if c >= 'A' && c <= 'Z' {
			decodeMap[c+('a'-'A')] = byte(i) // accept lowercase on decode
		}
	}
}

// Encode converts raw bytes to unpadded Base32 text. Input is consumed in
// 5-bit chunks; a final chunk of fewer than 5 bits is left-aligned and
// zero-filled, producing ceil(8*n/5) symbols.
func Encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow((len(data)*8 + 4) / 5)

	var buffer uint
	var bits int
	for _, b := range data {
		buffer = buffer<<8 | uint(b)
		bits += 8
		for bits >= 5 {
			sb.WriteByte(alphabet[(buffer>>(bits-5))&0x1F])
			bits -= 5
		}
	}
	if bits > 0 {
		sb.WriteByte(alphabet[(buffer<<(5-bits))&0x1F])
	}

	return sb.String()
}

// Decode converts Base32 text back to raw bytes. The decoder is deliberately
// lenient for human-entered keys: whitespace, hyphens, padding characters and
// any other symbol outside the alphabet are skipped, and trailing bits that do
// not complete a full byte are dropped. For any output of Encode those dropped
// bits are exactly the encode-side fill, so Decode(Encode(b)) == b.
//
// Leniency here is an input-hygiene measure, not a security control; garbage
// input simply yields a key that will never produce a matching code.
func Decode(s string) []byte {
	out := make([]byte, 0, len(s)*5/8)

	var buffer uint
	var bits int
	for i := range len(s) {
		v := decodeMap[s[i]]
		if v == 0xFF {
			continue
		}
		buffer = buffer<<5 | uint(v)
		bits += 5
		if bits >= 8 {
			out = append(out, byte(buffer>>(bits-8)))
			bits -= 8
		}
	}

	return out
}
