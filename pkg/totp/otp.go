package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"fmt"
	"regexp"
	"time"

	"github.com/vzoverflow/vzoverflow/pkg/base32"
)

const (
	// Digits is the code length. Fixed at 6 (RFC 6238 default); authenticator
	// apps are provisioned without a digits parameter and assume this value.
	Digits = 6

	// Period is the length of one time step in seconds.
	Period = 30
)

// codeRegex accepts exactly six decimal digits. Anything else is rejected
// before any HMAC work is done.
var codeRegex = regexp.MustCompile(`^\d{6}$`)

// TimeStep quantizes t into 30-second counter values as defined by RFC 6238.
func TimeStep(t time.Time) int64 {
	return t.Unix() / Period
}

// GenerateCode derives the 6-digit code for the given key and time step.
// The function is pure: the same (key, timeStep) pair always yields the same
// zero-padded text.
//
// Implements RFC 4226 dynamic truncation over HMAC-SHA1: the counter is
// hashed as an 8-byte big-endian value, the low nibble of the final hash byte
// selects a 4-byte window, the window's top bit is masked to avoid sign
// ambiguity, and the resulting 31-bit integer is reduced modulo 10^6.
func GenerateCode(key []byte, timeStep int64) string {
	var counter [8]byte
	for i := 7; i >= 0; i-- {
		counter[i] = byte(timeStep & 0xFF)
		timeStep >>= 8
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(counter[:])
	hash := mac.Sum(nil)

	offset := hash[len(hash)-1] & 0x0F
	binary := (int(hash[offset]&0x7F) << 24) |
		(int(hash[offset+1]) << 16) |
		(int(hash[offset+2]) << 8) |
		int(hash[offset+3])

	return fmt.Sprintf("%06d", binary%1_000_000)
}

// Validate reports whether code is correct for key at the given instant.
// Codes from the previous, current, and next time step are accepted, giving a
// ±30 second drift tolerance (90 seconds effective window).
//
// Malformed codes are rejected without hashing. There is no error return:
// a corrupted or empty key never matches any code, so validation fails closed.
func Validate(key []byte, code string, now time.Time) bool {
	if !codeRegex.MatchString(code) {
		return false
	}

	step := TimeStep(now)
	for i := int64(-1); i <= 1; i++ {
		if GenerateCode(key, step+i) == code {
			return true
		}
	}

	return false
}

// ValidateKey is Validate for a Base32-encoded secret key, the form in which
// secrets are stored and entered. Decoding is lenient (see pkg/base32), so a
// garbage key degrades to always-reject rather than an error.
func ValidateKey(encodedKey, code string, now time.Time) bool {
	return Validate(base32.Decode(encodedKey), code, now)
}

// GenerateCodeAt derives the code for the time step containing t. Useful for
// tests pinned to known instants and for showing the current code in tooling.
func GenerateCodeAt(key []byte, t time.Time) string {
	return GenerateCode(key, TimeStep(t))
}
