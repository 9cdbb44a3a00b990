// Package base32 implements the unpadded, lenient Base32 codec used for
// authenticator secrets.
//
// The standard library encoder is strict: it emits padding and rejects any
// input containing characters outside the alphabet. Authenticator keys are
// typed by hand, pasted with spaces, or copied with hyphen separators, so this
// codec instead skips everything it does not recognise and never returns an
// error. Encode and Decode are exact inverses for any byte slice.
//
//	secret := base32.Encode(key)          // "JBSWY3DPEHPK3PXP..."
//	key2 := base32.Decode("jbsw y3dp-...") // same bytes back
//
// A malformed secret decodes to some byte slice that simply never yields a
// matching one-time code; callers treat that as a failed validation rather
// than an error path.
package base32
