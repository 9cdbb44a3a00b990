// Package clock provides an injectable time source.
//
// Every component that compares against "now" (TOTP drift windows, one-time
// code expiry) reads time through a Clock instead of calling time.Now
// directly. Production wiring uses System; tests use Fixed or Mock to pin
// exact instants, which keeps RFC test vectors and expiry-boundary assertions
// deterministic.
package clock
