// Package twofactor implements the second-factor core: purpose-scoped
// one-time codes delivered by email, and orchestration between those codes
// and authenticator-app TOTP validation.
//
// # One-time codes
//
// CodeService issues 6-digit codes scoped to a Purpose (login, enabling or
// disabling 2FA, password change, email verification). A code lives for five
// minutes, validates by exact text comparison against the most recently
// issued live code for its (subject, purpose), and is consumed atomically:
// the store's compare-and-set guarantees a code marks used exactly once even
// under concurrent duplicate submissions. Validation failures are uniform —
// wrong, expired, and already-used codes are indistinguishable to the caller.
//
// # Orchestration
//
// Service routes verification by enrollment: subjects with an authenticator
// key are validated through pkg/totp against their decrypted secret, everyone
// else through the emailed code for the operation's purpose. It also owns the
// state transitions: authenticator setup and confirmation, enabling via
// email code, and disabling (which clears the stored secret so it can never
// be replayed).
//
// # Stores
//
// CodeStore has three implementations: PGStore (durable, append-only audit
// trail, CAS via conditional UPDATE), RedisStore (latest-code-only cache with
// TTL expiry and a Lua compare-and-delete), and MemoryStore (tests, local
// development). SubjectStore is consumed rather than owned: the surrounding
// application supplies it.
//
// All time reads go through pkg/clock, so expiry and drift-window behavior
// is deterministic under test.
package twofactor
