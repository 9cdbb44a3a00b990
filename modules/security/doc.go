// Package security mounts the account security HTTP surface: authenticator
// enrollment, enabling and disabling two-factor auth, one-time code request
// and verification, and password changes.
//
// The module owns no cryptography or persistence. It resolves the current
// user through UserStorage, delegates every decision to svc/twofactor, and
// translates domain errors into JSON responses.
//
//	storage := security.NewPGStorage(pool)
//	svc := security.NewService(twofaService, storage, errorHandler)
//
//	r := chi.NewRouter()
//	r.Mount("/security", svc.Handle())
//
// Authentication is the caller's concern: the surrounding session layer must
// put the user id on the request context via WithUserID before requests
// reach this router.
package security
