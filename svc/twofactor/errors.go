package twofactor

import "errors"

var (
	// ErrInvalidCode covers every validation failure: wrong digits, already
	// used, expired, or no code outstanding. One message for all of them so
	// a caller cannot be turned into an oracle distinguishing the cases.
	ErrInvalidCode = errors.New("invalid or expired code")

	ErrInvalidPurpose         = errors.New("invalid one-time code purpose")
	ErrMissingDeliveryAddress = errors.New("subject has no email address to deliver the code to")
	ErrCodeNotFound           = errors.New("no active one-time code found")
	ErrFailedToGenerateCode   = errors.New("failed to generate one-time code")
	ErrFailedToDeliverCode    = errors.New("failed to deliver one-time code")
	ErrFailedToRenderEmail    = errors.New("failed to render one-time code email")
	ErrMissingAuthenticatorKey = errors.New("subject has no authenticator key")
)
