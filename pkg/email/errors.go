package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrInvalidConfig     = errors.New("invalid mailer configuration")
	ErrInvalidParams     = errors.New("invalid email parameters")
)
