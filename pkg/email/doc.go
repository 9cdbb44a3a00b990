// Package email defines the outbound notification contract and its two
// implementations.
//
// EmailSender is the single seam through which the rest of the system sends
// mail: one recipient, a subject, an HTML body, an optional tag. The
// production implementation delivers through Postmark's transactional API;
// NewDevSender writes messages to local files for development, where reading
// a one-time code out of a .html file beats running a mail catcher.
//
// Delivery failures are reported as errors joined onto ErrFailedToSendEmail;
// the sender never swallows them. What a failed send means (retry, surface
// to the user, invalidate an issued code) is the caller's decision.
package email
