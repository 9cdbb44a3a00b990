// Package qrcode renders otpauth provisioning URIs (or any other text) as QR
// code images, either as raw PNG bytes or as a data-URI string that can be
// embedded directly into an HTML page.
//
// It is a thin wrapper around github.com/skip2/go-qrcode adding input
// validation, a default size, and the data-URI convenience. Errors are
// package-level sentinels (ErrEmptyContent, ErrFailedToGenerateQRCode) for
// use with errors.Is.
package qrcode
