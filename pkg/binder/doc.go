// Package binder parses HTTP requests into typed request structs.
//
// Binders are plain functions with the signature func(*http.Request, any)
// error, composed by the handler package's Wrap. A binder that does not
// apply to a request returns ErrBinderNotApplicable so the next one runs.
package binder
