// Package errs defines the error types the HTTP layer understands.
//
// Handlers and middleware return these so the global error handler can
// turn them into consistent, detail-free JSON bodies for clients while the
// original error is kept for the operational log.
package errs
