// Package middleware stores the request pipeline and the terminal error handler.
//
// Every request passes through the same ordered list of steps (see
// Middlewares.Pipeline): JSON body parsing, panic recovery, request ids,
// tracing, metrics, request logging, secure headers and CORS. Whatever a
// step or handler returns as an error ends in GlobalErrorHandler.
package middleware
