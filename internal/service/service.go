// Package service contains the business logic.
//
// It sits between the handler layer and whatever the handlers need to
// compute a response. Services hold no per-request state.
package service
