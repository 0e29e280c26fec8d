package main

import (
	"context"
	"net/http"
)

// Define a custom contextKey type, with the underlying type string
type contextKey string

// requestIDContextKey is the key for getting and setting the request ID in the request context.
const requestIDContextKey = contextKey("request_id")

// The contextSetRequestID() method returns a new copy of the request with the provided ID added to the
// context.
func (app *application) contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}

// The contextGetRequestID() retrieves the request ID from the request context. It returns the empty
// string when the requestID middleware hasn't run, which is the case for handlers exercised on their own.
func (app *application) contextGetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}
