package main

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Define an envelope type.
type envelope map[string]interface{}

// Define a writeJSON() helper for sending responses. This takes the destination http.ResponseWriter, the
// HTTP status code to send, the data to encode to JSON, and a header map containing any additional HTTP
// headers we want to include in the response.
func (app *application) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	// Append a newline to make it easier to view in terminal applications.
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// The readOptionalString() helper returns a pointer to the string value for key in the query string, or
// nil if the key is missing or its value is empty.
func (app *application) readOptionalString(qs url.Values, key string) *string {
	s := qs.Get(key)
	if s == "" {
		return nil
	}
	return &s
}
