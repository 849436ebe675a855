// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here — along with
// the translation of validator errors into the user-facing messages the
// browser form displays.
//
// Error responses always look like:
//
//	{ "error": "Validation failed", "details": ["Principal is required", ...] }
//
// with "details" present only for validation failures.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope returned for error cases.
// Success responses have their own shapes (types.CalculateResponse etc.).
type Response struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Generic error messages sent over the wire. Internal detail stays in
// the logs; the client only ever sees these.
const (
	MsgValidationFailed = "Validation failed"
	MsgCalculationError = "Calculation error occurred"
	MsgUnexpectedError  = "An unexpected error occurred"
	MsgEmptyBody        = "Request body cannot be empty"
	MsgInvalidBody      = "Request body is not valid JSON"
	MsgContentType      = "Content-Type must be application/json"
)

// displayNames maps struct field names to the labels users saw on the
// form. Fields without an entry fall back to the struct name.
var displayNames = map[string]string{
	"Principal":  "Principal",
	"AnnualRate": "Annual Interest Rate",
	"Years":      "Years",
}

// WriteJSON writes a JSON-encoded response with the given HTTP status
// code. data can be any JSON-encodable value.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes. Once
// WriteHeader is called the headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteRaw writes an already-encoded JSON body, e.g. one served straight
// from the result cache.
func WriteRaw(w http.ResponseWriter, status int, body []byte) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

// GeneralError wraps a generic message into the standard envelope.
// Pass one of the Msg constants, never err.Error() — raw error text can
// leak internals or reflect attacker-controlled input.
func GeneralError(msg string) Response {
	return Response{Error: msg}
}

// ValidationError converts the validator's field errors into the
// itemized message list the form displays — one message per failing
// field, every failing field included.
//
// The messages are keyed on the validation tag that failed, so they stay
// in lockstep with the rules declared on types.CalculateRequest. Note
// the "safe" message deliberately names only the field: the offending
// value is never echoed.
func ValidationError(errs validator.ValidationErrors) Response {
	details := make([]string, 0, len(errs))

	for _, e := range errs {
		name := displayNames[e.Field()]
		if name == "" {
			name = e.Field()
		}

		switch e.ActualTag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", name))
		case "safe":
			details = append(details, fmt.Sprintf("Invalid characters detected in %s", name))
		case "number":
			details = append(details, fmt.Sprintf("%s must be a valid number", name))
		case "whole":
			details = append(details, fmt.Sprintf("%s must be a whole number", name))
		case "dmin":
			details = append(details, fmt.Sprintf("%s must be at least %s", name, e.Param()))
		case "dmax":
			details = append(details, fmt.Sprintf("%s must be no more than %s", name, e.Param()))
		default:
			details = append(details, fmt.Sprintf("%s is invalid", name))
		}
	}

	return Response{
		Error:   MsgValidationFailed,
		Details: details,
	}
}
