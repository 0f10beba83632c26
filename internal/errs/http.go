package errs

import "strings"

// FieldError points an error at the query parameter it concerns.
type FieldError struct {
	// Field is the parameter name the error relates to (e.g. "a").
	Field string `json:"field"`

	// Message is the human-readable error message.
	Message string `json:"message"`
}

// HTTPError is the main custom error type for API responses.
//
// Message is what the client reads: the global error handler writes it
// as the plain-text response body with Status as the status code.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: human-friendly message, the response body.
//   - Status: HTTP status code.
//   - Override: lets the error handler replace the message in production.
//   - Errors: per-field errors (validation), logged only.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
// It returns the Message, so printing/logging the error shows the message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError.
//
// It does NOT compare Code/Status/etc.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
