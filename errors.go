package lexscan

import (
	"errors"
	"fmt"
)

// Application error codes. These are mapped to user-facing messages and
// exit codes at the CLI boundary; internal code branches on them to decide
// whether a failure is fatal for a run or merely recorded per document.
const (
	ECATALOG      = "catalog_unreadable" // catalog could not be fetched or parsed
	EDECODE       = "decode"             // fetched payload is not decodable text
	EENGINE       = "engine"             // external index engine failure
	EINTERNAL     = "internal"           // unexpected internal error
	EINVALID      = "invalid"            // validation failed
	ENOTFOUND     = "not_found"          // entity does not exist
	ESTATUS       = "bad_status"         // non-success HTTP status
	EUNREACHABLE  = "unreachable"        // network failure or timeout
	EUNRESOLVABLE = "unresolvable"       // location cannot be made canonical
)

// Error represents an application-specific error. Application errors carry
// a machine-readable code and a human-readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise; see ErrorCode and ErrorMessage for extracting the parts.
func (e *Error) Error() string {
	return fmt.Sprintf("lexscan error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
