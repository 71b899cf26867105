package pagelens

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID  = "invalid"
	EFETCH    = "fetch"
	EEMPTY    = "empty"
	EANALYSIS = "analysis"
	EBUSY     = "busy"
	EINTERNAL = "internal"
)

// User-facing messages for the error codes the pipeline produces.
const (
	MsgInvalidURL     = "Please enter a valid URL."
	MsgFetchFailed    = "Failed to fetch URL."
	MsgEmptyContent   = "Webpage content is empty or could not be parsed."
	MsgAnalysisFailed = "Failed to get analysis from AI. The model may have had an issue processing the content."
	MsgBusy           = "An analysis is already in progress."
	MsgUnknown        = "An unknown error occurred."
)

// Error represents an application-specific error. Message is safe to show
// to users; Err holds the diagnostic cause and is only meant for logs.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pagelens error: code=%s message=%s cause=%v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("pagelens error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
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
// Non-application errors always return a generic message so that
// internals never reach the user.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return MsgUnknown
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code and message that keeps
// err as its cause.
func WrapError(code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
