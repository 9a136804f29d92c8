package editor

import "fmt"

// DocumentError reports structural corruption in a document or template
// payload. Not-found conditions are never errors; mutations treat them as
// no-ops.
type DocumentError struct {
	Code    string
	Message string
}

func (e *DocumentError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func documentError(code, format string, args ...any) *DocumentError {
	return &DocumentError{Code: code, Message: fmt.Sprintf(format, args...)}
}
