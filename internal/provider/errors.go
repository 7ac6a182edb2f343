package provider

import "fmt"

// ErrorKind categorizes upstream failures.
type ErrorKind int

const (
	// KindNetwork covers unreachable endpoints, reset connections, and
	// non-2xx statuses that are not credential rejections.
	KindNetwork ErrorKind = iota
	// KindAuth covers rejected or missing credentials.
	KindAuth
	// KindProtocol covers malformed or empty upstream streams.
	KindProtocol
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindProtocol:
		return "protocol"
	}
	return "unknown"
}

// Error is a classified upstream failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError constructs a classified Error.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
