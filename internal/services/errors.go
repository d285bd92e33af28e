package services

import "errors"

// ErrorKind is the machine-readable class of a failed operation.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindPreconditionFailed ErrorKind = "precondition_failed"
	KindInvalidInput       ErrorKind = "invalid_input"
)

// OpError is a recoverable operation failure surfaced to the caller.
// errors.Is matches on kind when the target has no message, so
// errors.Is(err, ErrConflict) holds for every conflict.
type OpError struct {
	Kind    ErrorKind
	Message string
}

func (e *OpError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *OpError) Is(target error) bool {
	t, ok := target.(*OpError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

var (
	ErrNotFound           = &OpError{Kind: KindNotFound}
	ErrConflict           = &OpError{Kind: KindConflict}
	ErrPreconditionFailed = &OpError{Kind: KindPreconditionFailed}
	ErrInvalidInput       = &OpError{Kind: KindInvalidInput}
)

// Pairing failures, in the order SendRequest checks them.
var (
	ErrUserNotFound      = &OpError{Kind: KindNotFound, Message: "user not found"}
	ErrSelfRequest       = &OpError{Kind: KindConflict, Message: "cannot send request to yourself"}
	ErrTargetHasPartner  = &OpError{Kind: KindConflict, Message: "user already has a partner"}
	ErrAlreadyPartnered  = &OpError{Kind: KindConflict, Message: "you already have a partner"}
	ErrDuplicateRequest  = &OpError{Kind: KindConflict, Message: "request already sent"}
	ErrRequestNotPending = &OpError{Kind: KindPreconditionFailed, Message: "no pending request from this user"}
	ErrRequesterGone     = &OpError{Kind: KindNotFound, Message: "requesting user no longer exists"}
	ErrRequesterPaired   = &OpError{Kind: KindConflict, Message: "requesting user already has a partner"}
	ErrNoPartner         = &OpError{Kind: KindPreconditionFailed, Message: "you do not have a partner"}
)

var (
	ErrEmailTaken         = &OpError{Kind: KindConflict, Message: "email already registered"}
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrPasswordRequired   = &OpError{Kind: KindInvalidInput, Message: "password is required"}
	ErrPostNotFound       = &OpError{Kind: KindNotFound, Message: "post not found"}
	ErrNoteNotFound       = &OpError{Kind: KindNotFound, Message: "note not found"}
	ErrNotOwner           = errors.New("only the owner can modify this item")
)

func invalidInput(message string) error {
	return &OpError{Kind: KindInvalidInput, Message: message}
}

// KindOf returns the kind of an OpError in err's chain, or "" when err is
// not an operation failure.
func KindOf(err error) ErrorKind {
	var op *OpError
	if errors.As(err, &op) {
		return op.Kind
	}
	return ""
}
