package ns

import (
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package are derived from these values with
// [Error.With] and [Error.Wrap], and they still match their sentinel using
// [errors.Is].
var (
	ErrDuplicateName     = NewError("duplicate name")
	ErrKeyNotFound       = NewError("key not found")
	ErrAttributeNotFound = NewError("attribute not found")
	ErrNotContainer      = NewError("not a container")
	ErrInvalidDescriptor = NewError("invalid descriptor")
	ErrQuery             = NewError("query failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  *Error // sentinel this error was derived from; nil for sentinels
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error implements the error interface.
//
// The message takes the form "<msg>: <cause>", either part omitted if unset.
// Errors carrying a "detail" attribute use it in place of the sentinel
// message so that the text reads naturally to users.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	msg := e.msg
	if v, ok := e.Attr(detailKey); ok {
		msg = v.String()
	}

	if msg != "" {
		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.origin() == t.origin()
}

// Attr returns the value of the most recently added attribute with the given
// key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for i := len(e.attrs) - 1; i >= 0; i-- {
		if e.attrs[i].Key == key {
			return e.attrs[i].Value, true
		}
	}

	return slog.Value{}, false
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	for _, a := range e.attrs {
		if a.Key != detailKey {
			attrs = append(attrs, a)
		}
	}

	return slog.GroupValue(attrs...)
}

// Wrap returns a copy of e that wraps err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:  e.origin(),
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		kind:  e.origin(),
		msg:   e.msg,
		err:   e.err,
		attrs: append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...),
	}
}

func (e *Error) origin() *Error {
	if e.kind != nil {
		return e.kind
	}

	return e
}

// detailKey is an attribute holding a human-readable message that replaces
// the sentinel message in [Error.Error].
const detailKey = "detail"
