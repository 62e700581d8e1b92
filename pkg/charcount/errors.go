package charcount

import (
	"errors"
	"fmt"
)

// Sentinel errors for argument validation. Use errors.Is to match an
// *ArgumentError against its kind.
var (
	// ErrNullArgument indicates that a required argument was absent.
	ErrNullArgument = errors.New("argument is null")

	// ErrIndexOutOfRange indicates that a start or end index lies outside the string.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidArgument indicates that an argument has a value the counter does not accept.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ArgumentError describes a rejected argument. Kind is one of the sentinel
// errors above, Param names the offending parameter.
type ArgumentError struct {
	Kind    error
	Param   string
	Message string
}

// Error returns a formatted error message for the argument error.
func (e *ArgumentError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Param)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Param, e.Message)
}

// Unwrap returns the sentinel kind so errors.Is works on the error.
func (e *ArgumentError) Unwrap() error {
	return e.Kind
}

// NullArgument reports an absent argument.
func NullArgument(param string) error {
	return &ArgumentError{Kind: ErrNullArgument, Param: param}
}

// IndexOutOfRange reports an index outside the accepted bounds.
func IndexOutOfRange(param, message string) error {
	return &ArgumentError{Kind: ErrIndexOutOfRange, Param: param, Message: message}
}

// InvalidArgument reports an argument with an unacceptable value.
func InvalidArgument(param, message string) error {
	return &ArgumentError{Kind: ErrInvalidArgument, Param: param, Message: message}
}

// Param returns the offending parameter name carried by err, or "" when err
// is not an *ArgumentError.
func Param(err error) string {
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		return argErr.Param
	}
	return ""
}
