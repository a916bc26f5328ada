package replay

import (
	"errors"
	"fmt"
)

// ErrBlankArgument indicates a required string argument was empty or
// whitespace-only.
var ErrBlankArgument = errors.New("argument cannot be blank")

// ArgumentError names the offending parameter of a blank-argument failure.
type ArgumentError struct {
	Param string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s cannot be blank", e.Param)
}

func (e *ArgumentError) Unwrap() error { return ErrBlankArgument }

func IsArgumentError(err error) bool {
	var e *ArgumentError
	return errors.As(err, &e)
}
