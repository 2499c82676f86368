package util

import (
	"errors"
	"fmt"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

// Unwrap exposes both the wrapped error and the code, so errors.Is matches either of them.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.orig != nil {
		errs = append(errs, e.orig)
	}
	if e.code != nil {
		errs = append(errs, e.code)
	}
	return errs
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrInvariantViolation = errors.New("invariant violation")
	ErrBadParamInput      = errors.New("given param is not valid")
)

func AssertPanic(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
