package xmlscene

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates malformed XML or an unparsable numeric token.
	ErrParse = errors.New("parse error")

	// ErrMissingField indicates a required element or attribute is absent.
	ErrMissingField = errors.New("missing field")

	// ErrDegenerateBasis indicates a look-at whose direction cannot form a basis with its up vector.
	ErrDegenerateBasis = errors.New("degenerate basis")

	// ErrFileNotFound indicates a referenced geometry file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedVariant indicates a transform tag outside the known set.
	ErrUnsupportedVariant = errors.New("unsupported variant")
)

// ElementError ties a failure to the element path it was raised at,
// e.g. "scene/mesh[2]/transform/matrix".
type ElementError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ElementError) Error() string {
	msg := e.Err.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Path == "" {
		return msg
	}
	return e.Path + ": " + msg
}

func (e *ElementError) Unwrap() error { return e.Err }

func elementErrorf(path string, kind error, format string, args ...any) error {
	return &ElementError{Path: path, Msg: fmt.Sprintf(format, args...), Err: kind}
}

// atPath fills in the element path of errors raised by the value parsers.
func atPath(path string, err error) error {
	var ee *ElementError
	if errors.As(err, &ee) && ee.Path == "" {
		ee.Path = path
	}
	return err
}
