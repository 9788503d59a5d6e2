package image

import (
	"errors"

	"github.com/madhavgautam402/rv32/translate"
)

var f = translate.From

var (
	ErrWordWidth    = errors.New(f("image word is not 32 digits"))
	ErrMemorySyntax = errors.New(f("memory line is not 'address byte'"))
)

// ErrImage wraps a parse error with its source location.
type ErrImage struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrImage) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
