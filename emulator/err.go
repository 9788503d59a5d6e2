package emulator

import (
	"errors"

	"github.com/madhavgautam402/rv32/translate"
)

var f = translate.From

var (
	ErrTickBudget = errors.New(f("tick budget exhausted"))
)

// ErrRuntime indicates the program address of a fatal execute error.
type ErrRuntime struct {
	Addr uint32
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%08x %v", err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
