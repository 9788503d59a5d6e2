package cpu

import (
	"errors"

	"github.com/madhavgautam402/rv32/translate"
)

var f = translate.From

var (
	// Execute errors
	ErrSelfJump = errors.New(f("jalr target is its own address"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrOperandCount     = errors.New(f("wrong operand count"))
	ErrOffsetSyntax     = errors.New(f("operand is not offset(base)"))
	ErrMnemonicReserved = errors.New(f("mnemonic recognized but has no valid encoding"))
)

// ErrUnknownWord is a fetched word that decodes to no known
// opcode/funct combination.
type ErrUnknownWord uint32

func (eu ErrUnknownWord) Error() string {
	return f("unrecognized instruction word 0x%08x", uint32(eu))
}

func (eu ErrUnknownWord) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownWord)
	return
}

// ErrMnemonicUnknown is an opcode text matching no supported instruction.
type ErrMnemonicUnknown string

func (em ErrMnemonicUnknown) Error() string {
	return f("unknown mnemonic '%v'", string(em))
}

// ErrRegisterInvalid is an operand that is neither a register name nor a
// valid xN form.
type ErrRegisterInvalid string

func (er ErrRegisterInvalid) Error() string {
	return f("'%v' is not a register", string(er))
}

// ErrParseNumber is an operand that does not parse as a numeric literal.
type ErrParseNumber string

func (ep ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(ep))
}

// ErrParseExpression is a $(...) expression that failed to evaluate.
type ErrParseExpression string

func (ep ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(ep))
}

// ErrLabelMissing is a branch or jump target with no label definition.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrImmediateRange is a numeric operand outside the signed range of its
// encoding field.
type ErrImmediateRange struct {
	Value int64
	Bits  uint
}

func (ei *ErrImmediateRange) Error() string {
	return f("immediate %v out of range for %v-bit field", ei.Value, ei.Bits)
}

// ErrSyntax wraps an assembler error with its source location.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
