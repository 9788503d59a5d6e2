package cpu

import (
	"fmt"
)

// Format is an instruction encoding shape.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FormatR       = Format(0) // R
	FormatI       = Format(1) // I
	FormatS       = Format(2) // S
	FormatB       = Format(3) // B
	FormatJ       = Format(4) // J
	FormatUnknown = Format(5) // unknown
)

// Op is an executable operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OpUnknown = Op(0)  // unknown
	OpAdd     = Op(1)  // add
	OpSub     = Op(2)  // sub
	OpSrl     = Op(3)  // srl
	OpAnd     = Op(4)  // and
	OpOr      = Op(5)  // or
	OpSlt     = Op(6)  // slt
	OpAddi    = Op(7)  // addi
	OpLw      = Op(8)  // lw
	OpJalr    = Op(9)  // jalr
	OpSw      = Op(10) // sw
	OpBeq     = Op(11) // beq
	OpBne     = Op(12) // bne
	OpBlt     = Op(13) // blt
	OpJal     = Op(14) // jal
)

// Format returns the encoding shape of the operation.
func (op Op) Format() Format {
	switch op {
	case OpAdd, OpSub, OpSrl, OpAnd, OpOr, OpSlt:
		return FormatR
	case OpAddi, OpLw, OpJalr:
		return FormatI
	case OpSw:
		return FormatS
	case OpBeq, OpBne, OpBlt:
		return FormatB
	case OpJal:
		return FormatJ
	}

	return FormatUnknown
}

// Instruction is a decoded instruction word. Op selects the operation and
// determines which of the remaining fields are meaningful. Every immediate
// is already sign-extended from its native field width. Raw holds the
// original word for diagnostics.
type Instruction struct {
	Op  Op
	Rd  int
	Rs1 int
	Rs2 int
	Imm int32
	Raw uint32
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() (out string) {
	switch inst.Op.Format() {
	case FormatR:
		out = fmt.Sprintf("%v %v, %v, %v", inst.Op, RegisterName(inst.Rd), RegisterName(inst.Rs1), RegisterName(inst.Rs2))
	case FormatI:
		if inst.Op == OpLw {
			out = fmt.Sprintf("%v %v, %v(%v)", inst.Op, RegisterName(inst.Rd), inst.Imm, RegisterName(inst.Rs1))
		} else {
			out = fmt.Sprintf("%v %v, %v, %v", inst.Op, RegisterName(inst.Rd), RegisterName(inst.Rs1), inst.Imm)
		}
	case FormatS:
		out = fmt.Sprintf("%v %v, %v(%v)", inst.Op, RegisterName(inst.Rs2), inst.Imm, RegisterName(inst.Rs1))
	case FormatB:
		out = fmt.Sprintf("%v %v, %v, %v", inst.Op, RegisterName(inst.Rs1), RegisterName(inst.Rs2), inst.Imm)
	case FormatJ:
		out = fmt.Sprintf("%v %v, %v", inst.Op, RegisterName(inst.Rd), inst.Imm)
	default:
		out = fmt.Sprintf("%v 0x%08x", inst.Op, inst.Raw)
	}

	return
}
