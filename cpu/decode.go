package cpu

// Opcode values for the instruction families covered by the codec.
const (
	opcodeR      = uint32(0x33)
	opcodeI      = uint32(0x13)
	opcodeLoad   = uint32(0x03)
	opcodeJalr   = uint32(0x67)
	opcodeStore  = uint32(0x23)
	opcodeBranch = uint32(0x63)
	opcodeJal    = uint32(0x6f)
)

func regRd(word uint32) int { return int((word >> 7) & 0x1f) }

func regRs1(word uint32) int { return int((word >> 15) & 0x1f) }

func regRs2(word uint32) int { return int((word >> 20) & 0x1f) }

func funct3(word uint32) uint32 { return (word >> 12) & 0x7 }

func funct7(word uint32) uint32 { return (word >> 25) & 0x7f }

// signExtend interprets the low 'bits' bits of v as two's-complement.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

// immI is the 12-bit I-type immediate. The sign bit is the top bit of the
// word, so an arithmetic shift extends it in one step.
func immI(word uint32) int32 {
	return int32(word) >> 20
}

// immS reassembles the 12-bit S-type immediate from its 5+7 bit split.
func immS(word uint32) int32 {
	v := (word>>7)&0x1f | ((word>>25)&0x7f)<<5
	return signExtend(v, 12)
}

// immB reassembles the 13-bit B-type immediate. The low bit is implicit
// zero; branch targets are halfword aligned.
func immB(word uint32) int32 {
	v := ((word>>8)&0xf)<<1 | ((word>>25)&0x3f)<<5 | ((word>>7)&0x1)<<11 | (word>>31)<<12
	return signExtend(v, 13)
}

// immJ reassembles the 21-bit J-type immediate, implicit zero low bit.
func immJ(word uint32) int32 {
	v := ((word>>21)&0x3ff)<<1 | ((word>>20)&0x1)<<11 | ((word>>12)&0xff)<<12 | (word>>31)<<20
	return signExtend(v, 21)
}

// Decode maps a 32-bit word to a typed instruction. Decode is total: a word
// outside the executed subset yields OpUnknown carrying the raw word, never
// an error.
func Decode(word uint32) (inst Instruction) {
	inst.Raw = word

	switch word & 0x7f {
	case opcodeR:
		inst.Rd, inst.Rs1, inst.Rs2 = regRd(word), regRs1(word), regRs2(word)
		switch {
		case funct3(word) == 0x0 && funct7(word) == 0x00:
			inst.Op = OpAdd
		case funct3(word) == 0x0 && funct7(word) == 0x20:
			inst.Op = OpSub
		case funct3(word) == 0x5 && funct7(word) == 0x00:
			inst.Op = OpSrl
		case funct3(word) == 0x7 && funct7(word) == 0x00:
			inst.Op = OpAnd
		case funct3(word) == 0x6 && funct7(word) == 0x00:
			inst.Op = OpOr
		case funct3(word) == 0x2 && funct7(word) == 0x00:
			inst.Op = OpSlt
		default:
			inst = Instruction{Raw: word}
		}
	case opcodeI:
		if funct3(word) == 0x0 {
			inst.Op = OpAddi
			inst.Rd, inst.Rs1, inst.Imm = regRd(word), regRs1(word), immI(word)
		}
	case opcodeLoad:
		if funct3(word) == 0x2 {
			inst.Op = OpLw
			inst.Rd, inst.Rs1, inst.Imm = regRd(word), regRs1(word), immI(word)
		}
	case opcodeJalr:
		if funct3(word) == 0x0 {
			inst.Op = OpJalr
			inst.Rd, inst.Rs1, inst.Imm = regRd(word), regRs1(word), immI(word)
		}
	case opcodeStore:
		if funct3(word) == 0x2 {
			inst.Op = OpSw
			inst.Rs1, inst.Rs2, inst.Imm = regRs1(word), regRs2(word), immS(word)
		}
	case opcodeBranch:
		switch funct3(word) {
		case 0x0:
			inst.Op = OpBeq
		case 0x1:
			inst.Op = OpBne
		case 0x4:
			inst.Op = OpBlt
		default:
			return
		}
		inst.Rs1, inst.Rs2, inst.Imm = regRs1(word), regRs2(word), immB(word)
	case opcodeJal:
		inst.Op = OpJal
		inst.Rd, inst.Imm = regRd(word), immJ(word)
	}

	return
}
