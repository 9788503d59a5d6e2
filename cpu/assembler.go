package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// encoding describes how one mnemonic packs into an instruction word.
type encoding struct {
	format Format
	opcode uint32
	funct3 uint32
	funct7 uint32
	shift  bool // I-type with a 5-bit shift amount in place of imm
	memory bool // offset(base) operand form
}

// mnemonics is the full accepted surface. It is deliberately wider than the
// executed subset; see the package comment.
var mnemonics = map[string]encoding{
	"add":  {format: FormatR, opcode: opcodeR, funct3: 0x0},
	"sub":  {format: FormatR, opcode: opcodeR, funct3: 0x0, funct7: 0x20},
	"sll":  {format: FormatR, opcode: opcodeR, funct3: 0x1},
	"slt":  {format: FormatR, opcode: opcodeR, funct3: 0x2},
	"sltu": {format: FormatR, opcode: opcodeR, funct3: 0x3},
	"xor":  {format: FormatR, opcode: opcodeR, funct3: 0x4},
	"srl":  {format: FormatR, opcode: opcodeR, funct3: 0x5},
	"sra":  {format: FormatR, opcode: opcodeR, funct3: 0x5, funct7: 0x20},
	"or":   {format: FormatR, opcode: opcodeR, funct3: 0x6},
	"and":  {format: FormatR, opcode: opcodeR, funct3: 0x7},

	"addi":  {format: FormatI, opcode: opcodeI, funct3: 0x0},
	"slti":  {format: FormatI, opcode: opcodeI, funct3: 0x2},
	"sltiu": {format: FormatI, opcode: opcodeI, funct3: 0x3},
	"xori":  {format: FormatI, opcode: opcodeI, funct3: 0x4},
	"ori":   {format: FormatI, opcode: opcodeI, funct3: 0x6},
	"andi":  {format: FormatI, opcode: opcodeI, funct3: 0x7},
	"slli":  {format: FormatI, opcode: opcodeI, funct3: 0x1, shift: true},
	"srli":  {format: FormatI, opcode: opcodeI, funct3: 0x5, shift: true},
	"srai":  {format: FormatI, opcode: opcodeI, funct3: 0x5, funct7: 0x20, shift: true},

	"lb":  {format: FormatI, opcode: opcodeLoad, funct3: 0x0, memory: true},
	"lh":  {format: FormatI, opcode: opcodeLoad, funct3: 0x1, memory: true},
	"lw":  {format: FormatI, opcode: opcodeLoad, funct3: 0x2, memory: true},
	"lbu": {format: FormatI, opcode: opcodeLoad, funct3: 0x4, memory: true},
	"lhu": {format: FormatI, opcode: opcodeLoad, funct3: 0x5, memory: true},

	"jalr": {format: FormatI, opcode: opcodeJalr, funct3: 0x0},

	"sb": {format: FormatS, opcode: opcodeStore, funct3: 0x0, memory: true},
	"sh": {format: FormatS, opcode: opcodeStore, funct3: 0x1, memory: true},
	"sw": {format: FormatS, opcode: opcodeStore, funct3: 0x2, memory: true},

	"beq":  {format: FormatB, opcode: opcodeBranch, funct3: 0x0},
	"bne":  {format: FormatB, opcode: opcodeBranch, funct3: 0x1},
	"blt":  {format: FormatB, opcode: opcodeBranch, funct3: 0x4},
	"bge":  {format: FormatB, opcode: opcodeBranch, funct3: 0x5},
	"bltu": {format: FormatB, opcode: opcodeBranch, funct3: 0x6},
	"bgeu": {format: FormatB, opcode: opcodeBranch, funct3: 0x7},

	"jal": {format: FormatJ, opcode: opcodeJal},
}

// reserved mnemonics are part of the source ISA but carry no valid encoding
// here. U-type never decodes; refusing is better than inventing a layout.
var reserved = map[string]bool{
	"lui":   true,
	"auipc": true,
}

// parseImmediate parses a decimal or 0x hexadecimal literal and checks it
// against the signed range of a 'bits'-wide field.
func parseImmediate(token string, bits uint) (value int32, err error) {
	v64, perr := strconv.ParseInt(token, 0, 64)
	if perr != nil {
		err = ErrParseNumber(token)
		return
	}

	return checkImmediate(v64, bits)
}

func checkImmediate(v64 int64, bits uint) (value int32, err error) {
	minVal := -(int64(1) << (bits - 1))
	maxVal := (int64(1) << (bits - 1)) - 1
	if v64 < minVal || v64 > maxVal {
		err = &ErrImmediateRange{Value: v64, Bits: bits}
		return
	}

	value = int32(v64)
	return
}

// displacement resolves a branch or jump target: a label in the table
// encodes as label_address - addr, anything else must be a literal
// displacement.
func displacement(token string, bits uint, addr uint32, labels map[string]uint32) (value int32, err error) {
	if target, ok := labels[token]; ok {
		return checkImmediate(int64(target)-int64(addr), bits)
	}

	value, err = parseImmediate(token, bits)
	if _, notNumber := err.(ErrParseNumber); notNumber && labelLike(token) {
		err = ErrLabelMissing(token)
	}

	return
}

func labelLike(token string) bool {
	c := token[0]
	return c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitOffset splits an offset(base) operand. An empty offset means zero.
func splitOffset(token string) (offset, base string, err error) {
	b := strings.Index(token, "(")
	e := strings.Index(token, ")")
	if b < 0 || e < b || e != len(token)-1 {
		err = ErrOffsetSyntax
		return
	}

	offset = token[:b]
	if offset == "" {
		offset = "0"
	}
	base = token[b+1 : e]

	return
}

func encodeR(enc encoding, rd, rs1, rs2 int) uint32 {
	return enc.funct7<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | enc.funct3<<12 | uint32(rd)<<7 | enc.opcode
}

func encodeI(enc encoding, rd, rs1 int, imm int32) uint32 {
	return (uint32(imm)&0xfff)<<20 | uint32(rs1)<<15 | enc.funct3<<12 | uint32(rd)<<7 | enc.opcode
}

func encodeShift(enc encoding, rd, rs1 int, shamt int32) uint32 {
	return enc.funct7<<25 | (uint32(shamt)&0x1f)<<20 | uint32(rs1)<<15 | enc.funct3<<12 | uint32(rd)<<7 | enc.opcode
}

func encodeS(enc encoding, rs1, rs2 int, imm int32) uint32 {
	v := uint32(imm) & 0xfff
	return (v>>5)<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | enc.funct3<<12 | (v&0x1f)<<7 | enc.opcode
}

func encodeB(enc encoding, rs1, rs2 int, imm int32) uint32 {
	v := uint32(imm) & 0x1ffe
	return (v>>12&0x1)<<31 | (v>>5&0x3f)<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 |
		enc.funct3<<12 | (v>>1&0xf)<<8 | (v>>11&0x1)<<7 | enc.opcode
}

func encodeJ(enc encoding, rd int, imm int32) uint32 {
	v := uint32(imm) & 0x1ffffe
	return (v>>20&0x1)<<31 | (v>>1&0x3ff)<<21 | (v>>11&0x1)<<20 | (v>>12&0xff)<<12 |
		uint32(rd)<<7 | enc.opcode
}

// Encode turns a mnemonic and its operand tokens into a 32-bit instruction
// word. addr is the byte address the instruction will occupy; labels is the
// complete label table, consulted for branch and jump targets. The bit
// layout is the exact inverse of Decode for every operation both sides
// cover.
func Encode(mnemonic string, operands []string, addr uint32, labels map[string]uint32) (word uint32, err error) {
	name := strings.ToLower(mnemonic)

	enc, ok := mnemonics[name]
	if !ok {
		if reserved[name] {
			err = ErrMnemonicReserved
		} else {
			err = ErrMnemonicUnknown(mnemonic)
		}
		return
	}

	switch enc.format {
	case FormatR:
		if len(operands) != 3 {
			err = ErrOperandCount
			return
		}
		var rd, rs1, rs2 int
		if rd, err = RegisterNumber(operands[0]); err != nil {
			return
		}
		if rs1, err = RegisterNumber(operands[1]); err != nil {
			return
		}
		if rs2, err = RegisterNumber(operands[2]); err != nil {
			return
		}
		word = encodeR(enc, rd, rs1, rs2)

	case FormatI:
		var rd, rs1 int
		var imm int32
		switch {
		case enc.memory: // lw rd, offset(rs1)
			if len(operands) != 2 {
				err = ErrOperandCount
				return
			}
			var offset, base string
			if offset, base, err = splitOffset(operands[1]); err != nil {
				return
			}
			if rd, err = RegisterNumber(operands[0]); err != nil {
				return
			}
			if rs1, err = RegisterNumber(base); err != nil {
				return
			}
			if imm, err = parseImmediate(offset, 12); err != nil {
				return
			}
			word = encodeI(enc, rd, rs1, imm)
		case enc.shift: // slli rd, rs1, shamt
			if len(operands) != 3 {
				err = ErrOperandCount
				return
			}
			if rd, err = RegisterNumber(operands[0]); err != nil {
				return
			}
			if rs1, err = RegisterNumber(operands[1]); err != nil {
				return
			}
			var shamt int32
			if shamt, err = parseImmediate(operands[2], 6); err != nil {
				return
			}
			if shamt < 0 || shamt > 31 {
				err = &ErrImmediateRange{Value: int64(shamt), Bits: 5}
				return
			}
			word = encodeShift(enc, rd, rs1, shamt)
		default: // addi rd, rs1, imm
			if len(operands) != 3 {
				err = ErrOperandCount
				return
			}
			if rd, err = RegisterNumber(operands[0]); err != nil {
				return
			}
			if rs1, err = RegisterNumber(operands[1]); err != nil {
				return
			}
			if imm, err = parseImmediate(operands[2], 12); err != nil {
				return
			}
			word = encodeI(enc, rd, rs1, imm)
		}

	case FormatS: // sw rs2, offset(rs1)
		if len(operands) != 2 {
			err = ErrOperandCount
			return
		}
		var offset, base string
		if offset, base, err = splitOffset(operands[1]); err != nil {
			return
		}
		var rs1, rs2 int
		if rs2, err = RegisterNumber(operands[0]); err != nil {
			return
		}
		if rs1, err = RegisterNumber(base); err != nil {
			return
		}
		var imm int32
		if imm, err = parseImmediate(offset, 12); err != nil {
			return
		}
		word = encodeS(enc, rs1, rs2, imm)

	case FormatB: // beq rs1, rs2, label-or-displacement
		if len(operands) != 3 {
			err = ErrOperandCount
			return
		}
		var rs1, rs2 int
		if rs1, err = RegisterNumber(operands[0]); err != nil {
			return
		}
		if rs2, err = RegisterNumber(operands[1]); err != nil {
			return
		}
		var imm int32
		if imm, err = displacement(operands[2], 13, addr, labels); err != nil {
			return
		}
		word = encodeB(enc, rs1, rs2, imm)

	case FormatJ: // jal rd, label-or-displacement
		if len(operands) != 2 {
			err = ErrOperandCount
			return
		}
		var rd int
		if rd, err = RegisterNumber(operands[0]); err != nil {
			return
		}
		var imm int32
		if imm, err = displacement(operands[1], 21, addr, labels); err != nil {
			return
		}
		word = encodeJ(enc, rd, imm)
	}

	return
}

// Assembler is a two-pass assembler. Pass one records every label's byte
// address; pass two encodes each instruction line against the complete
// table, which is what makes forward references work.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Labels map[string]uint32 // Map of labels to instruction byte addresses.
	Equate map[string]string // Map of equates.
}

var (
	parenExpr = regexp.MustCompile(`\$\([^\$]*\)`)
)

// parenEval does compile-time $(...) evaluations. Integer equates are
// visible as bindings.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, verr := strconv.ParseInt(str, 0, 64)
		if verr != nil {
			// Non-integer equates may be registers or labels.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = st_int64
	return
}

// parseLine cleans a source line into mnemonic + operand words. Comments
// are stripped, $() expressions evaluated, equates substituted, and label
// prefixes recorded at addr. An empty result means no instruction.
func (asm *Assembler) parseLine(text string, addr uint32) (words []string, err error) {
	line, _, _ := strings.Cut(text, "#")
	line, _, _ = strings.Cut(line, ";")

	// Do $() evaluations
	line = parenExpr.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	line = strings.ReplaceAll(line, ",", " ")
	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		if _, ok := asm.Equate[words[1]]; ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		if equate, ok := asm.Equate[word]; ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if _, ok := asm.Labels[label]; ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Labels[label] = addr
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Labels = map[string]uint32{}
	asm.Equate = map[string]string{}

	type statement struct {
		lineno int
		text   string
		words  []string
	}

	// Pass 1: clean lines, bind labels to instruction addresses.
	var stmts []statement
	addr := uint32(0)
	for scanner := bufio.NewScanner(input); scanner.Scan(); {
		lineno++
		line = scanner.Text()

		if asm.Verbose {
			log.Printf("%v: %v", lineno, line)
		}

		var words []string
		words, err = asm.parseLine(line, addr)
		if err != nil {
			return
		}
		if len(words) == 0 {
			continue
		}

		stmts = append(stmts, statement{lineno: lineno, text: line, words: words})
		addr += 4
	}

	// Pass 2: encode against the complete label table.
	words := make([]uint32, 0, len(stmts))
	for n, stmt := range stmts {
		lineno, line = stmt.lineno, stmt.text

		var word uint32
		word, err = Encode(stmt.words[0], stmt.words[1:], uint32(n)*4, asm.Labels)
		if err != nil {
			return
		}
		words = append(words, word)
	}

	prog = &Program{Words: words}

	return
}
