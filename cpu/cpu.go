package cpu

import (
	"errors"
	"fmt"
	"log"
)

const (
	// ResetSP is the stack pointer value installed at reset. A design
	// choice of this machine, not an architectural requirement.
	ResetSP = 380
)

// Cpu is the architectural state: register file, program counter, and a
// sparse byte-addressable memory. One simulation owns one Cpu; nothing here
// is safe for concurrent use.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register [32]int32       // Register file. Index 0 reads as zero.
	Pc       uint32          // Program counter, word-aligned.
	Memory   map[uint32]byte // Unwritten addresses read as zero.
}

// NewCpu creates a CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Reset clears the registers and memory, installs the initial stack
// pointer, and rewinds the program counter to zero.
func (cpu *Cpu) Reset() {
	clear(cpu.Register[:])
	cpu.Register[2] = ResetSP
	cpu.Pc = 0
	cpu.Memory = map[uint32]byte{}
}

// Reg reads a register. Index 0 always yields zero.
func (cpu *Cpu) Reg(n int) int32 {
	if n == 0 {
		return 0
	}

	return cpu.Register[n]
}

// SetReg writes a register. Writes to index 0 are discarded. The stored
// value is the int32 two's-complement view, so arithmetic that overflowed
// 32 bits has already wrapped by the time it lands here.
func (cpu *Cpu) SetReg(n int, value int32) {
	if n == 0 {
		return
	}

	cpu.Register[n] = value
}

// ReadByte reads a single byte from memory.
func (cpu *Cpu) ReadByte(addr uint32) byte {
	return cpu.Memory[addr]
}

// WriteByte writes a single byte to memory.
func (cpu *Cpu) WriteByte(addr uint32, value byte) {
	cpu.Memory[addr] = value
}

// ReadHalf reads a little-endian 16-bit halfword as two byte accesses.
func (cpu *Cpu) ReadHalf(addr uint32) (value uint16) {
	for i := range uint32(2) {
		value |= uint16(cpu.ReadByte(addr+i)) << (i * 8)
	}

	return
}

// WriteHalf writes a little-endian 16-bit halfword as two byte accesses.
func (cpu *Cpu) WriteHalf(addr uint32, value uint16) {
	for i := range uint32(2) {
		cpu.WriteByte(addr+i, byte(value>>(i*8)))
	}
}

// ReadWord reads a little-endian 32-bit word as four byte accesses.
func (cpu *Cpu) ReadWord(addr uint32) (value uint32) {
	for i := range uint32(4) {
		value |= uint32(cpu.ReadByte(addr+i)) << (i * 8)
	}

	return
}

// WriteWord writes a little-endian 32-bit word as four byte accesses.
func (cpu *Cpu) WriteWord(addr uint32, value uint32) {
	for i := range uint32(4) {
		cpu.WriteByte(addr+i, byte(value>>(i*8)))
	}
}

// String returns the current register file and program counter.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("%4s: %v\n", "pc", BinaryFormat(int32(cpu.Pc)))
	for n, value := range cpu.Register {
		text += fmt.Sprintf("%4s: %v\n", RegisterName(n), BinaryFormat(value))
	}

	return
}

// Execute applies a decoded instruction to the state and returns the next
// program counter. The program counter itself is not advanced; Step does
// that.
//
// A jalr whose target equals the current program counter is reported as
// ErrSelfJump: no link register is written and the returned next counter
// still advances by four, so the surrounding driver decides whether to
// halt. OpUnknown returns ErrUnknownWord with no state change.
func (cpu *Cpu) Execute(inst Instruction) (next uint32, err error) {
	if cpu.Verbose {
		log.Printf("%08x: %v", cpu.Pc, inst)
	}

	next = cpu.Pc + 4

	rs1 := cpu.Reg(inst.Rs1)
	rs2 := cpu.Reg(inst.Rs2)

	switch inst.Op {
	case OpAdd:
		cpu.SetReg(inst.Rd, rs1+rs2)
	case OpSub:
		cpu.SetReg(inst.Rd, rs1-rs2)
	case OpSrl:
		cpu.SetReg(inst.Rd, int32(uint32(rs1)>>(uint32(rs2)&0x1f)))
	case OpAnd:
		cpu.SetReg(inst.Rd, rs1&rs2)
	case OpOr:
		cpu.SetReg(inst.Rd, rs1|rs2)
	case OpSlt:
		var flag int32
		if rs1 < rs2 {
			flag = 1
		}
		cpu.SetReg(inst.Rd, flag)
	case OpAddi:
		cpu.SetReg(inst.Rd, rs1+inst.Imm)
	case OpLw:
		cpu.SetReg(inst.Rd, int32(cpu.ReadWord(uint32(rs1+inst.Imm))))
	case OpJalr:
		target := uint32(rs1+inst.Imm) &^ 1
		if target == cpu.Pc {
			err = ErrSelfJump
			return
		}
		cpu.SetReg(inst.Rd, int32(cpu.Pc+4))
		next = target
	case OpSw:
		cpu.WriteWord(uint32(rs1+inst.Imm), uint32(rs2))
	case OpBeq:
		if rs1 == rs2 {
			next = cpu.Pc + uint32(inst.Imm)
		}
	case OpBne:
		if rs1 != rs2 {
			next = cpu.Pc + uint32(inst.Imm)
		}
	case OpBlt:
		if rs1 < rs2 {
			next = cpu.Pc + uint32(inst.Imm)
		}
	case OpJal:
		cpu.SetReg(inst.Rd, int32(cpu.Pc+4))
		next = cpu.Pc + uint32(inst.Imm)
	default:
		err = ErrUnknownWord(inst.Raw)
		return
	}

	return
}

// Step executes one instruction and commits the next program counter. A
// self-jump still advances the counter; the error is propagated for the
// driver to act on.
func (cpu *Cpu) Step(inst Instruction) (err error) {
	next, err := cpu.Execute(inst)
	if err != nil && !errors.Is(err, ErrSelfJump) {
		return
	}

	cpu.Pc = next

	return
}
