package emulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/madhavgautam402/rv32/cpu"
)

func assemble(t *testing.T, lines ...string) *cpu.Program {
	t.Helper()

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	assert.NoError(t, err)

	return prog
}

func TestRunArithmetic(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Load(assemble(t,
		"addi x1, x0, 5",
		"addi x2, x0, 10",
		"add x3, x1, x2",
	))

	_, err := emu.Run(100)
	assert.NoError(err)
	assert.Equal(int32(5), emu.Reg(1))
	assert.Equal(int32(10), emu.Reg(2))
	assert.Equal(int32(15), emu.Reg(3))
	assert.Equal(uint32(12), emu.Pc)
}

func TestRunCountingLoop(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Load(assemble(t,
		"addi x1, x0, 0",
		"addi x2, x0, 5",
		"loop: addi x1, x1, 1",
		"blt x1, x2, loop",
	))

	_, err := emu.Run(100)
	assert.NoError(err)
	assert.Equal(int32(5), emu.Reg(1))
	assert.Equal(uint32(16), emu.Pc)
}

func TestRunMemory(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Load(assemble(t,
		"addi x1, x0, 0x123",
		"sw x1, -4(sp)",
		"lw x2, -4(sp)",
	))

	_, err := emu.Run(100)
	assert.NoError(err)
	assert.Equal(int32(0x123), emu.Reg(2))
	assert.Equal(byte(0x23), emu.Memory[cpu.ResetSP-4])
	assert.Equal(byte(0x01), emu.Memory[cpu.ResetSP-3])
}

func TestRunCallReturn(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Load(assemble(t,
		"jal ra, double",         // 0
		"addi x3, x2, 0",         // 4
		"jal x0, end",            // 8
		"double: add x2, x1, x1", // 12
		"jalr x0, ra, 0",         // 16
		"end: addi x4, x0, 1",    // 20
	))
	emu.SetReg(1, 21)

	_, err := emu.Run(100)
	assert.NoError(err)
	assert.Equal(int32(42), emu.Reg(2))
	assert.Equal(int32(42), emu.Reg(3))
	assert.Equal(int32(1), emu.Reg(4))
}

// jalr onto its own address is the conventional halt; it ends the run
// without an error.
func TestRunSelfJumpHalts(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Load(assemble(t,
		"addi x1, x0, 7",
		"stop: jalr x0, x0, 4",
	))

	ticks, err := emu.Run(100)
	assert.NoError(err)
	assert.Equal(1, ticks)
	assert.Equal(int32(7), emu.Reg(1))
	assert.Equal(uint32(8), emu.Pc)
	assert.Equal(int32(0), emu.Reg(0))
}

func TestRunUnknownWord(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Words = []uint32{0x00500093, 0xffffffff}

	_, err := emu.Run(100)
	assert.Error(err)

	var runtime *ErrRuntime
	assert.ErrorAs(err, &runtime)
	assert.Equal(uint32(4), runtime.Addr)
	assert.ErrorIs(err, cpu.ErrUnknownWord(0))
	assert.Equal(int32(5), emu.Reg(1))
}

func TestRunTickBudget(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Load(assemble(t,
		"loop: jal x0, loop2",
		"loop2: jal x0, loop",
	))

	ticks, err := emu.Run(10)
	assert.ErrorIs(err, ErrTickBudget)
	assert.Equal(10, ticks)
}

func TestFetch(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Words = []uint32{0x11, 0x22}

	word, ok := emu.Fetch()
	assert.True(ok)
	assert.Equal(uint32(0x11), word)

	emu.Pc = 4
	word, ok = emu.Fetch()
	assert.True(ok)
	assert.Equal(uint32(0x22), word)

	emu.Pc = 8
	_, ok = emu.Fetch()
	assert.False(ok)

	emu.Pc = 2
	_, ok = emu.Fetch()
	assert.False(ok)
}

func TestTickPastImage(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	done, err := emu.Tick()
	assert.True(done)
	assert.NoError(err)
}
