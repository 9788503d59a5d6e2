// Package emulator drives the fetch-decode-execute loop over a cpu.Cpu and
// an instruction image. Halt policy lives here, not in the core: the run
// ends when the program counter walks off the image, when a jalr self-jump
// is reported, or when a fetched word fails to decode.
package emulator

import (
	"errors"
	"log"
	"slices"

	"github.com/madhavgautam402/rv32/cpu"
)

// Emulator owns one simulation: the architectural state plus the
// instruction words, one per program address stepping by four.
type Emulator struct {
	Verbose bool // Set to enable verbose logging.

	*cpu.Cpu
	Words []uint32
}

// NewEmulator creates an emulator with a freshly reset CPU.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Load installs an assembled program as the instruction image.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Words = slices.Clone(prog.Words)
}

// Fetch returns the instruction word at the current program counter, or
// ok=false when the counter is unaligned or past the image.
func (emu *Emulator) Fetch() (word uint32, ok bool) {
	if emu.Pc%4 != 0 {
		return
	}

	index := emu.Pc / 4
	if index >= uint32(len(emu.Words)) {
		return
	}

	return emu.Words[index], true
}

// Tick fetches, decodes, and executes a single instruction. done reports
// that the run halted; err is fatal and wraps the faulting address.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	word, ok := emu.Fetch()
	if !ok {
		done = true
		return
	}

	pc := emu.Pc
	err = emu.Cpu.Step(cpu.Decode(word))
	if errors.Is(err, cpu.ErrSelfJump) {
		// The jump spins on its own address; halt rather than loop.
		if emu.Verbose {
			log.Printf("%08x: self-jump, halting", pc)
		}
		done, err = true, nil
		return
	}
	if err != nil {
		done = true
		err = &ErrRuntime{Addr: pc, Err: err}
	}

	return
}

// Run ticks until the program halts or the budget is spent.
func (emu *Emulator) Run(maxTicks int) (ticks int, err error) {
	for ticks < maxTicks {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
		ticks++
	}

	err = ErrTickBudget

	return
}
