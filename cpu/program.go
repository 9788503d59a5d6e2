package cpu

import (
	"fmt"
	"iter"
)

// Program is an assembled sequence of instruction words, one per word
// address starting at zero.
type Program struct {
	Words []uint32
}

// Codes iterates (address, word) pairs in program order.
func (prog *Program) Codes() iter.Seq2[uint32, uint32] {
	return func(yield func(addr uint32, word uint32) bool) {
		for n, word := range prog.Words {
			if !yield(uint32(n)*4, word) {
				return
			}
		}
	}
}

// Text renders the program as the image format the simulator consumes: one
// fixed-width 0/1 line per instruction word, in program order.
func (prog *Program) Text() (lines []string) {
	for _, word := range prog.Words {
		lines = append(lines, fmt.Sprintf("%032b", word))
	}

	return
}

// BinaryFormat renders a 32-bit value as a 0b-prefixed 32-character binary
// string. Negative values are masked to their unsigned bit pattern first.
func BinaryFormat(value int32) string {
	return fmt.Sprintf("0b%032b", uint32(value))
}
