// Package cpu implements the instruction codec and execution engine for a
// reduced RV32I subset.
//
// The architectural state is 32 signed 32-bit registers (x0 hardwired to
// zero), a word-aligned program counter, and a sparse byte-addressable
// little-endian memory. Decode is a total function from a 32-bit word to a
// typed Instruction; Execute applies one instruction and yields the next
// program counter.
//
// The assembler accepts a wider mnemonic surface than the executor
// implements: sll, sra, slt/sltu variants, xor/or/and immediates, byte and
// halfword loads and stores, and the bge/bltu/bgeu branches all encode to
// valid words, but decode to Unknown and cannot be executed. lui and auipc
// are rejected outright. This asymmetry is deliberate and preserved.
package cpu
