package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// abiNames are the standard calling-convention names, indexed by register
// number. RegisterName and the state dump use these.
var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// registerMap resolves register operand spellings. "fp" is an alias of s0.
var registerMap map[string]int

func init() {
	registerMap = map[string]int{"fp": 8}
	for n, name := range abiNames {
		registerMap[name] = n
	}
}

// RegisterName returns the ABI name for a register number, or xN outside
// the architectural range.
func RegisterName(n int) string {
	if n < 0 || n > 31 {
		return fmt.Sprintf("x%d", n)
	}
	return abiNames[n]
}

// RegisterNumber resolves a register operand: an ABI name, an alias, or a
// literal xN with 0 <= N <= 31.
func RegisterNumber(name string) (reg int, err error) {
	lower := strings.ToLower(name)

	reg, ok := registerMap[lower]
	if ok {
		return
	}

	if strings.HasPrefix(lower, "x") {
		n, nerr := strconv.Atoi(lower[1:])
		if nerr == nil && n >= 0 && n <= 31 {
			reg = n
			return
		}
	}

	err = ErrRegisterInvalid(name)
	return
}
