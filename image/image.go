// Package image reads and writes the textual images the toolchain
// exchanges: instruction images as one fixed-width 0/1 line per word, and
// initial memory images as address/byte pairs.
package image

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteText writes one 32-character 0/1 line per instruction word.
func WriteText(w io.Writer, words []uint32) (err error) {
	for _, word := range words {
		_, err = fmt.Fprintf(w, "%032b\n", word)
		if err != nil {
			return
		}
	}

	return
}

// ReadText parses an instruction image: one 32-digit binary word per line,
// an optional 0b marker allowed. Blank lines and # comments are skipped.
func ReadText(r io.Reader) (words []uint32, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrImage{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner := bufio.NewScanner(r); scanner.Scan(); {
		lineno++
		line = scanner.Text()

		text, _, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		text = strings.TrimPrefix(text, "0b")
		if len(text) != 32 {
			err = ErrWordWidth
			return
		}

		var word uint64
		word, err = strconv.ParseUint(text, 2, 32)
		if err != nil {
			return
		}

		words = append(words, uint32(word))
	}

	return
}

// ReadMemory parses an initial memory image: one "address byte" pair per
// line, both decimal or 0x hexadecimal. Blank lines and # comments are
// skipped.
func ReadMemory(r io.Reader) (memory map[uint32]byte, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrImage{LineNo: lineno, Line: line, Err: err}
		}
	}()

	memory = map[uint32]byte{}

	for scanner := bufio.NewScanner(r); scanner.Scan(); {
		lineno++
		line = scanner.Text()

		text, _, _ := strings.Cut(line, "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			err = ErrMemorySyntax
			return
		}

		var addr, value uint64
		addr, err = strconv.ParseUint(fields[0], 0, 32)
		if err != nil {
			return
		}
		value, err = strconv.ParseUint(fields[1], 0, 8)
		if err != nil {
			return
		}

		memory[uint32(addr)] = byte(value)
	}

	return
}
