package image

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextRoundTrip(t *testing.T) {
	assert := assert.New(t)

	words := []uint32{0x00500093, 0x00a00113, 0x002081b3, 0, 0xffffffff}

	var buf strings.Builder
	assert.NoError(WriteText(&buf, words))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(len(words), len(lines))
	for _, l := range lines {
		assert.Equal(32, len(l))
	}

	read, err := ReadText(strings.NewReader(buf.String()))
	assert.NoError(err)
	assert.Equal(words, read)
}

func TestReadText(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		"# instruction image",
		"",
		"00000000010100000000000010010011",
		"0b00000000101000000000000100010011   # with marker",
		"   ",
	}, "\n")

	words, err := ReadText(strings.NewReader(input))
	assert.NoError(err)
	assert.Equal([]uint32{0x00500093, 0x00a00113}, words)
}

func TestReadTextErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		input    string
		expected error
	}){
		{"short", "1010", ErrWordWidth},
		{"long", strings.Repeat("0", 33), ErrWordWidth},
		{"not_binary", "0000000001010000000000001001001x", nil},
	}

	for _, entry := range table {
		_, err := ReadText(strings.NewReader(entry.input))
		assert.Error(err, entry.name)

		var image *ErrImage
		assert.True(errors.As(err, &image), entry.name)
		assert.Equal(1, image.LineNo, entry.name)
		if entry.expected != nil {
			assert.ErrorIs(err, entry.expected, entry.name)
		}
	}
}

func TestReadMemory(t *testing.T) {
	assert := assert.New(t)

	input := strings.Join([]string{
		"# initial memory",
		"100 0x2a",
		"0x65 255",
		"",
		"102 0 # zero is fine",
	}, "\n")

	memory, err := ReadMemory(strings.NewReader(input))
	assert.NoError(err)
	assert.Equal(map[uint32]byte{100: 0x2a, 101: 255, 102: 0}, memory)
}

func TestReadMemoryErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		input    string
		expected error
	}){
		{"one_field", "100", ErrMemorySyntax},
		{"three_fields", "100 1 2", ErrMemorySyntax},
		{"bad_address", "here 1", nil},
		{"byte_range", "100 256", nil},
	}

	for _, entry := range table {
		_, err := ReadMemory(strings.NewReader(entry.input))
		assert.Error(err, entry.name)

		var image *ErrImage
		assert.True(errors.As(err, &image), entry.name)
		if entry.expected != nil {
			assert.ErrorIs(err, entry.expected, entry.name)
		}
	}
}
