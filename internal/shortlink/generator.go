package shortlink

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

const (
	// DefaultAlphabet is the set of symbols short codes are drawn from.
	DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DefaultCodeLength is the number of symbols in a short code.
	DefaultCodeLength = 6

	MinCodeLength = 4
	MaxCodeLength = 32
)

// CodeGenerator returns a fresh random code on each call.
type CodeGenerator func() string

// NewCodeGenerator returns a generator drawing length symbols uniformly from alphabet.
func NewCodeGenerator(alphabet string, length int) (CodeGenerator, error) {
	if length < MinCodeLength || length > MaxCodeLength {
		return nil, fmt.Errorf("code length %d out of range [%d, %d]", length, MinCodeLength, MaxCodeLength)
	}

	if len(alphabet) < 2 {
		return nil, fmt.Errorf("alphabet needs at least 2 symbols, got %d", len(alphabet))
	}

	gen, err := nanoid.CustomASCII(alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("create code generator: %w", err)
	}

	return gen, nil
}

// IsValidCode reports whether code could have been produced from alphabet.
func IsValidCode(code Code, alphabet string) bool {
	if len(code) == 0 || len(code) > MaxCodeLength {
		return false
	}

	for i := 0; i < len(code); i++ {
		if !containsByte(alphabet, code[i]) {
			return false
		}
	}

	return true
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}

	return false
}
