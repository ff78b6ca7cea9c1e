package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PoolCodeAlphabet is the set of characters pool codes are drawn from
const PoolCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultPoolCodeLength is the length of generated pool codes
const DefaultPoolCodeLength = 6

// CodeGenerator produces candidate join codes
type CodeGenerator interface {
	Generate() (string, error)
}

// RandomCodeGenerator draws each character uniformly from PoolCodeAlphabet
type RandomCodeGenerator struct {
	Length int
}

// NewRandomCodeGenerator creates a generator for codes of the given length.
// A non-positive length falls back to DefaultPoolCodeLength.
func NewRandomCodeGenerator(length int) *RandomCodeGenerator {
	if length <= 0 {
		length = DefaultPoolCodeLength
	}
	return &RandomCodeGenerator{Length: length}
}

func (g *RandomCodeGenerator) Generate() (string, error) {
	max := big.NewInt(int64(len(PoolCodeAlphabet)))
	code := make([]byte, g.Length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		code[i] = PoolCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
