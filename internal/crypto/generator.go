package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

// pwchars is the full character table. The alphanumeric alphabet is its first 62 characters.
const pwchars = "0123456789" +
	"abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"~`!@#$%^&*()_+=-{}|\\][:\"';<>?/."

const alphanumericSize = 62

var (
	ErrInvalidArgument         = errors.New("invalid argument")
	ErrRandomSourceUnavailable = errors.New("secure random source unavailable")
	ErrUnknownAlphabet         = fmt.Errorf("%w: unknown alphabet", ErrInvalidArgument)
)

// Alphabet selects one of the fixed character sets a password is drawn from.
type Alphabet int

const (
	Alphanumeric Alphabet = iota
	AlphanumericWithSymbols
)

// Alphabets lists every supported alphabet in declaration order.
var Alphabets = []Alphabet{Alphanumeric, AlphanumericWithSymbols}

// AlphabetFor maps the include-special-characters flag to an alphabet.
func AlphabetFor(includeSpecialCharacters bool) Alphabet {
	if includeSpecialCharacters {
		return AlphanumericWithSymbols
	}
	return Alphanumeric
}

// ParseAlphabet resolves an alphabet by name. Matching is case-insensitive.
func ParseAlphabet(name string) (Alphabet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alphanumeric", "alnum":
		return Alphanumeric, nil
	case "alphanumeric-symbols", "symbols":
		return AlphanumericWithSymbols, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownAlphabet, name)
}

// Chars returns the ordered characters of the alphabet, or "" for an unknown value.
func (a Alphabet) Chars() string {
	switch a {
	case Alphanumeric:
		return pwchars[:alphanumericSize]
	case AlphanumericWithSymbols:
		return pwchars
	}
	return ""
}

// Size returns the number of characters in the alphabet.
func (a Alphabet) Size() int {
	return len(a.Chars())
}

func (a Alphabet) String() string {
	switch a {
	case Alphanumeric:
		return "alphanumeric"
	case AlphanumericWithSymbols:
		return "alphanumeric-symbols"
	}
	return fmt.Sprintf("Alphabet(%d)", int(a))
}

// Generator draws passwords from a random byte source.
// It holds no state besides the source and is safe for concurrent use
// whenever the source is; crypto/rand.Reader is.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a Generator reading from r, or from crypto/rand.Reader when r is nil.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

var defaultGenerator = NewGenerator(nil)

// Generate creates a password of the given length using the system's secure random source.
// includeSpecialCharacters selects the 93 character alphabet instead of the 62 character one.
func Generate(length int, includeSpecialCharacters bool) (string, error) {
	return defaultGenerator.Generate(length, AlphabetFor(includeSpecialCharacters))
}

// Generate creates a password of exactly length characters, each drawn uniformly
// from alphabet. A zero length yields an empty password.
func (g *Generator) Generate(length int, alphabet Alphabet) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("%w: length must not be negative, got %d", ErrInvalidArgument, length)
	}

	chars := alphabet.Chars()
	if chars == "" {
		return "", fmt.Errorf("%w %d", ErrUnknownAlphabet, int(alphabet))
	}
	if length == 0 {
		return "", nil
	}

	size := len(chars)
	ceiling := samplingCeiling(size)

	result := make([]byte, 0, length)
	buf := make([]byte, length)

	for len(result) < length {
		// Only ask for as many bytes as characters are still missing.
		chunk := buf[:length-len(result)]
		if _, err := io.ReadFull(g.rand, chunk); err != nil {
			return "", fmt.Errorf("%w: %w", ErrRandomSourceUnavailable, err)
		}

		for _, b := range chunk {
			if b > ceiling {
				continue
			}
			result = append(result, chars[int(b)%size])
		}
	}

	return string(result), nil
}

// samplingCeiling returns the largest byte value M such that [0, M] splits into
// whole blocks of size. Bytes above M are rejected to avoid modulo bias.
func samplingCeiling(size int) byte {
	return byte(255 - (255 % size) - 1)
}
