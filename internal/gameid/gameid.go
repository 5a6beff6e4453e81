// Package gameid generates short, time-sortable identifiers for rounds and
// matches. An ID is 10 characters of millisecond timestamp followed by 6
// random characters, all in Crockford's base32.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Base32 alphabet (Crockford's, lower case)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const (
	timeChars   = 10
	randomChars = 6
	// Length is the length of every generated ID.
	Length = timeChars + randomChars
)

// RandSource is satisfied by *math/rand/v2.Rand.
type RandSource interface {
	IntN(n int) int
}

// Generator creates IDs from a clock and an optional random source
type Generator struct {
	randSource RandSource
	clock      quartz.Clock
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock reads timestamps from clock instead of the wall clock.
func WithClock(clock quartz.Clock) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// NewGenerator creates a generator. A nil randSource uses crypto/rand.
func NewGenerator(randSource RandSource, opts ...Option) *Generator {
	g := &Generator{randSource: randSource, clock: quartz.NewReal()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate creates an ID with crypto randomness and the wall clock
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new ID
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(Length)

	ms := uint64(g.clock.Now().UnixMilli())
	for i := timeChars - 1; i >= 0; i-- {
		b.WriteByte(alphabet[(ms>>(5*uint(i)))&0x1f])
	}

	for _, v := range g.randomValues() {
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

func (g *Generator) randomValues() [randomChars]byte {
	var out [randomChars]byte
	if g.randSource != nil {
		for i := range out {
			out[i] = byte(g.randSource.IntN(len(alphabet)))
		}
		return out
	}
	if _, err := rand.Read(out[:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	for i := range out {
		out[i] &= 0x1f
	}
	return out
}

// Validate checks that id has the right length and alphabet
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("id must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
