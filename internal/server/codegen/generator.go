// Package codegen produces verification codes and invite codes from an
// injected pseudo-random source, so tests can make the output deterministic.
package codegen

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/dmitrijs2005/phoneauth/internal/common"
)

const (
	digits        = "0123456789"
	inviteCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// MaxInviteAttempts bounds how many random invite codes are checked
	// against existing ones before falling back.
	MaxInviteAttempts = 10

	// FallbackPrefix starts invite codes produced after MaxInviteAttempts
	// collisions. Such codes are not re-checked; the storage uniqueness
	// constraint still applies.
	FallbackPrefix = "C"
)

// Generator is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator drawing from src.
func New(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// NewSeeded returns a Generator backed by ChaCha8 seeded from crypto/rand.
func NewSeeded() (*Generator, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return New(rand.NewChaCha8(seed)), nil
}

// NumericCode returns length independently uniform decimal digits.
// A non-positive length means common.VerificationCodeLength.
func (g *Generator) NumericCode(length int) string {
	if length <= 0 {
		length = common.VerificationCodeLength
	}
	return g.draw(digits, length)
}

// InviteCode returns a random [A-Z0-9] code of the given length (non-positive
// means common.InviteCodeLength) for which exists reports false. After
// MaxInviteAttempts collisions it returns FallbackPrefix followed by random
// digits without consulting exists again.
func (g *Generator) InviteCode(length int, exists func(code string) (bool, error)) (string, error) {
	if length <= 0 {
		length = common.InviteCodeLength
	}

	for range MaxInviteAttempts {
		candidate := g.draw(inviteCharset, length)
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("error checking invite code: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	prefix := FallbackPrefix
	if len(prefix) >= length {
		prefix = ""
	}
	return prefix + g.draw(digits, length-len(prefix)), nil
}

func (g *Generator) draw(alphabet string, length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(alphabet[g.rnd.IntN(len(alphabet))])
	}
	return b.String()
}
