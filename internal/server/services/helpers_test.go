package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/logging"
	"github.com/dmitrijs2005/phoneauth/internal/server/codegen"
	"github.com/dmitrijs2005/phoneauth/internal/server/config"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/repomanager"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// scriptedCodes hands out predefined codes in order. Invite candidates are
// checked against exists like the real generator does.
type scriptedCodes struct {
	mu      sync.Mutex
	numeric []string
	invites []string
}

func (s *scriptedCodes) NumericCode(int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.numeric) == 0 {
		return "0000"
	}
	c := s.numeric[0]
	s.numeric = s.numeric[1:]
	return c
}

func (s *scriptedCodes) InviteCode(_ int, exists func(string) (bool, error)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.invites) > 0 {
		c := s.invites[0]
		s.invites = s.invites[1:]
		taken, err := exists(c)
		if err != nil {
			return "", err
		}
		if !taken {
			return c, nil
		}
	}
	return "", errors.New("out of invite codes")
}

// blindCodes never consults exists, which simulates losing the race between
// the existence check and the insert.
type blindCodes struct {
	mu      sync.Mutex
	invites []string
}

func (b *blindCodes) NumericCode(int) string { return "0000" }

func (b *blindCodes) InviteCode(int, func(string) (bool, error)) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.invites) == 0 {
		return "", errors.New("out of invite codes")
	}
	c := b.invites[0]
	b.invites = b.invites[1:]
	return c, nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	data []any
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.data = append(p.data, payload)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type recordingSender struct {
	mu   sync.Mutex
	sent map[string]string
	err  error
}

func (r *recordingSender) SendCode(ctx context.Context, phone string, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sent == nil {
		r.sent = make(map[string]string)
	}
	r.sent[phone] = code
	return r.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.AccessTokenValidityDuration = time.Hour
	cfg.RefreshTokenValidityDuration = 2 * time.Hour
	return cfg
}

type harness struct {
	repos        *repomanager.InMemoryRepositoryManager
	directory    *Directory
	tokens       *TokenService
	verification *VerificationService
	invites      *InviteService
	sender       *recordingSender
	publisher    *recordingPublisher
}

func newHarness(t *testing.T, codes CodeGenerator, cfg *config.Config) *harness {
	t.Helper()
	if codes == nil {
		codes = codegen.New(rand.NewPCG(1, 2))
	}
	if cfg == nil {
		cfg = testConfig()
	}

	rm := repomanager.NewInMemoryRepositoryManager()
	log := logging.Nop{}
	sender := &recordingSender{}
	pub := &recordingPublisher{}

	dir := NewDirectory(rm.Users(), codes, log)
	ts := NewTokenService(rm, cfg)

	return &harness{
		repos:        rm,
		directory:    dir,
		tokens:       ts,
		verification: NewVerificationService(rm, dir, ts, codes, sender, pub, log, cfg),
		invites:      NewInviteService(dir, pub, log),
		sender:       sender,
		publisher:    pub,
	}
}
