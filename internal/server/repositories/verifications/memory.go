package verifications

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/server/models"
)

type MemoryRepository struct {
	mu      sync.Mutex
	pending map[string]models.VerificationRequest
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		pending: make(map[string]models.VerificationRequest),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Issue(ctx context.Context, phone string, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending[phone] = models.VerificationRequest{PhoneNumber: phone, Code: code, IssuedAt: r.now()}
	return nil
}

func (r *MemoryRepository) Consume(ctx context.Context, phone string, code string) (*models.VerificationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.pending[phone]
	if !ok || req.Code != code {
		return nil, common.ErrorNotFound
	}
	delete(r.pending, phone)
	return &req, nil
}
