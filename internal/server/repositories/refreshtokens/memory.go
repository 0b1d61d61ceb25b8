package refreshtokens

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.Mutex
	seq    int64
	tokens map[string]models.RefreshToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]models.RefreshToken)}
}

func (r *MemoryRepository) Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[tokenHash]; ok {
		return common.ErrorAlreadyExists
	}

	r.seq++
	now := time.Now()
	r.tokens[tokenHash] = models.RefreshToken{
		ID:        strconv.FormatInt(r.seq, 10),
		UserID:    userID,
		TokenHash: tokenHash,
		Expires:   now.Add(validity),
		CreatedAt: now,
	}
	return nil
}

func (r *MemoryRepository) Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[tokenHash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, tokenHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[tokenHash]; !ok {
		return false, nil
	}
	delete(r.tokens, tokenHash)
	return true, nil
}
