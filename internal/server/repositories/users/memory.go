package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/server/models"
)

// MemoryRepository keeps users in process memory. All methods are safe for
// concurrent use and return copies, so callers cannot mutate stored state.
type MemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]*models.User
	byPhone  map[string]string
	byInvite map[string]string
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:     make(map[string]*models.User),
		byPhone:  make(map[string]string),
		byInvite: make(map[string]string),
		now:      time.Now,
	}
}

func clone(u *models.User) *models.User {
	c := *u
	if u.ActivatedInviteCode != nil {
		code := *u.ActivatedInviteCode
		c.ActivatedInviteCode = &code
	}
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPhone[user.PhoneNumber]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.byInvite[user.InviteCode]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.byID[user.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	user.DateJoined = r.now()
	stored := clone(user)
	r.byID[stored.ID] = stored
	r.byPhone[stored.PhoneNumber] = stored.ID
	r.byInvite[stored.InviteCode] = stored.ID

	return user, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPhone[phone]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *MemoryRepository) GetByInviteCode(ctx context.Context, code string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byInvite[code]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *MemoryRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byInvite[code]
	return ok, nil
}

func (r *MemoryRepository) SetActivatedInviteCode(ctx context.Context, userID string, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok || u.HasActivatedInvite() {
		return false, nil
	}
	if u.InviteCode == code {
		return false, common.ErrSelfReferral
	}

	u.ActivatedInviteCode = &code
	return true, nil
}

func (r *MemoryRepository) ListByActivatedInviteCode(ctx context.Context, code string, excludeUserID string) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.User
	for id, u := range r.byID {
		if id == excludeUserID || u.ActivatedInviteCode == nil || *u.ActivatedInviteCode != code {
			continue
		}
		result = append(result, clone(u))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].DateJoined.Equal(result[j].DateJoined) {
			return result[i].DateJoined.Before(result[j].DateJoined)
		}
		return result[i].PhoneNumber < result[j].PhoneNumber
	})

	return result, nil
}
