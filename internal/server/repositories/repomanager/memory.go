package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/verifications"
)

// InMemoryRepositoryManager keeps all data in process memory. It is used when
// no database DSN is configured.
//
// WithTx serializes units of work but does not roll back: every repository
// method is atomic on its own, and the services only depend on that.
type InMemoryRepositoryManager struct {
	txMu          sync.Mutex
	users         *users.MemoryRepository
	verifications *verifications.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		verifications: verifications.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Verifications() verifications.Repository {
	return m.verifications
}

func (m *InMemoryRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.refreshTokens
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, m)
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
