package repomanager

import (
	"context"

	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/phoneauth/internal/server/repositories/verifications"
)

// Repositories groups the repositories bound to one connection or transaction.
type Repositories interface {
	Users() users.Repository
	Verifications() verifications.Repository
	RefreshTokens() refreshtokens.Repository
}

// TxFunc is a unit of work executed by RepositoryManager.WithTx.
type TxFunc func(ctx context.Context, repos Repositories) error

type RepositoryManager interface {
	Repositories

	RunMigrations(ctx context.Context) error

	// WithTx runs fn with repositories bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn TxFunc) error

	Close() error
}
