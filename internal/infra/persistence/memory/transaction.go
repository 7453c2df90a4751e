package memory

import (
	"context"

	"unica/internal/domain/repository"
)

// transactionManager implements repository.TransactionManager over the
// in-memory store. There is no real transaction; the callback simply runs
// against repositories sharing the store's mutex, which is enough for tests.
type transactionManager struct {
	store *Store
}

type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) AccountRepo() repository.AccountRepository {
	return NewAccountRepository(f.store)
}

func (f *repositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return NewRefreshTokenRepository(f.store)
}

func (f *repositoryFactory) ResetTokenRepo() repository.ResetTokenRepository {
	return NewResetTokenRepository(f.store)
}

func (f *repositoryFactory) TwoFactorRepo() repository.TwoFactorRepository {
	return NewTwoFactorRepository(f.store)
}

// NewTransactionManager returns a TransactionManager backed by the store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(&repositoryFactory{store: tm.store})
}
