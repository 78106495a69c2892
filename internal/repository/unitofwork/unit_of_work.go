package unitofwork

import (
	"context"
	"errors"

	"ai-storefront-be/internal/repository/contract"
)

var (
	ErrTxAlreadyStarted = errors.New("transaction already started")
	ErrNoTransaction    = errors.New("no transaction to commit")
)

// UnitOfWork hands out catalog repositories bound to one connection scope.
// Outside Begin/Commit the repositories read from the shared pool.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	// Rollback is a no-op once the transaction has been committed.
	Rollback() error

	ProductRepository() contract.ProductRepository
	CategoryRepository() contract.CategoryRepository
}
