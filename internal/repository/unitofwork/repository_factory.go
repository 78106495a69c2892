package unitofwork

import "context"

type RepositoryFactory interface {
	// NewUnitOfWork is used for reads; nothing is opened until Begin.
	NewUnitOfWork(ctx context.Context) UnitOfWork
	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(uow UnitOfWork) error) error
}
