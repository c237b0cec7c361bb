package interfaces

import "context"

//go:generate mockgen -source=transactor_interface.go -destination=mocks/mock_transactor.go -package=mock_interfaces

// ITransactor scopes a read-check-write sequence into one atomic unit.
//
// Repositories called with the ctx handed to fn take part in the transaction.
// Writes are only visible after fn returns nil and the commit succeeds; a
// commit rejected by the store surfaces as ErrConflict.
type ITransactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
