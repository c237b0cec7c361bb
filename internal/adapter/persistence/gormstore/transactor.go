package gormstore

import (
	"context"
	"errors"
	"fmt"

	"vetclinic/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type txKey struct{}

// Transactor implements interfaces.ITransactor with a gorm transaction
// carried in the context. Nested calls join the outer transaction.
type Transactor struct {
	db *gorm.DB
}

var _ interfaces.ITransactor = (*Transactor)(nil)

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	return translate(err)
}

// conn returns the transaction bound to ctx, or db scoped to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// translate maps unique violations to interfaces.ErrConflict.
func translate(err error) error {
	if err == nil || errors.Is(err, interfaces.ErrConflict) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", interfaces.ErrConflict, err)
	}
	return err
}

// staleUpdate is returned when a conditional update matched no row because
// another writer changed the status first.
func staleUpdate(table, id string) error {
	return fmt.Errorf("%w: %s %s was modified concurrently", interfaces.ErrConflict, table, id)
}
