package repository

import (
	"context"
	"fmt"
	"log"

	"vetclinic/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDB caps a single TransactWriteItems call at 100 actions.
const maxTransactItems = 100

type txKey struct{}

type txBuffer struct {
	items []types.TransactWriteItem
}

// DynamoTransactor implements interfaces.ITransactor on top of
// TransactWriteItems.
//
// Reads inside fn hit the table directly; writes issued by the repositories
// with the transaction ctx are buffered and committed as one atomic call when
// fn returns nil. Every write carries its own condition (reservation absent,
// status unchanged), so a commit that lost a race is cancelled as a whole and
// reported as interfaces.ErrConflict.
type DynamoTransactor struct {
	ddb DynamoAPI
}

var _ interfaces.ITransactor = (*DynamoTransactor)(nil)

func NewDynamoTransactor(ddb DynamoAPI) *DynamoTransactor {
	return &DynamoTransactor{ddb: ddb}
}

func (t *DynamoTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txBuffer); ok {
		return fn(ctx)
	}

	buf := &txBuffer{}
	if err := fn(context.WithValue(ctx, txKey{}, buf)); err != nil {
		return err
	}
	return commit(ctx, t.ddb, buf.items)
}

// write buffers items when ctx carries a transaction, otherwise commits them
// right away as their own transaction.
func write(ctx context.Context, ddb DynamoAPI, items ...types.TransactWriteItem) error {
	if buf, ok := ctx.Value(txKey{}).(*txBuffer); ok {
		buf.items = append(buf.items, items...)
		return nil
	}
	return commit(ctx, ddb, items)
}

func commit(ctx context.Context, ddb DynamoAPI, items []types.TransactWriteItem) error {
	if len(items) == 0 {
		return nil
	}
	if len(items) > maxTransactItems {
		return fmt.Errorf("dynamodb transaction too large: %d items", len(items))
	}
	_, err := ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		log.Printf("[storage][dynamodb] transaction failed items=%d err=%v", len(items), err)
		return conflictError(err)
	}
	return nil
}
