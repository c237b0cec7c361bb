package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultReservationsTableName = "reservations"
	// BatchGetItem accepts at most 100 keys per call.
	batchGetLimit = 100
)

// reservations is a key-only table that turns a uniqueness rule into a
// conditional put:
//   - slot#<date>#<slot>     held by the active appointment of that slot
//   - invoice#<consultation> held by the invoice of that consultation
//
// Table requirements:
//   - PK: key (string)
type reservations struct {
	tableName string
}

func newReservations() reservations {
	return reservations{tableName: getenvDefault("RESERVATIONS_TABLE", defaultReservationsTableName)}
}

func slotReservationKey(date, slot string) string {
	return "slot#" + date + "#" + slot
}

func invoiceReservationKey(consultationID string) string {
	return "invoice#" + consultationID
}

// claim fails the transaction when key is already held.
func (r reservations) claim(key, ownerID string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(r.tableName),
			Item: map[string]types.AttributeValue{
				"key":        str(key),
				"owner_id":   str(ownerID),
				"created_at": str(formatTimestamp(time.Now())),
			},
			ConditionExpression:      aws.String("attribute_not_exists(#key)"),
			ExpressionAttributeNames: map[string]string{"#key": "key"},
		},
	}
}

// release drops key unless someone else holds it.
func (r reservations) release(key, ownerID string) types.TransactWriteItem {
	return types.TransactWriteItem{
		Delete: &types.Delete{
			TableName:                aws.String(r.tableName),
			Key:                      map[string]types.AttributeValue{"key": str(key)},
			ConditionExpression:      aws.String("attribute_not_exists(#key) OR #owner = :owner"),
			ExpressionAttributeNames: map[string]string{"#key": "key", "#owner": "owner_id"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":owner": str(ownerID),
			},
		},
	}
}

// held returns the subset of keys that are currently claimed, following
// UnprocessedKeys until every batch is answered.
func (r reservations) held(ctx context.Context, ddb DynamoAPI, keys []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for start := 0; start < len(keys); start += batchGetLimit {
		end := min(start+batchGetLimit, len(keys))
		batch := make([]map[string]types.AttributeValue, 0, end-start)
		for _, k := range keys[start:end] {
			batch = append(batch, map[string]types.AttributeValue{"key": str(k)})
		}

		pending := map[string]types.KeysAndAttributes{
			r.tableName: {
				Keys:                     batch,
				ConsistentRead:           aws.Bool(true),
				ProjectionExpression:     aws.String("#key"),
				ExpressionAttributeNames: map[string]string{"#key": "key"},
			},
		}
		for len(pending) > 0 {
			res, err := ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: pending})
			if err != nil {
				return nil, err
			}
			for _, item := range res.Responses[r.tableName] {
				if k, ok := item["key"].(*types.AttributeValueMemberS); ok {
					out[k.Value] = true
				}
			}
			pending = res.UnprocessedKeys
		}
	}
	return out, nil
}
