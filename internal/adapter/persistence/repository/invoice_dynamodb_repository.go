package repository

import (
	"context"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultInvoicesTableName    = "invoices"
	invoicesConsultationIDIndex = "consultation_id-index"
	invoicesStatusIndex         = "status-index"
)

type invoiceItem struct {
	ID                string `dynamodbav:"id"`
	Number            string `dynamodbav:"number"`
	ConsultationID    string `dynamodbav:"consultation_id"`
	ClientID          string `dynamodbav:"client_id,omitempty"`
	PetID             string `dynamodbav:"pet_id"`
	Subtotal          string `dynamodbav:"subtotal"`
	Tax               string `dynamodbav:"tax"`
	Total             string `dynamodbav:"total"`
	TaxRate           string `dynamodbav:"tax_rate"`
	IssueDate         string `dynamodbav:"issue_date"`
	DueDate           string `dynamodbav:"due_date"`
	Status            string `dynamodbav:"status"`
	PaymentMethod     string `dynamodbav:"payment_method,omitempty"`
	PaidDate          string `dynamodbav:"paid_date,omitempty"`
	ProviderPaymentID string `dynamodbav:"provider_payment_id,omitempty"`
	Notes             string `dynamodbav:"notes,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: consultation_id-index (PK: consultation_id)
//   - GSI: status-index (PK: status)
//
// Creating an invoice claims invoice#<consultation_id> in the reservations
// table within the same transaction, which keeps one invoice per consultation.

type InvoiceDynamoRepository struct {
	ddb          DynamoAPI
	tableName    string
	reservations reservations
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb DynamoAPI) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:          ddb,
		tableName:    getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
		reservations: newReservations(),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}

	err = write(ctx, r.ddb,
		types.TransactWriteItem{
			Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			},
		},
		r.reservations.claim(invoiceReservationKey(inv.ConsultationID), inv.ID),
	)
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	it, ok, err := getItem[invoiceItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) GetByConsultationID(ctx context.Context, consultationID string) (entities.Invoice, error) {
	items, err := r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesConsultationIDIndex),
		KeyConditionExpression: aws.String("consultation_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": str(consultationID),
		},
	})
	if err != nil || len(items) == 0 {
		return entities.Invoice{}, err
	}
	return items[0], nil
}

// InvoicedConsultationIDs reads the invoice#<consultation_id> reservations in
// batches rather than querying the consultation index once per id.
func (r *InvoiceDynamoRepository) InvoicedConsultationIDs(ctx context.Context, consultationIDs []string) (map[string]bool, error) {
	keys := make([]string, 0, len(consultationIDs))
	for _, id := range consultationIDs {
		keys = append(keys, invoiceReservationKey(id))
	}
	held, err := r.reservations.held(ctx, r.ddb, keys)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(held))
	for _, id := range consultationIDs {
		if held[invoiceReservationKey(id)] {
			out[id] = true
		}
	}
	return out, nil
}

func (r *InvoiceDynamoRepository) List(ctx context.Context, status entities.InvoiceStatus) ([]entities.Invoice, error) {
	if status != "" {
		return r.query(ctx, &dynamodb.QueryInput{
			TableName:                aws.String(r.tableName),
			IndexName:                aws.String(invoicesStatusIndex),
			KeyConditionExpression:   aws.String("#status = :status"),
			ExpressionAttributeNames: map[string]string{"#status": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": str(string(status)),
			},
		})
	}

	items, err := scanAll[invoiceItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	return fromInvoiceItems(items), nil
}

func (r *InvoiceDynamoRepository) query(ctx context.Context, in *dynamodb.QueryInput) ([]entities.Invoice, error) {
	items, err := queryAll[invoiceItem](ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	return fromInvoiceItems(items), nil
}

func (r *InvoiceDynamoRepository) Update(ctx context.Context, inv entities.Invoice, from entities.InvoiceStatus) (entities.Invoice, error) {
	it := toInvoiceItem(inv)
	expr := "SET #status = :status, #notes = :notes, #updated_at = :updated_at"
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#notes":      "notes",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":status":     str(it.Status),
		":from":       str(string(from)),
		":notes":      str(it.Notes),
		":updated_at": str(it.UpdatedAt),
	}
	if it.PaymentMethod != "" {
		expr += ", #payment_method = :payment_method, #paid_date = :paid_date, #provider_payment_id = :provider_payment_id"
		names = mergeNames(names, map[string]string{
			"#payment_method":      "payment_method",
			"#paid_date":           "paid_date",
			"#provider_payment_id": "provider_payment_id",
		})
		values[":payment_method"] = str(it.PaymentMethod)
		values[":paid_date"] = str(it.PaidDate)
		values[":provider_payment_id"] = str(it.ProviderPaymentID)
	}

	err := write(ctx, r.ddb, types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 aws.String(r.tableName),
			Key:                       idKey(inv.ID),
			UpdateExpression:          aws.String(expr),
			ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
		},
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func fromInvoiceItems(items []invoiceItem) []entities.Invoice {
	out := make([]entities.Invoice, 0, len(items))
	for _, it := range items {
		out = append(out, fromInvoiceItem(it))
	}
	sortInvoices(out)
	return out
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	it := invoiceItem{
		ID:                inv.ID,
		Number:            inv.Number,
		ConsultationID:    inv.ConsultationID,
		ClientID:          inv.ClientID,
		PetID:             inv.PetID,
		Subtotal:          inv.Subtotal.StringFixed(2),
		Tax:               inv.Tax.StringFixed(2),
		Total:             inv.Total.StringFixed(2),
		TaxRate:           inv.TaxRate.String(),
		IssueDate:         inv.IssueDate.UTC().Format(dateLayout),
		DueDate:           inv.DueDate.UTC().Format(dateLayout),
		Status:            string(inv.Status),
		PaymentMethod:     string(inv.PaymentMethod),
		ProviderPaymentID: inv.ProviderPaymentID,
		Notes:             inv.Notes,
		CreatedAt:         formatTimestamp(inv.CreatedAt),
		UpdatedAt:         formatTimestamp(inv.UpdatedAt),
	}
	if inv.PaidDate != nil {
		it.PaidDate = inv.PaidDate.UTC().Format(dateLayout)
	}
	return it
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	inv := entities.Invoice{
		ID:                it.ID,
		Number:            it.Number,
		ConsultationID:    it.ConsultationID,
		ClientID:          it.ClientID,
		PetID:             it.PetID,
		Subtotal:          parseDecimal(it.Subtotal),
		Tax:               parseDecimal(it.Tax),
		Total:             parseDecimal(it.Total),
		TaxRate:           parseDecimal(it.TaxRate),
		IssueDate:         parseDate(it.IssueDate),
		DueDate:           parseDate(it.DueDate),
		Status:            entities.InvoiceStatus(it.Status),
		PaymentMethod:     entities.PaymentMethod(it.PaymentMethod),
		ProviderPaymentID: it.ProviderPaymentID,
		Notes:             it.Notes,
		CreatedAt:         parseTimestamp(it.CreatedAt),
		UpdatedAt:         parseTimestamp(it.UpdatedAt),
	}
	if it.PaidDate != "" {
		paid := parseDate(it.PaidDate)
		inv.PaidDate = &paid
	}
	return inv
}

func parseDecimal(raw string) decimal.Decimal {
	d, _ := decimal.NewFromString(raw)
	return d
}
