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
	defaultConsultationsTableName = "consultations"
	consultationsPetIDIndex       = "pet_id-index"
	consultationsStatusIndex      = "status-index"
)

type consultationItem struct {
	ID            string   `dynamodbav:"id"`
	PetID         string   `dynamodbav:"pet_id"`
	StaffID       string   `dynamodbav:"staff_id"`
	AppointmentID string   `dynamodbav:"appointment_id,omitempty"`
	Date          string   `dynamodbav:"date"`
	Reason        string   `dynamodbav:"reason"`
	Diagnosis     string   `dynamodbav:"diagnosis,omitempty"`
	Treatment     string   `dynamodbav:"treatment,omitempty"`
	Medications   string   `dynamodbav:"medications,omitempty"`
	Notes         string   `dynamodbav:"notes,omitempty"`
	Cost          string   `dynamodbav:"cost"`
	WeightKg      *float64 `dynamodbav:"weight_kg,omitempty"`
	TemperatureC  *float64 `dynamodbav:"temperature_c,omitempty"`
	Status        string   `dynamodbav:"status"`
	CreatedAt     string   `dynamodbav:"created_at"`
	UpdatedAt     string   `dynamodbav:"updated_at"`
}

// ConsultationDynamoRepository persists Consultation entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: pet_id-index (PK: pet_id)
//   - GSI: status-index (PK: status)

type ConsultationDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IConsultationRepository = (*ConsultationDynamoRepository)(nil)

func NewConsultationDynamoRepository(ddb DynamoAPI) *ConsultationDynamoRepository {
	return &ConsultationDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CONSULTATIONS_TABLE", defaultConsultationsTableName),
	}
}

func (r *ConsultationDynamoRepository) Create(ctx context.Context, c entities.Consultation) (entities.Consultation, error) {
	av, err := attributevalue.MarshalMap(toConsultationItem(c))
	if err != nil {
		return entities.Consultation{}, err
	}

	err = write(ctx, r.ddb, types.TransactWriteItem{
		Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		},
	})
	if err != nil {
		return entities.Consultation{}, err
	}
	return c, nil
}

func (r *ConsultationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Consultation, error) {
	it, ok, err := getItem[consultationItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Consultation{}, err
	}
	return fromConsultationItem(it), nil
}

func (r *ConsultationDynamoRepository) ListByPetID(ctx context.Context, petID string) ([]entities.Consultation, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(consultationsPetIDIndex),
		KeyConditionExpression: aws.String("pet_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": str(petID),
		},
	})
}

func (r *ConsultationDynamoRepository) ListByStatus(ctx context.Context, status entities.ConsultationStatus) ([]entities.Consultation, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(consultationsStatusIndex),
		KeyConditionExpression:   aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": str(string(status)),
		},
	})
}

func (r *ConsultationDynamoRepository) query(ctx context.Context, in *dynamodb.QueryInput) ([]entities.Consultation, error) {
	items, err := queryAll[consultationItem](ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Consultation, 0, len(items))
	for _, it := range items {
		out = append(out, fromConsultationItem(it))
	}
	sortConsultations(out)
	return out, nil
}

func (r *ConsultationDynamoRepository) UpdateStatus(ctx context.Context, c entities.Consultation, from entities.ConsultationStatus) (entities.Consultation, error) {
	err := write(ctx, r.ddb, types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(r.tableName),
			Key:                 idKey(c.ID),
			UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
			ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
			ExpressionAttributeNames: map[string]string{
				"#id":         "id",
				"#status":     "status",
				"#updated_at": "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status":     str(string(c.Status)),
				":from":       str(string(from)),
				":updated_at": str(formatTimestamp(c.UpdatedAt)),
			},
		},
	})
	if err != nil {
		return entities.Consultation{}, err
	}
	return c, nil
}

func toConsultationItem(c entities.Consultation) consultationItem {
	it := consultationItem{
		ID:           c.ID,
		PetID:        c.PetID,
		StaffID:      c.StaffID,
		Date:         c.Date.UTC().Format(dateLayout),
		Reason:       c.Reason,
		Diagnosis:    c.Diagnosis,
		Treatment:    c.Treatment,
		Medications:  c.Medications,
		Notes:        c.Notes,
		Cost:         c.Cost.String(),
		WeightKg:     c.WeightKg,
		TemperatureC: c.TemperatureC,
		Status:       string(c.Status),
		CreatedAt:    formatTimestamp(c.CreatedAt),
		UpdatedAt:    formatTimestamp(c.UpdatedAt),
	}
	if c.AppointmentID != nil {
		it.AppointmentID = *c.AppointmentID
	}
	return it
}

func fromConsultationItem(it consultationItem) entities.Consultation {
	cost, _ := decimal.NewFromString(it.Cost)
	c := entities.Consultation{
		ID:           it.ID,
		PetID:        it.PetID,
		StaffID:      it.StaffID,
		Date:         parseDate(it.Date),
		Reason:       it.Reason,
		Diagnosis:    it.Diagnosis,
		Treatment:    it.Treatment,
		Medications:  it.Medications,
		Notes:        it.Notes,
		Cost:         cost,
		WeightKg:     it.WeightKg,
		TemperatureC: it.TemperatureC,
		Status:       entities.ConsultationStatus(it.Status),
		CreatedAt:    parseTimestamp(it.CreatedAt),
		UpdatedAt:    parseTimestamp(it.UpdatedAt),
	}
	if it.AppointmentID != "" {
		appointmentID := it.AppointmentID
		c.AppointmentID = &appointmentID
	}
	return c
}
