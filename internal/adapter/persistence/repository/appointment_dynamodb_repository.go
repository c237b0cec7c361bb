package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultAppointmentsTableName = "appointments"
	appointmentsDateIndex        = "date-index"
	appointmentsPetIDIndex       = "pet_id-index"
)

type appointmentItem struct {
	ID        string `dynamodbav:"id"`
	PetID     string `dynamodbav:"pet_id"`
	StaffID   string `dynamodbav:"staff_id,omitempty"`
	Date      string `dynamodbav:"date"`
	Slot      string `dynamodbav:"slot"`
	Reason    string `dynamodbav:"reason,omitempty"`
	Status    string `dynamodbav:"status"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// AppointmentDynamoRepository persists Appointment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: date-index (PK: date)
//   - GSI: pet_id-index (PK: pet_id)
//
// The one-active-appointment-per-slot rule lives in the reservations table:
// an appointment entering scheduled/confirmed claims slot#<date>#<slot> in the
// same transaction, and releases it when it leaves those statuses.

type AppointmentDynamoRepository struct {
	ddb          DynamoAPI
	tableName    string
	reservations reservations
}

var _ interfaces.IAppointmentRepository = (*AppointmentDynamoRepository)(nil)

func NewAppointmentDynamoRepository(ddb DynamoAPI) *AppointmentDynamoRepository {
	return &AppointmentDynamoRepository{
		ddb:          ddb,
		tableName:    getenvDefault("APPOINTMENTS_TABLE", defaultAppointmentsTableName),
		reservations: newReservations(),
	}
}

func (r *AppointmentDynamoRepository) Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error) {
	av, err := attributevalue.MarshalMap(toAppointmentItem(a))
	if err != nil {
		return entities.Appointment{}, err
	}

	items := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:                aws.String(r.tableName),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		},
	}}
	if a.Status.HoldsSlot() {
		items = append(items, r.reservations.claim(slotReservationKey(a.Date.Format(dateLayout), a.Slot), a.ID))
	}

	if err := write(ctx, r.ddb, items...); err != nil {
		return entities.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Appointment, error) {
	it, ok, err := getItem[appointmentItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Appointment{}, err
	}
	return fromAppointmentItem(it), nil
}

func (r *AppointmentDynamoRepository) ListByDate(ctx context.Context, date time.Time, statuses ...entities.AppointmentStatus) ([]entities.Appointment, error) {
	in := &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(appointmentsDateIndex),
		KeyConditionExpression:   aws.String("#date = :date"),
		ExpressionAttributeNames: map[string]string{"#date": "date"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":date": str(date.UTC().Format(dateLayout)),
		},
	}
	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for i, s := range statuses {
			ph := fmt.Sprintf(":s%d", i)
			placeholders = append(placeholders, ph)
			in.ExpressionAttributeValues[ph] = str(string(s))
		}
		in.FilterExpression = aws.String("#status IN (" + strings.Join(placeholders, ", ") + ")")
		in.ExpressionAttributeNames = mergeNames(in.ExpressionAttributeNames, map[string]string{"#status": "status"})
	}

	items, err := queryAll[appointmentItem](ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	return sortedAppointments(items), nil
}

func (r *AppointmentDynamoRepository) ListByPetID(ctx context.Context, petID string) ([]entities.Appointment, error) {
	items, err := queryAll[appointmentItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(appointmentsPetIDIndex),
		KeyConditionExpression: aws.String("pet_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": str(petID),
		},
	})
	if err != nil {
		return nil, err
	}
	return sortedAppointments(items), nil
}

func (r *AppointmentDynamoRepository) UpdateStatus(ctx context.Context, a entities.Appointment, from entities.AppointmentStatus) (entities.Appointment, error) {
	items := []types.TransactWriteItem{{
		Update: &types.Update{
			TableName:           aws.String(r.tableName),
			Key:                 idKey(a.ID),
			UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
			ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
			ExpressionAttributeNames: map[string]string{
				"#id":         "id",
				"#status":     "status",
				"#updated_at": "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status":     str(string(a.Status)),
				":from":       str(string(from)),
				":updated_at": str(formatTimestamp(a.UpdatedAt)),
			},
		},
	}}

	key := slotReservationKey(a.Date.Format(dateLayout), a.Slot)
	switch {
	case a.Status.HoldsSlot() && !from.HoldsSlot():
		items = append(items, r.reservations.claim(key, a.ID))
	case !a.Status.HoldsSlot() && from.HoldsSlot():
		items = append(items, r.reservations.release(key, a.ID))
	}

	if err := write(ctx, r.ddb, items...); err != nil {
		return entities.Appointment{}, err
	}
	return a, nil
}

func sortedAppointments(items []appointmentItem) []entities.Appointment {
	out := make([]entities.Appointment, 0, len(items))
	for _, it := range items {
		out = append(out, fromAppointmentItem(it))
	}
	sortAppointments(out)
	return out
}

func toAppointmentItem(a entities.Appointment) appointmentItem {
	it := appointmentItem{
		ID:        a.ID,
		PetID:     a.PetID,
		Date:      a.Date.UTC().Format(dateLayout),
		Slot:      a.Slot,
		Reason:    a.Reason,
		Status:    string(a.Status),
		CreatedAt: formatTimestamp(a.CreatedAt),
		UpdatedAt: formatTimestamp(a.UpdatedAt),
	}
	if a.StaffID != nil {
		it.StaffID = *a.StaffID
	}
	return it
}

func fromAppointmentItem(it appointmentItem) entities.Appointment {
	a := entities.Appointment{
		ID:        it.ID,
		PetID:     it.PetID,
		Date:      parseDate(it.Date),
		Slot:      it.Slot,
		Reason:    it.Reason,
		Status:    entities.AppointmentStatus(it.Status),
		CreatedAt: parseTimestamp(it.CreatedAt),
		UpdatedAt: parseTimestamp(it.UpdatedAt),
	}
	if it.StaffID != "" {
		staffID := it.StaffID
		a.StaffID = &staffID
	}
	return a
}
