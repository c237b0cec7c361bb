package repository

import (
	"context"

	"vetclinic/internal/domain/entities"
	"vetclinic/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	defaultPetsTableName    = "pets"
	defaultClientsTableName = "clients"
)

type petItem struct {
	ID        string `dynamodbav:"id"`
	OwnerID   string `dynamodbav:"owner_id"`
	Name      string `dynamodbav:"name"`
	Species   string `dynamodbav:"species"`
	Breed     string `dynamodbav:"breed,omitempty"`
	AgeYears  int    `dynamodbav:"age_years"`
	Sex       string `dynamodbav:"sex,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
}

type clientItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Email     string `dynamodbav:"email,omitempty"`
	Phone     string `dynamodbav:"phone,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
}

// PetDynamoRepository persists Pet entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type PetDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPetRepository = (*PetDynamoRepository)(nil)

func NewPetDynamoRepository(ddb DynamoAPI) *PetDynamoRepository {
	return &PetDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PETS_TABLE", defaultPetsTableName),
	}
}

func (r *PetDynamoRepository) Create(ctx context.Context, p entities.Pet) (entities.Pet, error) {
	if err := putNew(ctx, r.ddb, r.tableName, petItem{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		AgeYears:  p.AgeYears,
		Sex:       p.Sex,
		CreatedAt: formatTimestamp(p.CreatedAt),
	}); err != nil {
		return entities.Pet{}, err
	}
	return p, nil
}

func (r *PetDynamoRepository) GetByID(ctx context.Context, id string) (entities.Pet, error) {
	it, ok, err := getItem[petItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Pet{}, err
	}
	return entities.Pet{
		ID:        it.ID,
		OwnerID:   it.OwnerID,
		Name:      it.Name,
		Species:   it.Species,
		Breed:     it.Breed,
		AgeYears:  it.AgeYears,
		Sex:       it.Sex,
		CreatedAt: parseTimestamp(it.CreatedAt),
	}, nil
}

// ClientDynamoRepository persists Client entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type ClientDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb DynamoAPI) *ClientDynamoRepository {
	return &ClientDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CLIENTS_TABLE", defaultClientsTableName),
	}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	if err := putNew(ctx, r.ddb, r.tableName, clientItem{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: formatTimestamp(c.CreatedAt),
	}); err != nil {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	it, ok, err := getItem[clientItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Client{}, err
	}
	return entities.Client{
		ID:        it.ID,
		Name:      it.Name,
		Email:     it.Email,
		Phone:     it.Phone,
		CreatedAt: parseTimestamp(it.CreatedAt),
	}, nil
}

// putNew writes reference data outside any transaction with the usual
// id-must-not-exist guard.
func putNew(ctx context.Context, ddb DynamoAPI, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return conflictError(err)
}
