package database

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ConnectDynamoDB creates a DynamoDB client using environment variables.
//
// Supported env vars (local-friendly):
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID (default: local)
//   - AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
//   - DYNAMODB_CREATE_TABLES (optional; "true" creates missing tables)
func ConnectDynamoDB(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := NewDynamoDBConfigFromEnv(ctx)
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(cfg)

	if os.Getenv("DYNAMODB_CREATE_TABLES") == "true" {
		if err := EnsureTables(ctx, client, ClinicTables()); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func NewDynamoDBConfigFromEnv(ctx context.Context) (aws.Config, error) {
	region := getenvDefault("AWS_REGION", "us-east-1")
	endpoint := os.Getenv("DYNAMODB_ENDPOINT")

	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(
		getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		"",
	)

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
		config.WithCredentialsProvider(creds),
	}

	if endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// TableSpec describes a table keyed by a single string attribute, with
// optional single-key global secondary indexes (index name -> hash key).
type TableSpec struct {
	Name    string
	HashKey string
	Indexes map[string]string
}

// ClinicTables lists every table the repositories expect, honoring the
// *_TABLE overrides.
func ClinicTables() []TableSpec {
	return []TableSpec{
		{Name: getenvDefault("APPOINTMENTS_TABLE", "appointments"), HashKey: "id", Indexes: map[string]string{
			"date-index":   "date",
			"pet_id-index": "pet_id",
		}},
		{Name: getenvDefault("CONSULTATIONS_TABLE", "consultations"), HashKey: "id", Indexes: map[string]string{
			"pet_id-index": "pet_id",
			"status-index": "status",
		}},
		{Name: getenvDefault("INVOICES_TABLE", "invoices"), HashKey: "id", Indexes: map[string]string{
			"consultation_id-index": "consultation_id",
			"status-index":          "status",
		}},
		{Name: getenvDefault("PETS_TABLE", "pets"), HashKey: "id"},
		{Name: getenvDefault("CLIENTS_TABLE", "clients"), HashKey: "id"},
		{Name: getenvDefault("RESERVATIONS_TABLE", "reservations"), HashKey: "key"},
	}
}

// EnsureTables creates the tables that do not exist yet (on-demand billing).
func EnsureTables(ctx context.Context, client *dynamodb.Client, specs []TableSpec) error {
	for _, spec := range specs {
		_, err := client.CreateTable(ctx, CreateTableInput(spec))
		var inUse *types.ResourceInUseException
		switch {
		case err == nil:
			log.Printf("[database][dynamodb] created table=%s", spec.Name)
		case errors.As(err, &inUse):
		default:
			return err
		}
	}
	return nil
}

func CreateTableInput(spec TableSpec) *dynamodb.CreateTableInput {
	attrs := map[string]struct{}{spec.HashKey: {}}
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(spec.Name),
		BillingMode: types.BillingModePayPerRequest,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(spec.HashKey), KeyType: types.KeyTypeHash},
		},
	}
	for name, key := range spec.Indexes {
		attrs[key] = struct{}{}
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName:  aws.String(name),
			KeySchema:  []types.KeySchemaElement{{AttributeName: aws.String(key), KeyType: types.KeyTypeHash}},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	for name := range attrs {
		in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		})
	}
	return in
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
