package database

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
)

func TestCreateTableInput(t *testing.T) {
	in := CreateTableInput(TableSpec{Name: "invoices", HashKey: "id", Indexes: map[string]string{
		"consultation_id-index": "consultation_id",
		"status-index":          "status",
	}})

	require.Equal(t, "invoices", aws.ToString(in.TableName))
	require.Len(t, in.GlobalSecondaryIndexes, 2)
	require.Len(t, in.AttributeDefinitions, 3)
}

func TestClinicTablesHonorOverrides(t *testing.T) {
	t.Setenv("RESERVATIONS_TABLE", "vet-reservations")

	var names []string
	for _, spec := range ClinicTables() {
		names = append(names, spec.Name)
	}
	require.Contains(t, names, "vet-reservations")
	require.Len(t, names, 6)
}
