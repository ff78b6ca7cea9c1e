package database_test

import (
	"context"
	"testing"

	"officepool/database"
	"officepool/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnection_SessionSettings(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	var timezone, appName string
	err := testDB.DB.QueryRow(ctx,
		`SELECT current_setting('TimeZone'), current_setting('application_name')`,
	).Scan(&timezone, &appName)
	require.NoError(t, err)

	assert.Equal(t, "UTC", timezone)
	assert.Equal(t, database.ApplicationName, appName)
}

func TestNewConnection_InvalidURL(t *testing.T) {
	_, err := database.NewConnection(context.Background(), "postgres://%zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid database URL")
}
