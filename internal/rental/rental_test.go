package rental

import (
	"context"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"rentadmin/internal/database"
	"rentadmin/internal/models"
)

func testLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func setupSQLite(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(database.DriverSQLite, ":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// setupMock backs the store with a mock driver so tests can assert
// exactly which statements an operation issues.
func setupMock(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return database.NewFromDB(mockDB, database.DriverSQLite, testLogger()), mock
}

// seedCar creates a location, one available car with its pricing facet
// and one customer, returning the car and customer ids.
func seedCar(t *testing.T, db *database.DB) (int64, int64) {
	t.Helper()
	ctx := context.Background()

	location := models.Location{City: "Liepaja", Address: "Port street 2"}
	require.NoError(t, db.InsertLocation(ctx, &location))

	vehicle := models.Vehicle{LicenseNumber: "AB-2001", Make: "Skoda", Model: "Octavia", LocationID: location.ID}
	require.NoError(t, db.InsertVehicle(ctx, &vehicle))
	require.NoError(t, db.InsertCategory(ctx, &models.Category{ID: vehicle.ID, Price: 39.90, Category: "economy"}))

	directory := NewCustomerDirectory(db, testLogger())
	customerID, err := directory.Insert(ctx, InsertCustomerRequest{
		PersonalCode: "010190-00001",
		FirstName:    "Janis",
		LastName:     "Berzins",
		DateOfBirth:  "1990-01-01",
		Address:      "Brivibas iela 1",
		PhoneNumber:  "+371 20000000",
	})
	require.NoError(t, err)

	return vehicle.ID, customerID
}
