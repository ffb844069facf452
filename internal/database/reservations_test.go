package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentadmin/internal/dates"
	"rentadmin/internal/models"
)

func TestInsertReservation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, carIDs := seedFleet(t, db)
	customer := newCustomer("r-1")
	require.NoError(t, db.InsertCustomer(ctx, customer))

	reservation := models.Reservation{
		CarID:      carIDs[0],
		CustomerID: customer.ID,
		PickupDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.InsertReservation(ctx, &reservation))
	assert.NotZero(t, reservation.ID)

	records, err := db.GetAllReservations(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AB-1001", records[0].LicenseNumber)
	assert.Equal(t, "Janis", records[0].FirstName)
	assert.Equal(t, "2024-06-01", dates.Format(records[0].PickupDate))
	assert.Equal(t, "2024-06-07", dates.Format(records[0].ReturnDate))
}

func TestInsertReservation_ForeignKeyEnforced(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Neither the car nor the customer exists; the store's foreign keys
	// reject the row and the transaction rolls back.
	reservation := models.Reservation{
		CarID:      12345,
		CustomerID: 67890,
		PickupDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
	}
	err := db.InsertReservation(ctx, &reservation)
	require.Error(t, err)

	records, err := db.GetAllReservations(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetReservationsByCustomer(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, carIDs := seedFleet(t, db)

	first := newCustomer("r-2")
	require.NoError(t, db.InsertCustomer(ctx, first))
	second := newCustomer("r-3")
	second.FirstName = "Anna"
	require.NoError(t, db.InsertCustomer(ctx, second))

	for i, customerID := range []int64{first.ID, first.ID, second.ID} {
		r := models.Reservation{
			CarID:      carIDs[i%len(carIDs)],
			CustomerID: customerID,
			PickupDate: time.Date(2024, 7, 1+i, 0, 0, 0, 0, time.UTC),
			ReturnDate: time.Date(2024, 7, 3+i, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.InsertReservation(ctx, &r))
	}

	records, err := db.GetReservationsByCustomer(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = db.GetReservationsByCustomer(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Anna", records[0].FirstName)
}

func TestGetAvailableVehicles(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, carIDs := seedFleet(t, db)

	vehicles, err := db.GetAvailableVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "economy", vehicles[0].Category)
	assert.Equal(t, "Liepaja", vehicles[0].City)

	// A car out of the available status drops from the projection.
	_, err = db.ExecContext(ctx, `UPDATE Car SET status = ? WHERE id = ?`, models.StatusMaintenance, carIDs[0])
	require.NoError(t, err)

	vehicles, err = db.GetAvailableVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, carIDs[1], vehicles[0].CarID)
}
