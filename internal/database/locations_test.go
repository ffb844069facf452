package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentadmin/internal/models"
)

func TestInsertAndListLocations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	location := models.Location{City: "Daugavpils", Address: "Rigas iela 5", PhoneNumber: "+371 1"}
	require.NoError(t, db.InsertLocation(ctx, &location))
	assert.Greater(t, location.ID, models.DefaultLocationID)

	locations, err := db.GetAllLocations(ctx)
	require.NoError(t, err)
	// Default location plus the inserted one.
	assert.Len(t, locations, 2)
}

func TestDeleteLocation_ReassignsVehicles(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	locationID, carIDs := seedFleet(t, db)
	require.Len(t, carIDs, 2)

	deleted, err := db.DeleteLocation(ctx, locationID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// The location row is gone.
	location, err := db.GetLocation(ctx, locationID)
	require.NoError(t, err)
	assert.Nil(t, location)

	// Every vehicle moved to the default location.
	vehicles, err := db.GetVehiclesByLocation(ctx, models.DefaultLocationID)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	for _, v := range vehicles {
		assert.Equal(t, models.DefaultLocationID, v.LocationID)
	}

	orphans, err := db.GetVehiclesByLocation(ctx, locationID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestDeleteLocation_MissingID(t *testing.T) {
	db := setupTestDB(t)

	deleted, err := db.DeleteLocation(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestUpdateLocationField(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	location := models.Location{City: "Ventspils", Address: "Osta 1", PhoneNumber: ""}
	require.NoError(t, db.InsertLocation(ctx, &location))

	updated, err := db.UpdateLocationField(ctx, location.ID, "city", "Jurmala")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	got, err := db.GetLocation(ctx, location.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jurmala", got.City)

	// Missing id reports zero affected rows.
	updated, err = db.UpdateLocationField(ctx, 999, "city", "Nowhere")
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestUpdateLocationField_AllowListOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, field := range []string{"id", "city; DROP TABLE Location", "status", ""} {
		_, err := db.UpdateLocationField(ctx, models.DefaultLocationID, field, "x")
		assert.ErrorIs(t, err, ErrFieldNotAllowed, "field %q", field)
	}
}
