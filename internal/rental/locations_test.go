package rental

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentadmin/internal/models"
)

func TestLocationRegistry_DeleteDefault_NoStoreAccess(t *testing.T) {
	db, mock := setupMock(t)
	registry := NewLocationRegistry(db, testLogger())

	_, err := registry.DeleteByID(context.Background(), models.DefaultLocationID)
	var guard *IntegrityGuardError
	require.ErrorAs(t, err, &guard)

	// Rejected before any statement was issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRegistry_DeleteByID_Cascade(t *testing.T) {
	db := setupSQLite(t)
	registry := NewLocationRegistry(db, testLogger())
	ctx := context.Background()

	locationID, err := registry.Add(ctx, "Daugavpils", "Rigas iela 5", "+371 1")
	require.NoError(t, err)

	for _, license := range []string{"V1-0001", "V2-0002"} {
		v := models.Vehicle{LicenseNumber: license, Make: "VW", Model: "Golf", LocationID: locationID}
		require.NoError(t, db.InsertVehicle(ctx, &v))
	}

	deleted, err := registry.DeleteByID(ctx, locationID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	vehicles, err := db.GetVehiclesByLocation(ctx, models.DefaultLocationID)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	for _, v := range vehicles {
		assert.Equal(t, models.DefaultLocationID, v.LocationID)
	}

	locations, err := registry.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, models.DefaultLocationID, locations[0].ID)
}

func TestLocationRegistry_DeleteByID_MidTransactionFailure(t *testing.T) {
	db, mock := setupMock(t)
	registry := NewLocationRegistry(db, testLogger())

	// The reassignment succeeds, the delete fails: the whole operation
	// must roll back, never commit.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE Car SET location_id").
		WithArgs(models.DefaultLocationID, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM Location").
		WithArgs(int64(5)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err := registry.DeleteByID(context.Background(), 5)
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRegistry_Update_AllowListOnly(t *testing.T) {
	db, mock := setupMock(t)
	registry := NewLocationRegistry(db, testLogger())

	for _, field := range []string{"id", "location_id", "city = 'x', id", "drop table"} {
		_, err := registry.Update(context.Background(), 2, field, "Riga")
		var validation *ValidationError
		require.ErrorAs(t, err, &validation, "field %q", field)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRegistry_Update(t *testing.T) {
	db := setupSQLite(t)
	registry := NewLocationRegistry(db, testLogger())
	ctx := context.Background()

	id, err := registry.Add(ctx, "Ventspils", "Osta 1", "")
	require.NoError(t, err)

	updated, err := registry.Update(ctx, id, "city", "Riga")
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	updated, err = registry.Update(ctx, 999999, "city", "Riga")
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}
