package rental

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"rentadmin/internal/database"
	"rentadmin/internal/models"
)

const componentLocations = "locations"

// LocationRegistry is CRUD over rental locations. Deleting a location
// relocates its vehicles to the default location in the same
// transaction; the default location itself is protected.
type LocationRegistry struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewLocationRegistry(db *database.DB, logger *zerolog.Logger) *LocationRegistry {
	return &LocationRegistry{db: db, logger: logger}
}

func (r *LocationRegistry) ListAll(ctx context.Context) (_ []models.Location, err error) {
	defer func() { observe(componentLocations, "list", err) }()

	locations, storeErr := r.db.GetAllLocations(ctx)
	if storeErr != nil {
		return nil, &StoreError{Op: "list locations", Err: storeErr}
	}
	return locations, nil
}

func (r *LocationRegistry) Add(ctx context.Context, city, address, phone string) (_ int64, err error) {
	l := opLogger(r.logger, componentLocations, "add")
	defer func() { observe(componentLocations, "add", err) }()

	location := models.Location{City: city, Address: address, PhoneNumber: phone}
	if storeErr := r.db.InsertLocation(ctx, &location); storeErr != nil {
		l.Error().Err(storeErr).Msg("location insert failed")
		return 0, &StoreError{Op: "insert location", Err: storeErr}
	}

	l.Info().Int64("location_id", location.ID).Str("city", city).Msg("location added")
	return location.ID, nil
}

// DeleteByID removes a location after reassigning its vehicles to the
// default location; both statements commit together or neither takes
// effect. Deleting the default location is refused before the store is
// touched. Returns how many location rows were removed.
func (r *LocationRegistry) DeleteByID(ctx context.Context, id int64) (_ int64, err error) {
	l := opLogger(r.logger, componentLocations, "delete")
	defer func() { observe(componentLocations, "delete", err) }()

	if id == models.DefaultLocationID {
		l.Warn().Int64("location_id", id).Msg("location delete rejected: default location")
		return 0, ErrDefaultLocation
	}

	deleted, storeErr := r.db.DeleteLocation(ctx, id)
	if storeErr != nil {
		l.Error().Err(storeErr).Int64("location_id", id).Msg("location delete rolled back")
		return 0, &StoreError{Op: "delete location", Err: storeErr}
	}

	l.Info().Int64("location_id", id).Int64("deleted", deleted).Msg("location delete finished")
	return deleted, nil
}

// Update changes a single allow-listed field (city, address or
// phone_number). Any other field selector is rejected before a
// statement is built. A zero count means the id was not found.
func (r *LocationRegistry) Update(ctx context.Context, id int64, field, value string) (_ int64, err error) {
	l := opLogger(r.logger, componentLocations, "update")
	defer func() { observe(componentLocations, "update", err) }()

	updated, storeErr := r.db.UpdateLocationField(ctx, id, field, value)
	if storeErr != nil {
		if errors.Is(storeErr, database.ErrFieldNotAllowed) {
			l.Warn().Str("field", field).Msg("location update rejected: field not allowed")
			return 0, &ValidationError{Field: "field", Err: storeErr}
		}
		l.Error().Err(storeErr).Int64("location_id", id).Msg("location update failed")
		return 0, &StoreError{Op: "update location", Err: storeErr}
	}

	l.Info().Int64("location_id", id).Str("field", field).Int64("updated", updated).Msg("location update finished")
	return updated, nil
}
