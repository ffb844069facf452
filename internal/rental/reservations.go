package rental

import (
	"context"

	"github.com/rs/zerolog"

	"rentadmin/internal/database"
	"rentadmin/internal/dates"
	"rentadmin/internal/models"
)

const componentReservations = "reservations"

// ReservationManager validates dates, lists inventory and commits
// reservations against the store.
type ReservationManager struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewReservationManager(db *database.DB, logger *zerolog.Logger) *ReservationManager {
	return &ReservationManager{db: db, logger: logger}
}

// ListAvailableVehicles is the read-only projection used to pick a car:
// vehicles with status 'available' joined with price, category and
// location.
func (m *ReservationManager) ListAvailableVehicles(ctx context.Context) (_ []models.AvailableVehicle, err error) {
	defer func() { observe(componentReservations, "list_available", err) }()

	vehicles, storeErr := m.db.GetAvailableVehicles(ctx)
	if storeErr != nil {
		return nil, &StoreError{Op: "list available vehicles", Err: storeErr}
	}
	return vehicles, nil
}

// Reserve validates both dates and inserts one reservation row binding
// the customer and the vehicle. When either date fails validation the
// store receives no statement at all; a store failure after that point
// is rolled back and reported.
//
// No ordering between pickup and return is enforced, and the vehicle
// status is not flipped here; both match the established behavior of
// the rental desk flow.
func (m *ReservationManager) Reserve(ctx context.Context, customerID, vehicleID int64, pickupText, returnText string) (_ int64, err error) {
	l := opLogger(m.logger, componentReservations, "reserve")
	defer func() { observe(componentReservations, "reserve", err) }()

	pickup, parseErr := dates.Parse(pickupText)
	if parseErr != nil {
		l.Warn().Str("pickup_date", pickupText).Msg("reservation rejected: invalid pickup date")
		return 0, &ValidationError{Field: "pickup_date", Err: parseErr}
	}
	ret, parseErr := dates.Parse(returnText)
	if parseErr != nil {
		l.Warn().Str("return_date", returnText).Msg("reservation rejected: invalid return date")
		return 0, &ValidationError{Field: "return_date", Err: parseErr}
	}

	reservation := models.Reservation{
		CarID:      vehicleID,
		CustomerID: customerID,
		PickupDate: pickup,
		ReturnDate: ret,
	}
	if storeErr := m.db.InsertReservation(ctx, &reservation); storeErr != nil {
		l.Error().Err(storeErr).Int64("car_id", vehicleID).Int64("customer_id", customerID).
			Msg("reservation rolled back")
		return 0, &StoreError{Op: "insert reservation", Err: storeErr}
	}

	l.Info().Int64("reservation_id", reservation.ID).Int64("car_id", vehicleID).
		Int64("customer_id", customerID).Msg("reservation made")
	return reservation.ID, nil
}

// ListAll returns every reservation with its customer and vehicle
// resolved, ordered by pickup date.
func (m *ReservationManager) ListAll(ctx context.Context) (_ []models.ReservationRecord, err error) {
	defer func() { observe(componentReservations, "list", err) }()

	records, storeErr := m.db.GetAllReservations(ctx)
	if storeErr != nil {
		return nil, &StoreError{Op: "list reservations", Err: storeErr}
	}
	return records, nil
}

// ListByCustomer returns the reservations of one customer.
func (m *ReservationManager) ListByCustomer(ctx context.Context, customerID int64) (_ []models.ReservationRecord, err error) {
	defer func() { observe(componentReservations, "list_by_customer", err) }()

	records, storeErr := m.db.GetReservationsByCustomer(ctx, customerID)
	if storeErr != nil {
		return nil, &StoreError{Op: "list reservations by customer", Err: storeErr}
	}
	return records, nil
}
