package database

import (
	"context"
	"database/sql"
	"fmt"

	"rentadmin/internal/dates"
	"rentadmin/internal/models"
)

// InsertReservation writes one reservation row inside a transaction.
// Referential integrity against Car and Customer is enforced by the
// store's foreign keys, not re-checked here.
func (db *DB) InsertReservation(ctx context.Context, r *models.Reservation) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO Reservation (car_id, customer_id, pickup_date, return_date) VALUES (?, ?, ?, ?)`
		id, err := db.insertID(ctx, tx, query,
			r.CarID,
			r.CustomerID,
			dates.Format(r.PickupDate),
			dates.Format(r.ReturnDate),
		)
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		r.ID = id
		return nil
	})
}

const reservationRecordQuery = `
    SELECT Reservation.id, license_number, first_name, last_name, pickup_date, return_date
    FROM Reservation
    JOIN Car ON Reservation.car_id = Car.id
    JOIN Customer ON Reservation.customer_id = Customer.id`

func (db *DB) GetAllReservations(ctx context.Context) ([]models.ReservationRecord, error) {
	rows, err := db.QueryContext(ctx, reservationRecordQuery+` ORDER BY pickup_date`)
	if err != nil {
		return nil, fmt.Errorf("get all reservations: %w", err)
	}
	defer rows.Close()
	return scanReservationRecords(rows)
}

func (db *DB) GetReservationsByCustomer(ctx context.Context, customerID int64) ([]models.ReservationRecord, error) {
	query := db.rebind(reservationRecordQuery + ` WHERE customer_id = ? ORDER BY pickup_date`)
	rows, err := db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("get reservations by customer: %w", err)
	}
	defer rows.Close()
	return scanReservationRecords(rows)
}

func scanReservationRecords(rows *sql.Rows) ([]models.ReservationRecord, error) {
	var records []models.ReservationRecord
	for rows.Next() {
		var r models.ReservationRecord
		if err := rows.Scan(&r.ID, &r.LicenseNumber, &r.FirstName, &r.LastName, &r.PickupDate, &r.ReturnDate); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
