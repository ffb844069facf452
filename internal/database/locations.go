package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentadmin/internal/models"
)

func (db *DB) InsertLocation(ctx context.Context, l *models.Location) error {
	query := `INSERT INTO Location (city, address, phone_number) VALUES (?, ?, ?)`
	id, err := db.insertID(ctx, db.DB, query, l.City, l.Address, l.PhoneNumber)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	l.ID = id
	return nil
}

func (db *DB) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	query := db.rebind(`SELECT id, city, address, phone_number FROM Location WHERE id = ?`)
	var l models.Location
	err := db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.City, &l.Address, &l.PhoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (db *DB) GetAllLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, city, address, phone_number FROM Location`)
	if err != nil {
		return nil, fmt.Errorf("get all locations: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.City, &l.Address, &l.PhoneNumber); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return locations, nil
}

// DeleteLocation reassigns every car at the location to the default
// location and removes the location row in one transaction. The
// reassignment must run before the delete or the cars would be left
// pointing at a missing row. Returns the number of location rows
// removed; both statements take effect together or not at all.
func (db *DB) DeleteLocation(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			db.rebind(`UPDATE Car SET location_id = ? WHERE location_id = ?`),
			models.DefaultLocationID, id)
		if err != nil {
			return fmt.Errorf("reassign cars: %w", err)
		}

		res, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM Location WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete location: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// locationUpdates maps allowed field tokens to prepared statement
// templates. Anything outside this map is rejected before a statement
// is built.
var locationUpdates = map[string]string{
	"city":         `UPDATE Location SET city = ? WHERE id = ?`,
	"address":      `UPDATE Location SET address = ? WHERE id = ?`,
	"phone_number": `UPDATE Location SET phone_number = ? WHERE id = ?`,
}

func (db *DB) UpdateLocationField(ctx context.Context, id int64, field, value string) (int64, error) {
	query, ok := locationUpdates[field]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFieldNotAllowed, field)
	}
	res, err := db.ExecContext(ctx, db.rebind(query), value, id)
	if err != nil {
		return 0, fmt.Errorf("update location %s: %w", field, err)
	}
	return res.RowsAffected()
}
