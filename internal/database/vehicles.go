package database

import (
	"context"
	"fmt"

	"rentadmin/internal/models"
)

func (db *DB) InsertVehicle(ctx context.Context, v *models.Vehicle) error {
	if v.Status == "" {
		v.Status = models.StatusAvailable
	}
	query := `INSERT INTO Car (license_number, make, model, location_id, status) VALUES (?, ?, ?, ?, ?)`
	id, err := db.insertID(ctx, db.DB, query, v.LicenseNumber, v.Make, v.Model, v.LocationID, v.Status)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	v.ID = id
	return nil
}

func (db *DB) InsertCategory(ctx context.Context, c *models.Category) error {
	query := db.rebind(`INSERT INTO Car_categories (id, price, category) VALUES (?, ?, ?)`)
	if _, err := db.ExecContext(ctx, query, c.ID, c.Price, c.Category); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetAvailableVehicles joins each car with its pricing facet and its
// location, filtered to cars currently offered for reservation.
func (db *DB) GetAvailableVehicles(ctx context.Context) ([]models.AvailableVehicle, error) {
	query := db.rebind(`
        SELECT Car.id, license_number, make, model, price, category, city, Location.address
        FROM Car
        JOIN Car_categories ON Car.id = Car_categories.id
        JOIN Location ON Car.location_id = Location.id
        WHERE status = ?
        ORDER BY Car.id`)

	rows, err := db.QueryContext(ctx, query, models.StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("get available vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.AvailableVehicle
	for rows.Next() {
		var v models.AvailableVehicle
		if err := rows.Scan(&v.CarID, &v.LicenseNumber, &v.Make, &v.Model, &v.Price, &v.Category, &v.City, &v.Address); err != nil {
			return nil, fmt.Errorf("scan available vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (db *DB) GetVehiclesByLocation(ctx context.Context, locationID int64) ([]models.Vehicle, error) {
	query := db.rebind(`SELECT id, license_number, make, model, location_id, status FROM Car WHERE location_id = ?`)
	rows, err := db.QueryContext(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("get vehicles by location: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.LicenseNumber, &v.Make, &v.Model, &v.LocationID, &v.Status); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}
