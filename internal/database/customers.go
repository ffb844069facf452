package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentadmin/internal/dates"
	"rentadmin/internal/models"
)

const customerColumns = `id, personal_code, first_name, last_name, date_of_birth, address, phone_number`

func (db *DB) InsertCustomer(ctx context.Context, c *models.Customer) error {
	query := `INSERT INTO Customer (personal_code, first_name, last_name, date_of_birth, address, phone_number)
              VALUES (?, ?, ?, ?, ?, ?)`
	id, err := db.insertID(ctx, db.DB, query,
		c.PersonalCode,
		c.FirstName,
		c.LastName,
		dates.Format(c.DateOfBirth),
		c.Address,
		c.PhoneNumber,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	c.ID = id
	return nil
}

// GetCustomerByPersonalCode returns nil when no customer carries the
// code; the personal code is a unique business key.
func (db *DB) GetCustomerByPersonalCode(ctx context.Context, code string) (*models.Customer, error) {
	query := db.rebind(`SELECT ` + customerColumns + ` FROM Customer WHERE personal_code = ?`)
	var c models.Customer
	err := db.QueryRowContext(ctx, query, code).Scan(
		&c.ID, &c.PersonalCode, &c.FirstName, &c.LastName, &c.DateOfBirth, &c.Address, &c.PhoneNumber,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customer by personal code: %w", err)
	}
	return &c, nil
}

// FindCustomersByName matches first and last name exactly, case as stored.
func (db *DB) FindCustomersByName(ctx context.Context, firstName, lastName string) ([]models.Customer, error) {
	query := db.rebind(`SELECT ` + customerColumns + ` FROM Customer WHERE first_name = ? AND last_name = ?`)
	rows, err := db.QueryContext(ctx, query, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("find customers by name: %w", err)
	}
	defer rows.Close()
	return scanCustomers(rows)
}

func (db *DB) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+customerColumns+` FROM Customer`)
	if err != nil {
		return nil, fmt.Errorf("get all customers: %w", err)
	}
	defer rows.Close()
	return scanCustomers(rows)
}

// DeleteCustomer reports the number of rows removed; a missing id is a
// zero count, not an error.
func (db *DB) DeleteCustomer(ctx context.Context, id int64) (int64, error) {
	res, err := db.ExecContext(ctx, db.rebind(`DELETE FROM Customer WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("delete customer: %w", err)
	}
	return res.RowsAffected()
}

// customerUpdates is the fixed set of statement templates for customer
// field updates. Column names never come from the caller.
var customerUpdates = map[string]string{
	"address":      `UPDATE Customer SET address = ? WHERE id = ?`,
	"phone_number": `UPDATE Customer SET phone_number = ? WHERE id = ?`,
}

func (db *DB) UpdateCustomerField(ctx context.Context, id int64, field, value string) (int64, error) {
	query, ok := customerUpdates[field]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFieldNotAllowed, field)
	}
	res, err := db.ExecContext(ctx, db.rebind(query), value, id)
	if err != nil {
		return 0, fmt.Errorf("update customer %s: %w", field, err)
	}
	return res.RowsAffected()
}

func scanCustomers(rows *sql.Rows) ([]models.Customer, error) {
	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.PersonalCode, &c.FirstName, &c.LastName, &c.DateOfBirth, &c.Address, &c.PhoneNumber); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}
