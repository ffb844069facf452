package rental

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"rentadmin/internal/database"
	"rentadmin/internal/dates"
	"rentadmin/internal/models"
)

const componentCustomers = "customers"

// CustomerDirectory is CRUD over customer records. The date of birth is
// validated before any statement is issued.
type CustomerDirectory struct {
	db     *database.DB
	logger *zerolog.Logger
}

func NewCustomerDirectory(db *database.DB, logger *zerolog.Logger) *CustomerDirectory {
	return &CustomerDirectory{db: db, logger: logger}
}

// InsertCustomerRequest carries raw caller input; the date of birth is
// text until it survives validation.
type InsertCustomerRequest struct {
	PersonalCode string
	FirstName    string
	LastName     string
	DateOfBirth  string
	Address      string
	PhoneNumber  string
}

// Insert validates the date of birth and writes one customer row.
// On a validation failure the store receives nothing.
func (d *CustomerDirectory) Insert(ctx context.Context, req InsertCustomerRequest) (_ int64, err error) {
	l := opLogger(d.logger, componentCustomers, "insert")
	defer func() { observe(componentCustomers, "insert", err) }()

	dob, parseErr := dates.Parse(req.DateOfBirth)
	if parseErr != nil {
		l.Warn().Str("date_of_birth", req.DateOfBirth).Msg("customer rejected: invalid date of birth")
		return 0, &ValidationError{Field: "date_of_birth", Err: parseErr}
	}

	customer := models.Customer{
		PersonalCode: req.PersonalCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  dob,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
	}
	if storeErr := d.db.InsertCustomer(ctx, &customer); storeErr != nil {
		l.Error().Err(storeErr).Msg("customer insert failed")
		return 0, &StoreError{Op: "insert customer", Err: storeErr}
	}

	l.Info().Int64("customer_id", customer.ID).Str("personal_code", customer.PersonalCode).Msg("customer added")
	return customer.ID, nil
}

// FindByPersonalCode returns zero or one customer.
func (d *CustomerDirectory) FindByPersonalCode(ctx context.Context, code string) (_ *models.Customer, err error) {
	defer func() { observe(componentCustomers, "find_by_code", err) }()

	customer, storeErr := d.db.GetCustomerByPersonalCode(ctx, code)
	if storeErr != nil {
		return nil, &StoreError{Op: "find customer by personal code", Err: storeErr}
	}
	return customer, nil
}

// FindByName matches first and last name exactly, case as stored.
func (d *CustomerDirectory) FindByName(ctx context.Context, firstName, lastName string) (_ []models.Customer, err error) {
	defer func() { observe(componentCustomers, "find_by_name", err) }()

	customers, storeErr := d.db.FindCustomersByName(ctx, firstName, lastName)
	if storeErr != nil {
		return nil, &StoreError{Op: "find customers by name", Err: storeErr}
	}
	return customers, nil
}

func (d *CustomerDirectory) ListAll(ctx context.Context) (_ []models.Customer, err error) {
	defer func() { observe(componentCustomers, "list", err) }()

	customers, storeErr := d.db.GetAllCustomers(ctx)
	if storeErr != nil {
		return nil, &StoreError{Op: "list customers", Err: storeErr}
	}
	return customers, nil
}

// DeleteByID reports how many rows were removed. Deleting an id that
// does not exist is a zero count, not a failure.
func (d *CustomerDirectory) DeleteByID(ctx context.Context, id int64) (_ int64, err error) {
	l := opLogger(d.logger, componentCustomers, "delete")
	defer func() { observe(componentCustomers, "delete", err) }()

	deleted, storeErr := d.db.DeleteCustomer(ctx, id)
	if storeErr != nil {
		l.Error().Err(storeErr).Int64("customer_id", id).Msg("customer delete failed")
		return 0, &StoreError{Op: "delete customer", Err: storeErr}
	}

	l.Info().Int64("customer_id", id).Int64("deleted", deleted).Msg("customer delete finished")
	return deleted, nil
}

// Update changes a single allow-listed contact field (address or
// phone_number). Any other field selector is rejected before a
// statement is built.
func (d *CustomerDirectory) Update(ctx context.Context, id int64, field, value string) (_ int64, err error) {
	l := opLogger(d.logger, componentCustomers, "update")
	defer func() { observe(componentCustomers, "update", err) }()

	updated, storeErr := d.db.UpdateCustomerField(ctx, id, field, value)
	if storeErr != nil {
		if errors.Is(storeErr, database.ErrFieldNotAllowed) {
			l.Warn().Str("field", field).Msg("customer update rejected: field not allowed")
			return 0, &ValidationError{Field: "field", Err: storeErr}
		}
		l.Error().Err(storeErr).Int64("customer_id", id).Msg("customer update failed")
		return 0, &StoreError{Op: "update customer", Err: storeErr}
	}

	l.Info().Int64("customer_id", id).Str("field", field).Int64("updated", updated).Msg("customer update finished")
	return updated, nil
}
