package models

import "time"

// DefaultLocationID is the distinguished location that absorbs vehicles
// from deleted locations and can itself never be deleted.
const DefaultLocationID int64 = 1

const (
	StatusAvailable   = "available"
	StatusReserved    = "reserved"
	StatusMaintenance = "maintenance"
)

type Customer struct {
	ID           int64     `json:"id"`
	PersonalCode string    `json:"personal_code"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	Address      string    `json:"address"`
	PhoneNumber  string    `json:"phone_number"`
}

type Location struct {
	ID          int64  `json:"id"`
	City        string `json:"city"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

type Vehicle struct {
	ID            int64  `json:"id"`
	LicenseNumber string `json:"license_number"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	LocationID    int64  `json:"location_id"`
	Status        string `json:"status"`
}

// Category is the pricing facet of a vehicle. It shares the vehicle id.
type Category struct {
	ID       int64   `json:"id"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type Reservation struct {
	ID         int64     `json:"id"`
	CarID      int64     `json:"car_id"`
	CustomerID int64     `json:"customer_id"`
	PickupDate time.Time `json:"pickup_date"`
	ReturnDate time.Time `json:"return_date"`
}

// AvailableVehicle is the projection shown to a caller picking a car:
// vehicle, pricing facet and location joined into one row.
type AvailableVehicle struct {
	CarID         int64   `json:"car_id"`
	LicenseNumber string  `json:"license_number"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	City          string  `json:"city"`
	Address       string  `json:"address"`
}

// ReservationRecord is the reporting projection of a reservation with
// its customer and vehicle resolved.
type ReservationRecord struct {
	ID            int64     `json:"id"`
	LicenseNumber string    `json:"license_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PickupDate    time.Time `json:"pickup_date"`
	ReturnDate    time.Time `json:"return_date"`
}
