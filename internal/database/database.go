package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB wraps the sql.DB pool. All entity tables live in the store; no
// in-process representation survives across operations.
type DB struct {
	*sql.DB
	driver string
	logger *zerolog.Logger
}

// NewDB opens the store and, on sqlite, bootstraps the schema. The
// postgres deployment owns its schema, so only connectivity is checked
// there.
func NewDB(driver, dsn string, logger *zerolog.Logger) (*DB, error) {
	if driver == DriverSQLite && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if driver == DriverSQLite {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		if err := createTables(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("create tables: %w", err)
		}
	}

	logger.Info().Str("driver", driver).Msg("database initialized")
	return &DB{DB: db, driver: driver, logger: logger}, nil
}

// NewFromDB wraps an already-open pool. Used by tests that drive the
// store through a mock driver.
func NewFromDB(db *sql.DB, driver string, logger *zerolog.Logger) *DB {
	return &DB{DB: db, driver: driver, logger: logger}
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS Location (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            city TEXT NOT NULL,
            address TEXT,
            phone_number TEXT
        )`,

		`CREATE TABLE IF NOT EXISTS Customer (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            personal_code TEXT UNIQUE NOT NULL,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            date_of_birth DATE NOT NULL,
            address TEXT,
            phone_number TEXT
        )`,

		`CREATE TABLE IF NOT EXISTS Car (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            license_number TEXT UNIQUE NOT NULL,
            make TEXT NOT NULL,
            model TEXT NOT NULL,
            location_id INTEGER NOT NULL,
            status TEXT NOT NULL DEFAULT 'available',
            FOREIGN KEY (location_id) REFERENCES Location(id)
        )`,

		// Pricing facet keyed by the car id itself.
		`CREATE TABLE IF NOT EXISTS Car_categories (
            id INTEGER PRIMARY KEY,
            price REAL NOT NULL,
            category TEXT NOT NULL,
            FOREIGN KEY (id) REFERENCES Car(id)
        )`,

		`CREATE TABLE IF NOT EXISTS Reservation (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            car_id INTEGER NOT NULL,
            customer_id INTEGER NOT NULL,
            pickup_date DATE NOT NULL,
            return_date DATE NOT NULL,
            FOREIGN KEY (car_id) REFERENCES Car(id),
            FOREIGN KEY (customer_id) REFERENCES Customer(id)
        )`,

		`CREATE INDEX IF NOT EXISTS idx_car_location ON Car(location_id)`,
		`CREATE INDEX IF NOT EXISTS idx_car_status ON Car(status)`,
		`CREATE INDEX IF NOT EXISTS idx_reservation_car ON Reservation(car_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reservation_customer ON Reservation(customer_id)`,

		// The default location must always exist.
		`INSERT OR IGNORE INTO Location (id, city, address, phone_number)
            VALUES (1, 'Riga', 'Central depot', '')`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to the $n form lib/pq expects.
// Statements are written with ? throughout and rebound per driver.
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insertID runs an INSERT and reports the assigned id. Postgres has no
// LastInsertId, so the statement grows a RETURNING clause there.
func (db *DB) insertID(ctx context.Context, run execer, query string, args ...any) (int64, error) {
	if db.driver == DriverPostgres {
		var id int64
		err := run.QueryRowContext(ctx, db.rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := run.ExecContext(ctx, db.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// withTx runs fn inside a transaction: commit when fn returns nil,
// rollback otherwise. The pool connection is back in autocommit mode on
// every exit path, including failures.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
