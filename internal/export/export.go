package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"rentadmin/internal/database"
	"rentadmin/internal/dates"
)

// Exporter writes xlsx listings of the store's entities into a local
// directory.
type Exporter struct {
	db     *database.DB
	dir    string
	logger *zerolog.Logger
}

func New(db *database.DB, dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{db: db, dir: dir, logger: logger}
}

// Reservations writes every reservation with its customer and vehicle
// resolved and returns the created file path.
func (e *Exporter) Reservations(ctx context.Context) (string, error) {
	records, err := e.db.GetAllReservations(ctx)
	if err != nil {
		return "", fmt.Errorf("load reservations: %w", err)
	}

	headers := []string{"ID", "License number", "First name", "Last name", "Pickup date", "Return date"}
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.ID, r.LicenseNumber, r.FirstName, r.LastName,
			dates.Format(r.PickupDate), dates.Format(r.ReturnDate),
		})
	}

	return e.writeSheet(ctx, "Reservations", "reservations", headers, rows)
}

// Customers writes the customer directory and returns the created file
// path.
func (e *Exporter) Customers(ctx context.Context) (string, error) {
	customers, err := e.db.GetAllCustomers(ctx)
	if err != nil {
		return "", fmt.Errorf("load customers: %w", err)
	}

	headers := []string{"ID", "Personal code", "First name", "Last name", "Date of birth", "Address", "Phone number"}
	rows := make([][]any, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []any{
			c.ID, c.PersonalCode, c.FirstName, c.LastName,
			dates.Format(c.DateOfBirth), c.Address, c.PhoneNumber,
		})
	}

	return e.writeSheet(ctx, "Customers", "customers", headers, rows)
}

func (e *Exporter) writeSheet(_ context.Context, sheetName, filePrefix string, headers []string, rows [][]any) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheetName, "A", lastCol, 18)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("%s_%s.xlsx", filePrefix, time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.dir, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("rows", len(rows)).Msg("export created")
	return filePath, nil
}
