package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"rentadmin/internal/config"
	"rentadmin/internal/database"
	"rentadmin/internal/dates"
	"rentadmin/internal/export"
	"rentadmin/internal/logging"
	"rentadmin/internal/metrics"
	"rentadmin/internal/models"
	"rentadmin/internal/rental"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		go serveMetrics(cfg.Monitoring.PrometheusPort, logger)
	}

	db, err := database.NewDB(cfg.Database.Driver, cfg.Database.DSN(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &console{
		customers:    rental.NewCustomerDirectory(db, logger),
		locations:    rental.NewLocationRegistry(db, logger),
		reservations: rental.NewReservationManager(db, logger),
		exporter:     export.New(db, cfg.Exports.Path, logger),
		in:           bufio.NewScanner(os.Stdin),
		out:          os.Stdout,
	}
	return app.menuLoop(ctx)
}

func serveMetrics(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
}

// console is the thin interactive layer; all decisions live in the
// rental components.
type console struct {
	customers    *rental.CustomerDirectory
	locations    *rental.LocationRegistry
	reservations *rental.ReservationManager
	exporter     *export.Exporter
	in           *bufio.Scanner
	out          io.Writer
}

const menu = `Actions:
0 - quit
1 - display actions
2 - add a new customer
3 - find a customer
4 - display all customers
5 - delete a customer
6 - make a reservation
7 - delete a location
8 - update a location
9 - display all locations
10 - export reservations
11 - export customers
`

func (c *console) menuLoop(ctx context.Context) error {
	fmt.Fprint(c.out, menu)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		input, ok := c.prompt("Select an action:")
		if !ok {
			return nil
		}

		switch input {
		case "0":
			fmt.Fprintln(c.out, "Bye")
			return nil
		case "1":
			fmt.Fprint(c.out, menu)
		case "2":
			c.addCustomer(ctx)
		case "3":
			c.findCustomer(ctx)
		case "4":
			c.listCustomers(ctx)
		case "5":
			c.deleteCustomer(ctx)
		case "6":
			c.makeReservation(ctx)
		case "7":
			c.deleteLocation(ctx)
		case "8":
			c.updateLocation(ctx)
		case "9":
			c.listLocations(ctx)
		case "10":
			c.export(ctx, c.exporter.Reservations)
		case "11":
			c.export(ctx, c.exporter.Customers)
		default:
			fmt.Fprintln(c.out, "There is no such action")
		}
	}
}

func (c *console) prompt(label string) (string, bool) {
	fmt.Fprintln(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *console) promptID(label string) (int64, bool) {
	text, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Expected a numeric id")
		return 0, false
	}
	return id, true
}

func (c *console) addCustomer(ctx context.Context) {
	var req rental.InsertCustomerRequest
	fields := []struct {
		label string
		dst   *string
	}{
		{"Personal code:", &req.PersonalCode},
		{"First name:", &req.FirstName},
		{"Last name:", &req.LastName},
		{"Date of birth (" + dates.Layout + "):", &req.DateOfBirth},
		{"Address:", &req.Address},
		{"Phone number:", &req.PhoneNumber},
	}
	for _, f := range fields {
		value, ok := c.prompt(f.label)
		if !ok {
			return
		}
		*f.dst = value
	}

	id, err := c.customers.Insert(ctx, req)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "New customer successfully added (id %d)\n", id)
}

func (c *console) findCustomer(ctx context.Context) {
	mode, ok := c.prompt("Find by: 0 - personal code, 1 - first and last name")
	if !ok {
		return
	}
	switch mode {
	case "0":
		code, ok := c.prompt("Personal code:")
		if !ok {
			return
		}
		customer, err := c.customers.FindByPersonalCode(ctx, code)
		if err != nil {
			c.report(err)
			return
		}
		if customer == nil {
			fmt.Fprintln(c.out, "Customer not found")
			return
		}
		c.printCustomers([]models.Customer{*customer})
	case "1":
		first, ok := c.prompt("First name:")
		if !ok {
			return
		}
		last, ok := c.prompt("Last name:")
		if !ok {
			return
		}
		customers, err := c.customers.FindByName(ctx, first, last)
		if err != nil {
			c.report(err)
			return
		}
		if len(customers) == 0 {
			fmt.Fprintln(c.out, "Customer not found")
			return
		}
		c.printCustomers(customers)
	default:
		fmt.Fprintln(c.out, "Wrong input number")
	}
}

func (c *console) listCustomers(ctx context.Context) {
	customers, err := c.customers.ListAll(ctx)
	if err != nil {
		c.report(err)
		return
	}
	c.printCustomers(customers)
}

func (c *console) deleteCustomer(ctx context.Context) {
	c.listCustomers(ctx)
	id, ok := c.promptID("Select a customer to delete by entering id:")
	if !ok {
		return
	}
	deleted, err := c.customers.DeleteByID(ctx, id)
	if err != nil {
		c.report(err)
		return
	}
	if deleted == 0 {
		fmt.Fprintln(c.out, "Customer with such id doesn't exist")
		return
	}
	fmt.Fprintln(c.out, "Customer successfully deleted")
}

func (c *console) makeReservation(ctx context.Context) {
	c.listCustomers(ctx)
	customerID, ok := c.promptID("Select a customer by entering id:")
	if !ok {
		return
	}

	vehicles, err := c.reservations.ListAvailableVehicles(ctx)
	if err != nil {
		c.report(err)
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "car_id\tlicense_number\tmake\tmodel\tprice\tcategory\tcity\taddress")
	for _, v := range vehicles {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			v.CarID, v.LicenseNumber, v.Make, v.Model, v.Price, v.Category, v.City, v.Address)
	}
	w.Flush()

	carID, ok := c.promptID("Select a car by entering id:")
	if !ok {
		return
	}
	pickup, ok := c.prompt("Enter pick up date (" + dates.Layout + "):")
	if !ok {
		return
	}
	ret, ok := c.prompt("Enter return date (" + dates.Layout + "):")
	if !ok {
		return
	}

	id, err := c.reservations.Reserve(ctx, customerID, carID, pickup, ret)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Reservation successfully made (id %d)\n", id)
}

func (c *console) deleteLocation(ctx context.Context) {
	c.listLocations(ctx)
	id, ok := c.promptID("Enter location id to delete:")
	if !ok {
		return
	}
	deleted, err := c.locations.DeleteByID(ctx, id)
	if err != nil {
		c.report(err)
		return
	}
	if deleted == 0 {
		fmt.Fprintln(c.out, "Location with such id doesn't exist")
		return
	}
	fmt.Fprintln(c.out, "Location successfully deleted")
}

func (c *console) updateLocation(ctx context.Context) {
	c.listLocations(ctx)
	id, ok := c.promptID("Enter location id to update:")
	if !ok {
		return
	}
	choice, ok := c.prompt("Update what: 0 - city, 1 - address, 2 - phone number")
	if !ok {
		return
	}
	fields := map[string]string{"0": "city", "1": "address", "2": "phone_number"}
	field, valid := fields[choice]
	if !valid {
		fmt.Fprintln(c.out, "Wrong input number")
		return
	}
	value, ok := c.prompt("Enter new value:")
	if !ok {
		return
	}
	updated, err := c.locations.Update(ctx, id, field, value)
	if err != nil {
		c.report(err)
		return
	}
	if updated == 0 {
		fmt.Fprintln(c.out, "Location with such id doesn't exist")
		return
	}
	fmt.Fprintln(c.out, "Location successfully updated")
}

func (c *console) listLocations(ctx context.Context) {
	locations, err := c.locations.ListAll(ctx)
	if err != nil {
		c.report(err)
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tcity\taddress\tphone_number")
	for _, l := range locations {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", l.ID, l.City, l.Address, l.PhoneNumber)
	}
	w.Flush()
}

func (c *console) printCustomers(customers []models.Customer) {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tpersonal_code\tfirst_name\tlast_name\tdate_of_birth\taddress\tphone_number")
	for _, cu := range customers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			cu.ID, cu.PersonalCode, cu.FirstName, cu.LastName,
			dates.Format(cu.DateOfBirth), cu.Address, cu.PhoneNumber)
	}
	w.Flush()
}

func (c *console) export(ctx context.Context, fn func(context.Context) (string, error)) {
	path, err := fn(ctx)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Export written to %s\n", path)
}

func (c *console) report(err error) {
	var validation *rental.ValidationError
	var guard *rental.IntegrityGuardError
	switch {
	case errors.As(err, &validation):
		fmt.Fprintf(c.out, "Input rejected: %v\n", validation)
	case errors.As(err, &guard):
		fmt.Fprintf(c.out, "Operation refused: %v\n", guard)
	default:
		fmt.Fprintf(c.out, "Operation failed: %v\n", err)
	}
}
