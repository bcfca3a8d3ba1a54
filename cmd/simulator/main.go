package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/models"
)

var (
	makes = map[string][]string{
		"Petrol": {"Toyota", "Hyundai", "Kia", "Nissan", "Honda"},
		"Diesel": {"Toyota", "Mitsubishi", "Isuzu", "Ford"},
		"Hybrid": {"Toyota", "Honda", "Hyundai"},
	}
	modelNames = map[string][]string{
		"Petrol": {"Corolla", "Elantra", "Rio", "Almera", "Civic"},
		"Diesel": {"Hilux", "L200", "D-Max", "Ranger"},
		"Hybrid": {"Prius", "Insight", "Ioniq"},
	}
	fuelTypes = []string{"Petrol", "Diesel", "Hybrid"}
	customers = []string{"Ama Owusu", "Kwame Asante", "Efua Boateng", "Kofi Mensah", "Akosua Darko", "Yaw Frimpong"}
	garages   = []string{"AutoFix Garage", "Accra Motors Service", "Kumasi Auto Care"}
)

var authToken string

var httpClient = &http.Client{Timeout: 10 * time.Second}

// authorizedRequest sends body as JSON with the session token attached.
func authorizedRequest(method, url string, body interface{}) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	return httpClient.Do(req)
}

// call performs a request and decodes the response into out when it is
// non-nil. Any status other than want is an error.
func call(method, url string, body interface{}, want int, out interface{}) error {
	resp, err := authorizedRequest(method, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func login(apiURL, username, password string) (string, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Username: username, Password: password}
	if err := call(http.MethodPost, apiURL+"/auth/login", req, http.StatusOK, &resp); err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	return resp.Token, nil
}

func createVehicle(apiURL string, n int) (models.Vehicle, error) {
	fuel := fuelTypes[rand.Intn(len(fuelTypes))]
	vehicle := models.Vehicle{
		Make:         makes[fuel][rand.Intn(len(makes[fuel]))],
		Model:        modelNames[fuel][rand.Intn(len(modelNames[fuel]))],
		Year:         2018 + rand.Intn(7),
		LicensePlate: fmt.Sprintf("GS %04d-%02d", 1000+n, 18+rand.Intn(7)),
		Status:       models.VehicleAvailable,
		FuelType:     fuel,
		Odometer:     float64(10000 + rand.Intn(90000)),
	}
	var created models.Vehicle
	if err := call(http.MethodPost, apiURL+"/vehicles", vehicle, http.StatusCreated, &created); err != nil {
		return models.Vehicle{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	log.WithFields(log.Fields{
		"vehicle_id": created.ID,
		"make":       created.Make,
		"model":      created.Model,
		"plate":      created.LicensePlate,
	}).Info("Created vehicle")
	return created, nil
}

// VehicleState tracks what the simulator is doing with one vehicle.
type VehicleState struct {
	Vehicle     models.Vehicle
	Rental      *models.Rental
	Maintenance *models.Maintenance
	DaysLeft    int
}

func startRental(apiURL string, s *VehicleState, day time.Time) error {
	days := 1 + rand.Intn(7)
	rental := models.Rental{
		VehicleID:       s.Vehicle.ID,
		CustomerName:    customers[rand.Intn(len(customers))],
		CustomerPhone:   fmt.Sprintf("+233 24 %03d %04d", rand.Intn(1000), rand.Intn(10000)),
		StartDate:       day.Format(models.DateLayout),
		ExpectedEndDate: day.AddDate(0, 0, days-1).Format(models.DateLayout),
		RentalRate:      float64(100 + 25*rand.Intn(9)),
		Deposit:         300,
		Status:          models.RentalActive,
	}
	var created models.Rental
	if err := call(http.MethodPost, apiURL+"/rentals", rental, http.StatusCreated, &created); err != nil {
		return err
	}
	s.Rental = &created
	s.DaysLeft = days
	log.WithFields(log.Fields{
		"vehicle_id": s.Vehicle.ID,
		"rental_id":  created.ID,
		"customer":   created.CustomerName,
		"days":       days,
	}).Info("Started rental")
	return nil
}

func returnRental(apiURL string, s *VehicleState, day time.Time) error {
	rental := *s.Rental
	rental.Status = models.RentalCompleted
	rental.ActualEndDate = day.Format(models.DateLayout)
	var updated models.Rental
	if err := call(http.MethodPut, apiURL+"/rentals/"+rental.ID, rental, http.StatusOK, &updated); err != nil {
		return err
	}
	s.Rental = nil
	log.WithFields(log.Fields{
		"vehicle_id": s.Vehicle.ID,
		"rental_id":  updated.ID,
		"total":      models.FormatMoney(updated.Amount()),
	}).Info("Returned rental")
	return nil
}

func recordFuel(apiURL string, s *VehicleState, day time.Time) error {
	expenditure := models.Expenditure{
		VehicleID:     s.Vehicle.ID,
		Category:      models.CategoryFuel,
		Amount:        float64(150 + rand.Intn(350)),
		Date:          day.Format(models.DateLayout),
		Description:   "Fuel top-up",
		PaymentMethod: models.PaymentMobileMoney,
	}
	return call(http.MethodPost, apiURL+"/expenditures", expenditure, http.StatusCreated, nil)
}

func scheduleMaintenance(apiURL string, s *VehicleState, day time.Time) error {
	record := models.Maintenance{
		VehicleID:       s.Vehicle.ID,
		Type:            models.MaintenanceRoutine,
		Description:     "Oil change and filter replacement",
		Cost:            float64(200 + rand.Intn(600)),
		ServiceDate:     day.Format(models.DateLayout),
		ServiceProvider: garages[rand.Intn(len(garages))],
	}
	var created models.Maintenance
	if err := call(http.MethodPost, apiURL+"/maintenance", record, http.StatusCreated, &created); err != nil {
		return err
	}
	s.Maintenance = &created
	s.DaysLeft = 1 + rand.Intn(2)
	log.WithFields(log.Fields{
		"vehicle_id":     s.Vehicle.ID,
		"maintenance_id": created.ID,
	}).Info("Vehicle sent to maintenance")
	return nil
}

func completeMaintenance(apiURL string, s *VehicleState) error {
	url := apiURL + "/maintenance/" + s.Maintenance.ID + "/complete"
	if err := call(http.MethodPost, url, nil, http.StatusOK, &s.Vehicle); err != nil {
		return err
	}
	s.Maintenance = nil
	log.WithField("vehicle_id", s.Vehicle.ID).Info("Vehicle back from maintenance")
	return nil
}

// step advances one vehicle by one simulated day.
func step(apiURL string, s *VehicleState, day time.Time) error {
	switch {
	case s.Maintenance != nil:
		s.DaysLeft--
		if s.DaysLeft <= 0 {
			return completeMaintenance(apiURL, s)
		}
	case s.Rental != nil:
		s.DaysLeft--
		if rand.Float64() < 0.3 {
			if err := recordFuel(apiURL, s, day); err != nil {
				return err
			}
		}
		if s.DaysLeft > 0 {
			return nil
		}
		if err := returnRental(apiURL, s, day); err != nil {
			return err
		}
		if rand.Float64() < 0.2 {
			return scheduleMaintenance(apiURL, s, day)
		}
	default:
		if rand.Float64() < 0.5 {
			return startRental(apiURL, s, day)
		}
	}
	return nil
}

// simulateFleet advances every vehicle one simulated day per tick until ctx
// is cancelled.
func simulateFleet(ctx context.Context, apiURL string, states []*VehicleState, start time.Time, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	day := start
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
		for _, s := range states {
			if err := step(apiURL, s, day); err != nil {
				log.WithError(err).WithField("vehicle_id", s.Vehicle.ID).Error("Simulation step failed")
			}
		}
		log.WithField("day", day.Format(models.DateLayout)).Debug("Simulated day")
		day = day.AddDate(0, 0, 1)
	}
}

func main() {
	authToken = os.Getenv("SIM_AUTH_TOKEN")

	fleetSize := 5
	if val := os.Getenv("FLEET_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			fleetSize = n
		}
	}

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	interval := 2 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	if authToken == "" {
		username := os.Getenv("SIM_USERNAME")
		if username == "" {
			username = "admin"
		}
		token, err := login(apiURL, username, os.Getenv("SIM_PASSWORD"))
		if err != nil {
			log.WithError(err).Fatal("Set SIM_AUTH_TOKEN or SIM_USERNAME/SIM_PASSWORD")
		}
		authToken = token
	}

	log.WithFields(log.Fields{
		"fleet_size": fleetSize,
		"api_url":    apiURL,
		"interval":   interval,
	}).Info("Starting rental simulation")

	states := make([]*VehicleState, 0, fleetSize)
	for i := 0; i < fleetSize; i++ {
		vehicle, err := createVehicle(apiURL, i+1)
		if err != nil {
			log.WithError(err).Error("Failed to create vehicle")
			continue
		}
		states = append(states, &VehicleState{Vehicle: vehicle})
	}

	log.WithField("created_vehicles", len(states)).Info("Vehicle creation completed")
	if len(states) == 0 {
		log.Error("No vehicles created. Ensure the API is reachable and the credentials are valid. Exiting.")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	simulateFleet(ctx, apiURL, states, time.Now(), interval)
	log.Info("Simulation stopped")
}
