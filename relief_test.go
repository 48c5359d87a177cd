package relief_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	relief "github.com/xraph/relief"
	"github.com/xraph/relief/notify"
	"github.com/xraph/relief/person"
	"github.com/xraph/relief/sensor"
	"github.com/xraph/relief/service"
	"github.com/xraph/relief/store/memory"
	"github.com/xraph/relief/supply"
)

func newCoordinator(t *testing.T, opts ...relief.Option) (*relief.Coordinator, *notify.Capture) {
	t.Helper()

	capture := notify.NewCapture()
	base := []relief.Option{
		relief.WithSink(capture),
		relief.WithAdminEmail("admin@example.com"),
		relief.WithNotifyTimeout(time.Second),
	}
	c := relief.New(memory.New(), append(base, opts...)...)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Stop(); err != nil {
			t.Errorf("Stop: %v", err)
		}
	})
	return c, capture
}

func validRegistration() person.Registration {
	return person.Registration{
		Name:     "Asha Kulkarni",
		Age:      34,
		Location: "Pune",
		Phone:    "9876543210",
		Email:    "asha@example.com",
		Password: "secret",
	}
}

// ──────────────────────────────────────────────────
// Supply ledger
// ──────────────────────────────────────────────────

func TestConsumeDecrementsLedger(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	res, err := c.Consume(ctx, supply.ConsumeRequest{
		Location: "Maharashtra", Year: 2025, Food: 100, Med: 50,
	})
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if res.RemainingFood != 4900 || res.RemainingMed != 2950 {
		t.Errorf("remaining: got %d food, %d med, want 4900, 2950",
			res.RemainingFood, res.RemainingMed)
	}

	avail, err := c.Availability(ctx, "Maharashtra", 2025)
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if avail.Food != 4900 || avail.Med != 2950 {
		t.Errorf("availability: got %d food, %d med, want 4900, 2950",
			avail.Food, avail.Med)
	}
}

func TestConsumeAllOrNothing(t *testing.T) {
	c, capture := newCoordinator(t)
	ctx := context.Background()

	// Drain most of the medical stock first.
	if _, err := c.Consume(ctx, supply.ConsumeRequest{
		Location: "Maharashtra", Year: 2025, Food: 0, Med: 2990,
	}); err != nil {
		t.Fatalf("setup Consume: %v", err)
	}
	capture.Reset()

	// Food alone would fit; the medical side cannot. Nothing may move.
	_, err := c.Consume(ctx, supply.ConsumeRequest{
		Location: "Maharashtra", Year: 2025, Food: 4950, Med: 100,
	})
	if !errors.Is(err, relief.ErrInsufficientSupply) {
		t.Fatalf("got %v, want ErrInsufficientSupply", err)
	}

	var rejection relief.InsufficientSupplyError
	if !errors.As(err, &rejection) {
		t.Fatalf("error %v is not an InsufficientSupplyError", err)
	}
	if rejection.AvailableFood != 5000 || rejection.AvailableMed != 10 {
		t.Errorf("rejection availability: got %d food, %d med, want 5000, 10",
			rejection.AvailableFood, rejection.AvailableMed)
	}

	avail, err := c.Availability(ctx, "Maharashtra", 2025)
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if avail.Food != 5000 || avail.Med != 10 {
		t.Errorf("ledger changed on rejection: got %d food, %d med, want 5000, 10",
			avail.Food, avail.Med)
	}

	// The admin must have been alerted.
	msg, ok := capture.Last()
	if !ok {
		t.Fatal("no admin alert captured")
	}
	if msg.To != "admin@example.com" {
		t.Errorf("alert recipient: got %q, want admin@example.com", msg.To)
	}
	if msg.Subject != "Supply Alert [Maharashtra]" {
		t.Errorf("alert subject: got %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "ALERT: Supply insufficient at Maharashtra for 2025.") {
		t.Errorf("alert body: got %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "Available: 5000 food, 10 medical.") {
		t.Errorf("alert body availability line: got %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "Requested: 4950 food, 100 medical.") {
		t.Errorf("alert body request line: got %q", msg.Body)
	}
}

func TestConsumeRejectionLeavesStateUnchanged(t *testing.T) {
	c, capture := newCoordinator(t)
	ctx := context.Background()

	if _, err := c.Consume(ctx, supply.ConsumeRequest{
		Location: "Maharashtra", Year: 2025, Food: 100, Med: 50,
	}); err != nil {
		t.Fatalf("setup Consume: %v", err)
	}
	capture.Reset()

	// 4950 food against 4900 available: rejected, counters untouched.
	_, err := c.Consume(ctx, supply.ConsumeRequest{
		Location: "Maharashtra", Year: 2025, Food: 4950, Med: 10,
	})
	if !errors.Is(err, relief.ErrInsufficientSupply) {
		t.Fatalf("got %v, want ErrInsufficientSupply", err)
	}

	avail, err := c.Availability(ctx, "Maharashtra", 2025)
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if avail.Food != 4900 || avail.Med != 2950 {
		t.Errorf("availability after rejection: got %d food, %d med, want 4900, 2950",
			avail.Food, avail.Med)
	}

	if _, ok := capture.Last(); !ok {
		t.Error("no admin alert captured for rejection")
	}
}

func TestConsumeUnknownLocation(t *testing.T) {
	c, capture := newCoordinator(t)

	_, err := c.Consume(context.Background(), supply.ConsumeRequest{
		Location: "Atlantis", Year: 2025, Food: 1, Med: 1,
	})
	if !errors.Is(err, relief.ErrNoSupplyRecord) {
		t.Fatalf("got %v, want ErrNoSupplyRecord", err)
	}

	// A missing ledger entry is not a shortage; no alert goes out.
	if n := len(capture.Messages()); n != 0 {
		t.Errorf("captured %d alerts, want 0", n)
	}
}

func TestConsumeValidation(t *testing.T) {
	c, _ := newCoordinator(t)

	tests := []struct {
		name string
		req  supply.ConsumeRequest
	}{
		{"empty location", supply.ConsumeRequest{Year: 2025, Food: 1}},
		{"negative food", supply.ConsumeRequest{Location: "Maharashtra", Year: 2025, Food: -1}},
		{"negative med", supply.ConsumeRequest{Location: "Maharashtra", Year: 2025, Med: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Consume(context.Background(), tt.req)
			if !errors.Is(err, relief.ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestProvisionAddsStock(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	entry, err := c.Provision(ctx, "Maharashtra", 2025, 1000, 500)
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if entry.TotalFood != 6000 || entry.TotalMed != 3500 {
		t.Errorf("totals: got %d food, %d med, want 6000, 3500",
			entry.TotalFood, entry.TotalMed)
	}

	// A fresh key creates a new entry.
	entry, err = c.Provision(ctx, "Kerala", 2026, 200, 100)
	if err != nil {
		t.Fatalf("Provision new key: %v", err)
	}
	if entry.TotalFood != 200 || entry.TotalMed != 100 {
		t.Errorf("new entry totals: got %d food, %d med, want 200, 100",
			entry.TotalFood, entry.TotalMed)
	}
	if entry.ID.IsNil() {
		t.Error("new entry has nil ID")
	}
}

func TestConcurrentConsumeNeverOversells(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	// 100 workers each want 100 food; only 50 can win.
	var wg sync.WaitGroup
	var mu sync.Mutex
	var accepted, rejected int

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Consume(ctx, supply.ConsumeRequest{
				Location: "Maharashtra", Year: 2025, Food: 100,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, relief.ErrInsufficientSupply):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted != 50 || rejected != 50 {
		t.Errorf("got %d accepted, %d rejected, want 50, 50", accepted, rejected)
	}

	avail, err := c.Availability(ctx, "Maharashtra", 2025)
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if avail.Food != 0 {
		t.Errorf("remaining food: got %d, want 0", avail.Food)
	}
}

func TestConsumeNotBlockedBySlowAlert(t *testing.T) {
	sinkEntered := make(chan struct{})
	sinkRelease := make(chan struct{})
	slowSink := notify.SinkFunc(func(ctx context.Context, _ notify.Message) error {
		close(sinkEntered)
		select {
		case <-sinkRelease:
		case <-ctx.Done():
		}
		return nil
	})

	c, _ := newCoordinator(t, relief.WithSink(slowSink), relief.WithNotifyTimeout(30*time.Second))
	ctx := context.Background()

	rejectDone := make(chan struct{})
	go func() {
		defer close(rejectDone)
		_, err := c.Consume(ctx, supply.ConsumeRequest{
			Location: "Maharashtra", Year: 2025, Food: 9999,
		})
		if !errors.Is(err, relief.ErrInsufficientSupply) {
			t.Errorf("got %v, want ErrInsufficientSupply", err)
		}
	}()

	// Once the sink is entered the rejection has left the critical section;
	// a competing consume on the same key must go through.
	<-sinkEntered

	consumeDone := make(chan struct{})
	go func() {
		defer close(consumeDone)
		if _, err := c.Consume(ctx, supply.ConsumeRequest{
			Location: "Maharashtra", Year: 2025, Food: 100,
		}); err != nil {
			t.Errorf("Consume: %v", err)
		}
	}()

	select {
	case <-consumeDone:
	case <-time.After(2 * time.Second):
		t.Fatal("consume blocked behind a pending alert delivery")
	}

	close(sinkRelease)
	<-rejectDone
}

func TestSeedDisabled(t *testing.T) {
	c, _ := newCoordinator(t, relief.WithSeed(supply.Entry{}))

	_, err := c.Availability(context.Background(), "Maharashtra", 2025)
	if !errors.Is(err, relief.ErrNoSupplyRecord) {
		t.Errorf("got %v, want ErrNoSupplyRecord", err)
	}
}

func TestSeedCustom(t *testing.T) {
	c, _ := newCoordinator(t, relief.WithSeed(supply.Entry{
		Location: "Kerala", Year: 2026, TotalFood: 10, TotalMed: 5,
	}))

	avail, err := c.Availability(context.Background(), "Kerala", 2026)
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if avail.Food != 10 || avail.Med != 5 {
		t.Errorf("got %d food, %d med, want 10, 5", avail.Food, avail.Med)
	}
}

// ──────────────────────────────────────────────────
// People
// ──────────────────────────────────────────────────

func TestRegisterAndAuthenticate(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	p, err := c.RegisterPerson(ctx, validRegistration())
	if err != nil {
		t.Fatalf("RegisterPerson: %v", err)
	}
	if p.ID.IsNil() {
		t.Error("registered person has nil ID")
	}

	got, err := c.Authenticate(ctx, "Asha Kulkarni", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.Email != "asha@example.com" {
		t.Errorf("email: got %q, want asha@example.com", got.Email)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	if _, err := c.RegisterPerson(ctx, validRegistration()); err != nil {
		t.Fatalf("RegisterPerson: %v", err)
	}

	tests := []struct {
		name     string
		user     string
		password string
	}{
		{"wrong password", "Asha Kulkarni", "nope"},
		{"unknown name", "Nobody", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Authenticate(ctx, tt.user, tt.password)
			if !errors.Is(err, relief.ErrLoginFailed) {
				t.Errorf("got %v, want ErrLoginFailed", err)
			}
		})
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	if _, err := c.RegisterPerson(ctx, validRegistration()); err != nil {
		t.Fatalf("first RegisterPerson: %v", err)
	}

	_, err := c.RegisterPerson(ctx, validRegistration())
	if !errors.Is(err, relief.ErrDuplicateIdentity) {
		t.Errorf("got %v, want ErrDuplicateIdentity", err)
	}
}

func TestRegisterInvalidInput(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	reg := validRegistration()
	reg.Email = "not-an-email"
	_, err := c.RegisterPerson(ctx, reg)
	if !errors.Is(err, relief.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}

	var verr relief.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
	if verr.Field != person.FieldEmail {
		t.Errorf("field: got %q, want %q", verr.Field, person.FieldEmail)
	}

	// The rejected registration must not be stored.
	persons, err := c.ListPersons(ctx)
	if err != nil {
		t.Fatalf("ListPersons: %v", err)
	}
	if len(persons) != 0 {
		t.Errorf("stored %d persons after rejected registration, want 0", len(persons))
	}
}

// ──────────────────────────────────────────────────
// Services
// ──────────────────────────────────────────────────

func TestRecordServiceConsumesSupplies(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	rec, err := c.RecordService(ctx, service.Request{
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		User:        "Asha Kulkarni",
		Disaster:    "flood",
		FoodPackets: 100,
		MedicalKits: 50,
		Location:    "Maharashtra",
	})
	if err != nil {
		t.Fatalf("RecordService: %v", err)
	}
	if rec.EvacCenter != service.CenterNotSelected {
		t.Errorf("evac center: got %q, want %q", rec.EvacCenter, service.CenterNotSelected)
	}

	avail, err := c.Availability(ctx, "Maharashtra", 2025)
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if avail.Food != 4900 || avail.Med != 2950 {
		t.Errorf("availability after service: got %d food, %d med, want 4900, 2950",
			avail.Food, avail.Med)
	}

	records, err := c.ListServices(ctx, service.ListOpts{User: "Asha Kulkarni"})
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Disaster != "flood" {
		t.Errorf("disaster: got %q, want flood", records[0].Disaster)
	}
}

func TestRecordServiceRejectedWritesNothing(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	_, err := c.RecordService(ctx, service.Request{
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		User:        "Asha Kulkarni",
		Disaster:    "flood",
		FoodPackets: 9999,
		Location:    "Maharashtra",
	})
	if !errors.Is(err, relief.ErrInsufficientSupply) {
		t.Fatalf("got %v, want ErrInsufficientSupply", err)
	}

	records, err := c.ListServices(ctx, service.ListOpts{})
	if err != nil {
		t.Fatalf("ListServices: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records after rejected consume, want 0", len(records))
	}
}

func TestRecordServiceValidation(t *testing.T) {
	c, _ := newCoordinator(t)

	tests := []struct {
		name string
		req  service.Request
	}{
		{"missing user", service.Request{Location: "Maharashtra", FoodPackets: 1}},
		{"missing location", service.Request{User: "Asha", FoodPackets: 1}},
		{"negative food", service.Request{User: "Asha", Location: "Maharashtra", FoodPackets: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.RecordService(context.Background(), tt.req)
			if !errors.Is(err, relief.ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

// ──────────────────────────────────────────────────
// Reporting
// ──────────────────────────────────────────────────

func TestStatusReport(t *testing.T) {
	c, _ := newCoordinator(t)
	ctx := context.Background()

	if _, err := c.RegisterPerson(ctx, validRegistration()); err != nil {
		t.Fatalf("RegisterPerson: %v", err)
	}
	if _, err := c.RecordService(ctx, service.Request{
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		User:        "Asha Kulkarni",
		Disaster:    "flood",
		FoodPackets: 10,
		MedicalKits: 5,
		Location:    "Maharashtra",
	}); err != nil {
		t.Fatalf("RecordService: %v", err)
	}

	report, err := c.StatusReport(ctx)
	if err != nil {
		t.Fatalf("StatusReport: %v", err)
	}
	if report.People != 1 || report.Services != 1 {
		t.Errorf("counts: got %d people, %d services, want 1, 1",
			report.People, report.Services)
	}
	if len(report.Persons) != 1 || len(report.Records) != 1 {
		t.Errorf("lists: got %d persons, %d records, want 1, 1",
			len(report.Persons), len(report.Records))
	}
}

// ──────────────────────────────────────────────────
// Sensor alerts
// ──────────────────────────────────────────────────

func TestSensorAlertDelivery(t *testing.T) {
	c, capture := newCoordinator(t)
	ctx := context.Background()

	if _, err := c.RegisterPerson(ctx, validRegistration()); err != nil {
		t.Fatalf("RegisterPerson: %v", err)
	}

	outcome, err := c.SensorAlert(ctx, "Asha Kulkarni", sensor.Reading{
		Kind: sensor.KindFlood, Value: 6,
	})
	if err != nil {
		t.Fatalf("SensorAlert: %v", err)
	}
	if outcome.Evaluation.Severity != sensor.SeverityAlert {
		t.Errorf("severity: got %v, want alert", outcome.Evaluation.Severity)
	}
	if !outcome.Delivered {
		t.Error("outcome not delivered")
	}

	msg, ok := capture.Last()
	if !ok {
		t.Fatal("no alert captured")
	}
	if msg.To != "asha@example.com" {
		t.Errorf("recipient: got %q", msg.To)
	}
	if msg.Subject != "Disaster Sensor Alert [Flood]" {
		t.Errorf("subject: got %q", msg.Subject)
	}
	want := "Dear Asha Kulkarni, ALERT: High flood water level detected. Evacuate immediately!"
	if msg.Body != want {
		t.Errorf("body: got %q, want %q", msg.Body, want)
	}
}

func TestSensorAlertDeliveryFailure(t *testing.T) {
	c, capture := newCoordinator(t)
	ctx := context.Background()

	if _, err := c.RegisterPerson(ctx, validRegistration()); err != nil {
		t.Fatalf("RegisterPerson: %v", err)
	}

	capture.Fail(errors.New("smtp down"))
	outcome, err := c.SensorAlert(ctx, "Asha Kulkarni", sensor.Reading{
		Kind: sensor.KindEarthquake, Value: 2,
	})
	if err != nil {
		t.Fatalf("SensorAlert: %v", err)
	}
	if outcome.Delivered {
		t.Error("outcome delivered despite sink failure")
	}
	if outcome.Evaluation.Severity != sensor.SeverityNormal {
		t.Errorf("severity: got %v, want normal", outcome.Evaluation.Severity)
	}
}

func TestSensorAlertUnknownPerson(t *testing.T) {
	c, _ := newCoordinator(t)

	_, err := c.SensorAlert(context.Background(), "Nobody", sensor.Reading{
		Kind: sensor.KindFire, Value: 1,
	})
	if !errors.Is(err, relief.ErrPersonNotFound) {
		t.Errorf("got %v, want ErrPersonNotFound", err)
	}
}
