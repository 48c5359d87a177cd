package relief

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/relief/center"
	"github.com/xraph/relief/id"
	"github.com/xraph/relief/notify"
	"github.com/xraph/relief/person"
	"github.com/xraph/relief/plugin"
	"github.com/xraph/relief/sensor"
	"github.com/xraph/relief/service"
	"github.com/xraph/relief/store"
	"github.com/xraph/relief/supply"
	"github.com/xraph/relief/types"
)

// Coordinator is the main relief coordination engine.
type Coordinator struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger
	sink    notify.Sink
	centers *center.Directory

	// Per (location, year) consume locks
	supplyMu sync.Mutex
	locks    map[supplyKey]*sync.Mutex

	// Configuration
	adminEmail    string
	notifyTimeout time.Duration
	seed          *supply.Entry
	startupReset  bool
}

type supplyKey struct {
	location string
	year     int
}

// New creates a new Coordinator instance.
func New(s store.Store, opts ...Option) *Coordinator {
	seed := supply.DefaultSeed()
	c := &Coordinator{
		store:         s,
		plugins:       plugin.NewRegistry(),
		logger:        slog.Default(),
		sink:          notify.Discard,
		centers:       center.Default(),
		locks:         make(map[supplyKey]*sync.Mutex),
		notifyTimeout: 5 * time.Second,
		seed:          &seed,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Option configures a Coordinator instance.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
		c.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(c *Coordinator) {
		_ = c.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithSink sets the notification sink used for supply and sensor alerts.
func WithSink(s notify.Sink) Option {
	return func(c *Coordinator) {
		c.sink = s
	}
}

// WithAdminEmail sets the recipient of supply rejection alerts.
func WithAdminEmail(email string) Option {
	return func(c *Coordinator) {
		c.adminEmail = email
	}
}

// WithNotifyTimeout bounds how long a single alert delivery may take.
func WithNotifyTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.notifyTimeout = d
	}
}

// WithCenters replaces the default evacuation center directory.
func WithCenters(d *center.Directory) Option {
	return func(c *Coordinator) {
		c.centers = d
	}
}

// WithSeed replaces the default supply entry written on first start. Pass a
// zero-location entry to disable seeding.
func WithSeed(e supply.Entry) Option {
	return func(c *Coordinator) {
		if e.Location == "" {
			c.seed = nil
			return
		}
		c.seed = &e
	}
}

// WithStartupReset makes Start wipe the supply ledger before seeding.
func WithStartupReset() Option {
	return func(c *Coordinator) {
		c.startupReset = true
	}
}

// Start migrates the store, prepares the supply ledger and initializes
// plugins.
func (c *Coordinator) Start(ctx context.Context) error {
	if err := c.store.Migrate(ctx); err != nil {
		return err
	}

	if c.startupReset {
		if err := c.store.ResetSupplies(ctx); err != nil {
			return err
		}
		c.logger.Info("supply ledger reset")
	}

	if c.seed != nil {
		if err := c.ensureSeed(ctx); err != nil {
			return err
		}
	}

	c.plugins.EmitInit(ctx, c)

	c.logger.Info("relief coordinator started",
		"admin_email", c.adminEmail,
		"notify_timeout", c.notifyTimeout,
		"startup_reset", c.startupReset,
	)

	return nil
}

// ensureSeed writes the seed entry unless one already exists for its key.
func (c *Coordinator) ensureSeed(ctx context.Context) error {
	_, err := c.store.GetSupply(ctx, c.seed.Location, c.seed.Year)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNoSupplyRecord) {
		return err
	}

	e := *c.seed
	if e.ID.IsNil() {
		e.ID = id.NewSupplyEntryID()
	}
	e.Entity = types.NewEntity()
	if err := c.store.UpsertSupply(ctx, &e); err != nil {
		return err
	}

	c.logger.Info("seeded supply ledger",
		"location", e.Location,
		"year", e.Year,
		"total_food", e.TotalFood,
		"total_med", e.TotalMed,
	)
	c.plugins.EmitSupplyProvisioned(ctx, &e)
	return nil
}

// Stop shuts down the Coordinator.
func (c *Coordinator) Stop() error {
	ctx := context.Background()
	c.plugins.EmitShutdown(ctx)

	return c.store.Close()
}

// ──────────────────────────────────────────────────
// Supply ledger
// ──────────────────────────────────────────────────

// lockFor returns the mutex guarding one (location, year) ledger key.
func (c *Coordinator) lockFor(location string, year int) *sync.Mutex {
	c.supplyMu.Lock()
	defer c.supplyMu.Unlock()

	k := supplyKey{location, year}
	if mu, ok := c.locks[k]; ok {
		return mu
	}
	mu := new(sync.Mutex)
	c.locks[k] = mu
	return mu
}

// Consume issues stock against a ledger entry. The all-or-nothing check and
// the counter update run under a per-key lock. A rejection for insufficient
// stock alerts the admin address best-effort; the rejection outcome is
// returned regardless of whether the alert was delivered.
func (c *Coordinator) Consume(ctx context.Context, req supply.ConsumeRequest) (*supply.ConsumeResult, error) {
	if req.Location == "" {
		return nil, ValidationError{Field: "location", Message: "location is required"}
	}
	if req.Food < 0 || req.Med < 0 {
		return nil, ValidationError{Field: "quantity", Message: "quantities must not be negative"}
	}

	result, err := c.consumeLocked(ctx, req)
	if err != nil {
		// The rejection is already final; the alert must not hold the
		// ledger key against competing consumes.
		var rejection InsufficientSupplyError
		if errors.As(err, &rejection) {
			c.alertSupplyShortage(ctx, rejection)
		}
		return nil, err
	}
	return result, nil
}

// consumeLocked runs the check-then-update critical section for one
// (location, year) key.
func (c *Coordinator) consumeLocked(ctx context.Context, req supply.ConsumeRequest) (*supply.ConsumeResult, error) {
	mu := c.lockFor(req.Location, req.Year)
	mu.Lock()
	defer mu.Unlock()

	entry, err := c.store.GetSupply(ctx, req.Location, req.Year)
	if err != nil {
		if errors.Is(err, ErrNoSupplyRecord) {
			c.plugins.EmitSupplyRejected(ctx, req.Location, req.Year, req.Food, req.Med, err)
			return nil, fmt.Errorf("%w: %s, %d", ErrNoSupplyRecord, req.Location, req.Year)
		}
		return nil, err
	}

	availFood := entry.AvailableFood()
	availMed := entry.AvailableMed()
	if req.Food > availFood || req.Med > availMed {
		rejection := InsufficientSupplyError{
			Location:      req.Location,
			Year:          req.Year,
			AvailableFood: availFood,
			AvailableMed:  availMed,
			Food:          req.Food,
			Med:           req.Med,
		}
		c.plugins.EmitSupplyRejected(ctx, req.Location, req.Year, req.Food, req.Med, rejection)
		return nil, rejection
	}

	entry.GivenFood += req.Food
	entry.GivenMed += req.Med
	entry.Touch()
	if err := c.store.UpdateSupplyGiven(ctx, entry); err != nil {
		return nil, err
	}

	result := &supply.ConsumeResult{
		Location:      req.Location,
		Year:          req.Year,
		RemainingFood: entry.AvailableFood(),
		RemainingMed:  entry.AvailableMed(),
	}
	c.plugins.EmitSupplyConsumed(ctx, result)

	c.logger.Debug("supply consumed",
		"location", req.Location,
		"year", req.Year,
		"food", req.Food,
		"med", req.Med,
		"remaining_food", result.RemainingFood,
		"remaining_med", result.RemainingMed,
	)
	return result, nil
}

// alertSupplyShortage emails the admin about a rejected consume. Delivery
// failure is logged and reported to plugins, never returned.
func (c *Coordinator) alertSupplyShortage(ctx context.Context, rejection InsufficientSupplyError) {
	if c.adminEmail == "" {
		return
	}

	msg := notify.Message{
		To:      c.adminEmail,
		Subject: fmt.Sprintf("Supply Alert [%s]", rejection.Location),
		Body: fmt.Sprintf(
			"ALERT: Supply insufficient at %s for %d.\nAvailable: %d food, %d medical.\nRequested: %d food, %d medical.",
			rejection.Location, rejection.Year,
			rejection.AvailableFood, rejection.AvailableMed,
			rejection.Food, rejection.Med,
		),
	}
	c.send(ctx, msg)
}

// send delivers one message within the notify timeout and emits the matching
// alert event.
func (c *Coordinator) send(ctx context.Context, msg notify.Message) bool {
	sendCtx, cancel := context.WithTimeout(ctx, c.notifyTimeout)
	defer cancel()

	if err := c.sink.Send(sendCtx, msg); err != nil {
		c.logger.Warn("alert delivery failed",
			"to", msg.To,
			"subject", msg.Subject,
			"error", err,
		)
		c.plugins.EmitAlertFailed(ctx, msg.To, msg.Subject, err)
		return false
	}
	c.plugins.EmitAlertSent(ctx, msg.To, msg.Subject)
	return true
}

// Provision adds stock to a ledger entry, creating it when absent. Totals
// only ever grow through this path.
func (c *Coordinator) Provision(ctx context.Context, location string, year int, food, med int64) (*supply.Entry, error) {
	if location == "" {
		return nil, ValidationError{Field: "location", Message: "location is required"}
	}
	if food < 0 || med < 0 {
		return nil, ValidationError{Field: "quantity", Message: "quantities must not be negative"}
	}

	mu := c.lockFor(location, year)
	mu.Lock()
	defer mu.Unlock()

	entry, err := c.store.GetSupply(ctx, location, year)
	switch {
	case err == nil:
		entry.TotalFood += food
		entry.TotalMed += med
		entry.Touch()
	case errors.Is(err, ErrNoSupplyRecord):
		entry = &supply.Entry{
			Entity:    types.NewEntity(),
			ID:        id.NewSupplyEntryID(),
			Location:  location,
			Year:      year,
			TotalFood: food,
			TotalMed:  med,
		}
	default:
		return nil, err
	}

	if err := c.store.UpsertSupply(ctx, entry); err != nil {
		return nil, err
	}

	c.plugins.EmitSupplyProvisioned(ctx, entry)
	return entry, nil
}

// Availability returns the remaining stock for one ledger key.
func (c *Coordinator) Availability(ctx context.Context, location string, year int) (supply.Availability, error) {
	entry, err := c.store.GetSupply(ctx, location, year)
	if err != nil {
		return supply.Availability{}, err
	}
	return entry.Availability(), nil
}

// ──────────────────────────────────────────────────
// People
// ──────────────────────────────────────────────────

// RegisterPerson validates a registration and stores the person. The name is
// the identity key; a second registration under the same name is rejected.
func (c *Coordinator) RegisterPerson(ctx context.Context, reg person.Registration) (*person.Person, error) {
	reg.Normalize()
	if inv := reg.Validate(); inv != nil {
		return nil, ValidationError{Field: inv.Field, Message: inv.Message}
	}

	p := &person.Person{
		Entity:   types.NewEntity(),
		ID:       id.NewPersonID(),
		Name:     reg.Name,
		Age:      reg.Age,
		Location: reg.Location,
		Phone:    reg.Phone,
		Email:    reg.Email,
		Password: reg.Password,
	}

	if err := c.store.CreatePerson(ctx, p); err != nil {
		return nil, err
	}

	c.plugins.EmitPersonRegistered(ctx, p)
	c.logger.Info("person registered", "name", p.Name, "location", p.Location)
	return p, nil
}

// Authenticate checks a name and password pair. Unknown names and wrong
// passwords both come back as ErrLoginFailed.
func (c *Coordinator) Authenticate(ctx context.Context, name, password string) (*person.Person, error) {
	p, err := c.store.GetPerson(ctx, name)
	if err != nil {
		if errors.Is(err, ErrPersonNotFound) {
			return nil, ErrLoginFailed
		}
		return nil, err
	}
	if p.Password != password {
		return nil, ErrLoginFailed
	}
	return p, nil
}

// GetPerson retrieves a person by name.
func (c *Coordinator) GetPerson(ctx context.Context, name string) (*person.Person, error) {
	return c.store.GetPerson(ctx, name)
}

// ListPersons returns all registered people in registration order.
func (c *Coordinator) ListPersons(ctx context.Context) ([]*person.Person, error) {
	return c.store.ListPersons(ctx)
}

// ──────────────────────────────────────────────────
// Services
// ──────────────────────────────────────────────────

// RecordService consumes supplies and appends a service record. The consume
// is a precondition: a rejected consume means no record is written, so the
// ledger and the service log never diverge.
func (c *Coordinator) RecordService(ctx context.Context, req service.Request) (*service.Record, error) {
	req.Normalize()
	if req.User == "" {
		return nil, ValidationError{Field: "user", Message: "user is required"}
	}
	if req.Location == "" {
		return nil, ValidationError{Field: "location", Message: "location is required"}
	}
	if req.FoodPackets < 0 || req.MedicalKits < 0 {
		return nil, ValidationError{Field: "quantity", Message: "quantities must not be negative"}
	}

	_, err := c.Consume(ctx, supply.ConsumeRequest{
		Location: req.Location,
		Year:     req.Timestamp.Year(),
		Food:     req.FoodPackets,
		Med:      req.MedicalKits,
	})
	if err != nil {
		return nil, err
	}

	rec := &service.Record{
		Entity:      types.NewEntity(),
		ID:          id.NewServiceRecordID(),
		Timestamp:   req.Timestamp,
		User:        req.User,
		Disaster:    req.Disaster,
		FoodPackets: req.FoodPackets,
		MedicalKits: req.MedicalKits,
		Location:    req.Location,
		EvacCenter:  req.EvacCenter,
	}
	if err := c.store.AppendService(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: append service record: %v", ErrStoreUnavailable, err)
	}

	c.plugins.EmitServiceRecorded(ctx, rec)
	c.logger.Info("service recorded",
		"user", rec.User,
		"location", rec.Location,
		"food_packets", rec.FoodPackets,
		"medical_kits", rec.MedicalKits,
	)
	return rec, nil
}

// ListServices returns service records matching the filter.
func (c *Coordinator) ListServices(ctx context.Context, opts service.ListOpts) ([]*service.Record, error) {
	return c.store.ListServices(ctx, opts)
}

// ──────────────────────────────────────────────────
// Reporting
// ──────────────────────────────────────────────────

// Report is a snapshot of registered people and recorded services.
type Report struct {
	People   int               `json:"people"`
	Services int               `json:"services"`
	Persons  []*person.Person  `json:"persons"`
	Records  []*service.Record `json:"records"`
}

// StatusReport lists everyone registered and every service recorded.
func (c *Coordinator) StatusReport(ctx context.Context) (*Report, error) {
	persons, err := c.store.ListPersons(ctx)
	if err != nil {
		return nil, err
	}
	records, err := c.store.ListServices(ctx, service.ListOpts{})
	if err != nil {
		return nil, err
	}
	return &Report{
		People:   len(persons),
		Services: len(records),
		Persons:  persons,
		Records:  records,
	}, nil
}

// ──────────────────────────────────────────────────
// Sensor alerts
// ──────────────────────────────────────────────────

// AlertOutcome reports a sensor evaluation and whether the alert email
// reached the person.
type AlertOutcome struct {
	Evaluation sensor.Evaluation `json:"evaluation"`
	Recipient  string            `json:"recipient"`
	Delivered  bool              `json:"delivered"`
}

// SensorAlert evaluates a reading and emails the named person the resulting
// status text. Delivery failure does not fail the evaluation; the outcome
// records it.
func (c *Coordinator) SensorAlert(ctx context.Context, name string, r sensor.Reading) (*AlertOutcome, error) {
	p, err := c.store.GetPerson(ctx, name)
	if err != nil {
		return nil, err
	}

	eval := sensor.Evaluate(r)
	c.plugins.EmitSensorEvaluated(ctx, r, eval)

	msg := notify.Message{
		To:      p.Email,
		Subject: fmt.Sprintf("Disaster Sensor Alert [%s]", r.Kind.Title()),
		Body:    fmt.Sprintf("Dear %s, %s", p.Name, eval.Message),
	}
	delivered := c.send(ctx, msg)

	return &AlertOutcome{
		Evaluation: eval,
		Recipient:  p.Email,
		Delivered:  delivered,
	}, nil
}

// ──────────────────────────────────────────────────
// Evacuation centers
// ──────────────────────────────────────────────────

// Centers returns the configured evacuation center directory.
func (c *Coordinator) Centers() *center.Directory {
	return c.centers
}

// FindCenters looks up evacuation centers for a location, falling back to
// the whole directory when the location has no exact match.
func (c *Coordinator) FindCenters(location string) ([]center.District, bool) {
	return c.centers.Find(location)
}
