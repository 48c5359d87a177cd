package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	relief "github.com/xraph/relief"
	"github.com/xraph/relief/person"
	"github.com/xraph/relief/service"
	reliefstore "github.com/xraph/relief/store"
	"github.com/xraph/relief/supply"
)

// compile-time interface check
var _ reliefstore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("relief/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("relief/postgres: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Person Store ====================

func (s *Store) CreatePerson(ctx context.Context, p *person.Person) error {
	existing := new(personModel)
	err := s.pg.NewSelect(existing).
		Where("name = $1", p.Name).
		Scan(ctx)
	if err == nil {
		return relief.ErrDuplicateIdentity
	}
	if !isNoRows(err) {
		return err
	}

	m := toPersonModel(p)
	_, err = s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetPerson(ctx context.Context, name string) (*person.Person, error) {
	m := new(personModel)
	err := s.pg.NewSelect(m).
		Where("name = $1", name).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, relief.ErrPersonNotFound
		}
		return nil, err
	}
	return fromPersonModel(m)
}

func (s *Store) ListPersons(ctx context.Context) ([]*person.Person, error) {
	var models []personModel
	err := s.pg.NewSelect(&models).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*person.Person, len(models))
	for i := range models {
		p, err := fromPersonModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

// ==================== Service Store ====================

func (s *Store) AppendService(ctx context.Context, r *service.Record) error {
	m := toServiceModel(r)
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) ListServices(ctx context.Context, opts service.ListOpts) ([]*service.Record, error) {
	var models []serviceModel
	q := s.pg.NewSelect(&models)

	// Placeholders are numbered per query, so optional filters continue
	// the sequence.
	n := 0
	if opts.User != "" {
		n++
		q = q.Where(fmt.Sprintf(`"user" = $%d`, n), opts.User)
	}
	if opts.Location != "" {
		n++
		q = q.Where(fmt.Sprintf("lower(location) = lower($%d)", n), opts.Location)
	}
	q = q.OrderExpr("timestamp ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*service.Record, len(models))
	for i := range models {
		r, err := fromServiceModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Supply Store ====================

func (s *Store) GetSupply(ctx context.Context, location string, year int) (*supply.Entry, error) {
	m := new(supplyModel)
	err := s.pg.NewSelect(m).
		Where("location = $1", location).
		Where("year = $2", year).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, relief.ErrNoSupplyRecord
		}
		return nil, err
	}
	return fromSupplyModel(m)
}

func (s *Store) UpsertSupply(ctx context.Context, e *supply.Entry) error {
	m := toSupplyModel(e)
	m.UpdatedAt = now()
	_, err := s.pg.NewInsert(m).
		OnConflict("(location, year) DO UPDATE").
		Set("total_food = EXCLUDED.total_food").
		Set("total_med = EXCLUDED.total_med").
		Set("given_food = EXCLUDED.given_food").
		Set("given_med = EXCLUDED.given_med").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) UpdateSupplyGiven(ctx context.Context, e *supply.Entry) error {
	t := now()
	res, err := s.pg.NewUpdate((*supplyModel)(nil)).
		Set("given_food = $1", e.GivenFood).
		Set("given_med = $2", e.GivenMed).
		Set("updated_at = $3", t).
		Where("location = $4", e.Location).
		Where("year = $5", e.Year).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return relief.ErrNoSupplyRecord
	}
	return nil
}

func (s *Store) ResetSupplies(ctx context.Context) error {
	_, err := s.pg.NewDelete((*supplyModel)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return err
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
