package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	relief "github.com/xraph/relief"
	"github.com/xraph/relief/person"
	"github.com/xraph/relief/service"
	reliefstore "github.com/xraph/relief/store"
	"github.com/xraph/relief/supply"
)

// Collection name constants.
const (
	colPersons  = "relief_persons"
	colServices = "relief_services"
	colSupplies = "relief_supplies"
)

// compile-time interface check
var _ reliefstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all relief collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("relief/mongo: migrate %s indexes: %w", col, err)
		}
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
	var existing personModel
	err := s.mdb.NewFind(&existing).
		Filter(bson.M{"name": p.Name}).
		Scan(ctx)
	if err == nil {
		return relief.ErrDuplicateIdentity
	}
	if !isNoDocuments(err) {
		return fmt.Errorf("relief/mongo: check person: %w", err)
	}

	m := toPersonModel(p)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("relief/mongo: create person: %w", err)
	}
	return nil
}

func (s *Store) GetPerson(ctx context.Context, name string) (*person.Person, error) {
	var m personModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"name": name}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, relief.ErrPersonNotFound
		}
		return nil, fmt.Errorf("relief/mongo: get person: %w", err)
	}
	return fromPersonModel(&m)
}

func (s *Store) ListPersons(ctx context.Context) ([]*person.Person, error) {
	var models []personModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{}).
		Sort(bson.D{{Key: "created_at", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("relief/mongo: list persons: %w", err)
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
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("relief/mongo: append service: %w", err)
	}
	return nil
}

func (s *Store) ListServices(ctx context.Context, opts service.ListOpts) ([]*service.Record, error) {
	filter := bson.M{}
	if opts.User != "" {
		filter["user"] = opts.User
	}
	if opts.Location != "" {
		filter["location"] = bson.M{"$regex": "^" + opts.Location + "$", "$options": "i"}
	}

	var models []serviceModel
	err := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "timestamp", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("relief/mongo: list services: %w", err)
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
	var m supplyModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"location": location, "year": year}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, relief.ErrNoSupplyRecord
		}
		return nil, fmt.Errorf("relief/mongo: get supply: %w", err)
	}
	return fromSupplyModel(&m)
}

func (s *Store) UpsertSupply(ctx context.Context, e *supply.Entry) error {
	m := toSupplyModel(e)
	m.UpdatedAt = now()

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"location": m.Location, "year": m.Year}).
		SetUpdate(bson.M{
			"$set": bson.M{
				"location":   m.Location,
				"year":       m.Year,
				"total_food": m.TotalFood,
				"total_med":  m.TotalMed,
				"given_food": m.GivenFood,
				"given_med":  m.GivenMed,
				"updated_at": m.UpdatedAt,
			},
			"$setOnInsert": bson.M{
				"_id":        m.ID,
				"created_at": m.CreatedAt,
			},
		}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("relief/mongo: upsert supply: %w", err)
	}
	return nil
}

func (s *Store) UpdateSupplyGiven(ctx context.Context, e *supply.Entry) error {
	t := now()
	res, err := s.mdb.NewUpdate((*supplyModel)(nil)).
		Filter(bson.M{"location": e.Location, "year": e.Year}).
		Set("given_food", e.GivenFood).
		Set("given_med", e.GivenMed).
		Set("updated_at", t).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("relief/mongo: update supply given: %w", err)
	}
	if res.MatchedCount() == 0 {
		return relief.ErrNoSupplyRecord
	}
	return nil
}

func (s *Store) ResetSupplies(ctx context.Context) error {
	_, err := s.mdb.NewDelete((*supplyModel)(nil)).
		Filter(bson.M{}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("relief/mongo: reset supplies: %w", err)
	}
	return nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all relief collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colPersons: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		colServices: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "timestamp", Value: 1}}},
			{Keys: bson.D{{Key: "location", Value: 1}}},
			{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		},
		colSupplies: {
			{
				Keys:    bson.D{{Key: "location", Value: 1}, {Key: "year", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}
}
