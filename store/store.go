package store

import (
	"context"

	"github.com/xraph/relief/person"
	"github.com/xraph/relief/service"
	"github.com/xraph/relief/supply"
)

// Store is the unified storage interface for all Relief entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Person methods
	CreatePerson(ctx context.Context, p *person.Person) error
	GetPerson(ctx context.Context, name string) (*person.Person, error)
	ListPersons(ctx context.Context) ([]*person.Person, error)

	// Service methods
	AppendService(ctx context.Context, r *service.Record) error
	ListServices(ctx context.Context, opts service.ListOpts) ([]*service.Record, error)

	// Supply methods
	GetSupply(ctx context.Context, location string, year int) (*supply.Entry, error)
	UpsertSupply(ctx context.Context, e *supply.Entry) error
	UpdateSupplyGiven(ctx context.Context, e *supply.Entry) error
	ResetSupplies(ctx context.Context) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
