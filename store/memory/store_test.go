package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/relief"
	"github.com/xraph/relief/id"
	"github.com/xraph/relief/person"
	"github.com/xraph/relief/service"
	"github.com/xraph/relief/supply"
	"github.com/xraph/relief/types"
)

func newPerson(name string) *person.Person {
	return &person.Person{
		Entity:   types.NewEntity(),
		ID:       id.NewPersonID(),
		Name:     name,
		Age:      30,
		Location: "Pune",
		Phone:    "9876543210",
		Email:    "p@example.com",
		Password: "secret",
	}
}

func TestPersonLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreatePerson(ctx, newPerson("Asha")); err != nil {
		t.Fatalf("CreatePerson: %v", err)
	}

	if err := s.CreatePerson(ctx, newPerson("Asha")); !errors.Is(err, relief.ErrDuplicateIdentity) {
		t.Errorf("duplicate: got %v, want ErrDuplicateIdentity", err)
	}

	got, err := s.GetPerson(ctx, "Asha")
	if err != nil {
		t.Fatalf("GetPerson: %v", err)
	}
	if got.Name != "Asha" {
		t.Errorf("name: got %q", got.Name)
	}

	if _, err := s.GetPerson(ctx, "Nobody"); !errors.Is(err, relief.ErrPersonNotFound) {
		t.Errorf("missing: got %v, want ErrPersonNotFound", err)
	}
}

func TestListPersonsOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := newPerson("First")
	first.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	second := newPerson("Second")
	second.CreatedAt = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	// Insert out of order; listing sorts by creation time.
	if err := s.CreatePerson(ctx, second); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePerson(ctx, first); err != nil {
		t.Fatal(err)
	}

	persons, err := s.ListPersons(ctx)
	if err != nil {
		t.Fatalf("ListPersons: %v", err)
	}
	if len(persons) != 2 {
		t.Fatalf("got %d persons, want 2", len(persons))
	}
	if persons[0].Name != "First" || persons[1].Name != "Second" {
		t.Errorf("order: got %q, %q", persons[0].Name, persons[1].Name)
	}
}

func TestListServicesFilters(t *testing.T) {
	s := New()
	ctx := context.Background()

	records := []*service.Record{
		{ID: id.NewServiceRecordID(), User: "Asha", Location: "Maharashtra", Disaster: "flood"},
		{ID: id.NewServiceRecordID(), User: "Ravi", Location: "maharashtra", Disaster: "fire"},
		{ID: id.NewServiceRecordID(), User: "Asha", Location: "Kerala", Disaster: "flood"},
	}
	for _, r := range records {
		if err := s.AppendService(ctx, r); err != nil {
			t.Fatalf("AppendService: %v", err)
		}
	}

	tests := []struct {
		name string
		opts service.ListOpts
		want int
	}{
		{"all", service.ListOpts{}, 3},
		{"by user", service.ListOpts{User: "Asha"}, 2},
		{"user is case sensitive", service.ListOpts{User: "asha"}, 0},
		{"by location ignores case", service.ListOpts{Location: "MAHARASHTRA"}, 2},
		{"user and location", service.ListOpts{User: "Asha", Location: "Kerala"}, 1},
		{"no match", service.ListOpts{User: "Nobody"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListServices(ctx, tt.opts)
			if err != nil {
				t.Fatalf("ListServices: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSupplyLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetSupply(ctx, "Maharashtra", 2025); !errors.Is(err, relief.ErrNoSupplyRecord) {
		t.Errorf("missing: got %v, want ErrNoSupplyRecord", err)
	}

	entry := &supply.Entry{
		Entity:    types.NewEntity(),
		ID:        id.NewSupplyEntryID(),
		Location:  "Maharashtra",
		Year:      2025,
		TotalFood: 5000,
		TotalMed:  3000,
	}
	if err := s.UpsertSupply(ctx, entry); err != nil {
		t.Fatalf("UpsertSupply: %v", err)
	}

	got, err := s.GetSupply(ctx, "Maharashtra", 2025)
	if err != nil {
		t.Fatalf("GetSupply: %v", err)
	}
	if got.TotalFood != 5000 || got.TotalMed != 3000 {
		t.Errorf("totals: got %d, %d", got.TotalFood, got.TotalMed)
	}

	// Mutating the returned entry must not touch the stored copy.
	got.GivenFood = 9999
	again, err := s.GetSupply(ctx, "Maharashtra", 2025)
	if err != nil {
		t.Fatalf("GetSupply: %v", err)
	}
	if again.GivenFood != 0 {
		t.Errorf("stored entry mutated through clone: given food %d", again.GivenFood)
	}

	entry.GivenFood = 100
	entry.GivenMed = 50
	if err := s.UpdateSupplyGiven(ctx, entry); err != nil {
		t.Fatalf("UpdateSupplyGiven: %v", err)
	}
	again, err = s.GetSupply(ctx, "Maharashtra", 2025)
	if err != nil {
		t.Fatalf("GetSupply: %v", err)
	}
	if again.AvailableFood() != 4900 || again.AvailableMed() != 2950 {
		t.Errorf("availability: got %d, %d", again.AvailableFood(), again.AvailableMed())
	}

	missing := &supply.Entry{Location: "Kerala", Year: 2026}
	if err := s.UpdateSupplyGiven(ctx, missing); !errors.Is(err, relief.ErrNoSupplyRecord) {
		t.Errorf("update missing: got %v, want ErrNoSupplyRecord", err)
	}

	if err := s.ResetSupplies(ctx); err != nil {
		t.Fatalf("ResetSupplies: %v", err)
	}
	if _, err := s.GetSupply(ctx, "Maharashtra", 2025); !errors.Is(err, relief.ErrNoSupplyRecord) {
		t.Errorf("after reset: got %v, want ErrNoSupplyRecord", err)
	}
}
