package relief_test

import (
	"context"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/relief"
	"github.com/xraph/relief/notify"
	"github.com/xraph/relief/person"
	"github.com/xraph/relief/sensor"
	"github.com/xraph/relief/service"
	"github.com/xraph/relief/store/memory"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from README
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use PostgreSQL in production)
		store := memory.New()
		sink := notify.NewCapture()

		// Initialize the coordinator
		c := relief.New(store,
			relief.WithLogger(slog.Default()),
			relief.WithSink(sink),
			relief.WithAdminEmail("admin@example.com"),
			relief.WithNotifyTimeout(2*time.Second),
		)

		// Start the engine
		ctx := context.Background()
		if err := c.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer c.Stop()

		// Register a person
		p, err := c.RegisterPerson(ctx, person.Registration{
			Name:     "Asha Kulkarni",
			Age:      34,
			Location: "Pune",
			Phone:    "9876543210",
			Email:    "asha@example.com",
			Password: "secret",
		})
		if err != nil {
			t.Fatal(err)
		}

		// Log in
		if _, err := c.Authenticate(ctx, p.Name, "secret"); err != nil {
			t.Fatal(err)
		}

		// Record a relief service against the seeded ledger
		rec, err := c.RecordService(ctx, service.Request{
			User:        p.Name,
			Disaster:    "flood",
			FoodPackets: 100,
			MedicalKits: 50,
			Location:    "Maharashtra",
			Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("service recorded: %s\n", rec.ID)

		// Check what is left
		avail, err := c.Availability(ctx, "Maharashtra", 2025)
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("remaining: %d food, %d medical\n", avail.Food, avail.Med)

		// Evaluate a sensor reading and alert the person
		outcome, err := c.SensorAlert(ctx, p.Name, sensor.Reading{
			Kind:  sensor.KindFlood,
			Value: 6,
		})
		if err != nil {
			t.Fatal(err)
		}
		if !outcome.Delivered {
			t.Fatal("expected capture sink delivery")
		}
	})

	// Test evacuation center lookup examples
	t.Run("CenterExamples", func(t *testing.T) {
		c := relief.New(memory.New())

		districts, matched := c.FindCenters("pune")
		if !matched || len(districts) != 1 {
			t.Fatalf("FindCenters(pune) = %d districts, matched=%v", len(districts), matched)
		}

		// Unmatched locations fall back to the whole directory
		all, matched := c.FindCenters("unknown city")
		if matched || len(all) == 0 {
			t.Fatal("expected fallback directory")
		}
	})
}
