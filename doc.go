// Package relief provides a composable disaster-relief coordination core for
// Go applications.
//
// Relief is designed as a library, not a service. Import it directly into
// your Go application; presentation layers (GUI, HTTP, CLI) stay outside and
// call into the coordinator. It provides:
//
//   - A consistent supply ledger with all-or-nothing consumption
//   - Person registration and login backed by field validation
//   - An append-only service log that never diverges from the ledger
//   - Email alerts for supply shortages and disaster sensor readings
//   - An evacuation center directory with name-based lookup
//   - Pluggable lifecycle hooks for audit and metrics
//
// # Quick Start
//
// Create a coordinator with your preferred store:
//
//	import (
//	    "github.com/xraph/relief"
//	    "github.com/xraph/relief/store/memory"
//	)
//
//	// Initialize store
//	store := memory.New()
//
//	// Create the coordinator
//	c := relief.New(store)
//
//	// Start it (migrates and seeds the supply ledger)
//	if err := c.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Stop()
//
// # Core Concepts
//
// People register once under a unique name and log in with it:
//
//	p, err := c.RegisterPerson(ctx, person.Registration{
//	    Name:     "Asha Kulkarni",
//	    Age:      34,
//	    Location: "Pune",
//	    Phone:    "9876543210",
//	    Email:    "asha@example.com",
//	    Password: "secret",
//	})
//
// Services consume supplies first, then record the distribution:
//
//	rec, err := c.RecordService(ctx, service.Request{
//	    User:        "Asha Kulkarni",
//	    Disaster:    "flood",
//	    FoodPackets: 100,
//	    MedicalKits: 50,
//	    Location:    "Maharashtra",
//	})
//
// A rejected consume means no record is written; insufficient stock also
// alerts the configured admin address.
//
// Sensor readings are classified against fixed thresholds and the affected
// person is emailed the result:
//
//	outcome, err := c.SensorAlert(ctx, "Asha Kulkarni", sensor.Reading{
//	    Kind:  sensor.KindFlood,
//	    Value: 6,
//	})
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	prsn_01h2xcejqtf2nbrexx3vqjhp41  // Person ID
//	srec_01h2xcejqtf2nbrexx3vqjhp41  // Service record ID
//	sup_01h455vb4pex5vsknk084sn02q   // Supply entry ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package relief
