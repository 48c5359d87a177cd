// Package plugin provides an extensible plugin system for the relief
// coordinator. Plugins can hook into various lifecycle events to extend
// functionality.
package plugin

import "context"

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, c interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Person hooks
// ──────────────────────────────────────────────────

// OnPersonRegistered is called when a new person is registered.
type OnPersonRegistered interface {
	Plugin
	OnPersonRegistered(ctx context.Context, p interface{}) error
}

// ──────────────────────────────────────────────────
// Service hooks
// ──────────────────────────────────────────────────

// OnServiceRecorded is called when a relief service record is written.
type OnServiceRecorded interface {
	Plugin
	OnServiceRecorded(ctx context.Context, rec interface{}) error
}

// ──────────────────────────────────────────────────
// Supply ledger hooks
// ──────────────────────────────────────────────────

// OnSupplyProvisioned is called when stock is added or a ledger entry is
// created or replaced.
type OnSupplyProvisioned interface {
	Plugin
	OnSupplyProvisioned(ctx context.Context, entry interface{}) error
}

// OnSupplyConsumed is called when a consume is accepted.
type OnSupplyConsumed interface {
	Plugin
	OnSupplyConsumed(ctx context.Context, result interface{}) error
}

// OnSupplyRejected is called when a consume is rejected, either because no
// ledger entry exists or because stock is insufficient.
type OnSupplyRejected interface {
	Plugin
	OnSupplyRejected(ctx context.Context, location string, year int, food, med int64, err error) error
}

// ──────────────────────────────────────────────────
// Alert hooks
// ──────────────────────────────────────────────────

// OnAlertSent is called after a notification is delivered.
type OnAlertSent interface {
	Plugin
	OnAlertSent(ctx context.Context, to, subject string) error
}

// OnAlertFailed is called when notification delivery fails.
type OnAlertFailed interface {
	Plugin
	OnAlertFailed(ctx context.Context, to, subject string, err error) error
}

// OnSensorEvaluated is called after a sensor reading is classified.
type OnSensorEvaluated interface {
	Plugin
	OnSensorEvaluated(ctx context.Context, reading, evaluation interface{}) error
}
