package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit              []OnInit
	onShutdown          []OnShutdown
	onPersonRegistered  []OnPersonRegistered
	onServiceRecorded   []OnServiceRecorded
	onSupplyProvisioned []OnSupplyProvisioned
	onSupplyConsumed    []OnSupplyConsumed
	onSupplyRejected    []OnSupplyRejected
	onAlertSent         []OnAlertSent
	onAlertFailed       []OnAlertFailed
	onSensorEvaluated   []OnSensorEvaluated
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnPersonRegistered); ok {
		r.onPersonRegistered = append(r.onPersonRegistered, v)
	}
	if v, ok := p.(OnServiceRecorded); ok {
		r.onServiceRecorded = append(r.onServiceRecorded, v)
	}
	if v, ok := p.(OnSupplyProvisioned); ok {
		r.onSupplyProvisioned = append(r.onSupplyProvisioned, v)
	}
	if v, ok := p.(OnSupplyConsumed); ok {
		r.onSupplyConsumed = append(r.onSupplyConsumed, v)
	}
	if v, ok := p.(OnSupplyRejected); ok {
		r.onSupplyRejected = append(r.onSupplyRejected, v)
	}
	if v, ok := p.(OnAlertSent); ok {
		r.onAlertSent = append(r.onAlertSent, v)
	}
	if v, ok := p.(OnAlertFailed); ok {
		r.onAlertFailed = append(r.onAlertFailed, v)
	}
	if v, ok := p.(OnSensorEvaluated); ok {
		r.onSensorEvaluated = append(r.onSensorEvaluated, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnPersonRegistered)(nil)).Elem(), "OnPersonRegistered")
	checkInterface(reflect.TypeOf((*OnServiceRecorded)(nil)).Elem(), "OnServiceRecorded")
	checkInterface(reflect.TypeOf((*OnSupplyProvisioned)(nil)).Elem(), "OnSupplyProvisioned")
	checkInterface(reflect.TypeOf((*OnSupplyConsumed)(nil)).Elem(), "OnSupplyConsumed")
	checkInterface(reflect.TypeOf((*OnSupplyRejected)(nil)).Elem(), "OnSupplyRejected")
	checkInterface(reflect.TypeOf((*OnAlertSent)(nil)).Elem(), "OnAlertSent")
	checkInterface(reflect.TypeOf((*OnAlertFailed)(nil)).Elem(), "OnAlertFailed")
	checkInterface(reflect.TypeOf((*OnSensorEvaluated)(nil)).Elem(), "OnSensorEvaluated")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, coordinator interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, coordinator)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPersonRegistered emits a person registered event.
func (r *Registry) EmitPersonRegistered(ctx context.Context, person interface{}) {
	r.mu.RLock()
	plugins := r.onPersonRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPersonRegistered(ctx, person)
		}); err != nil {
			r.logger.Warn("plugin OnPersonRegistered failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitServiceRecorded emits a service recorded event.
func (r *Registry) EmitServiceRecorded(ctx context.Context, rec interface{}) {
	r.mu.RLock()
	plugins := r.onServiceRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnServiceRecorded(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnServiceRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSupplyProvisioned emits a supply provisioned event.
func (r *Registry) EmitSupplyProvisioned(ctx context.Context, entry interface{}) {
	r.mu.RLock()
	plugins := r.onSupplyProvisioned
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSupplyProvisioned(ctx, entry)
		}); err != nil {
			r.logger.Warn("plugin OnSupplyProvisioned failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSupplyConsumed emits a supply consumed event.
func (r *Registry) EmitSupplyConsumed(ctx context.Context, result interface{}) {
	r.mu.RLock()
	plugins := r.onSupplyConsumed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSupplyConsumed(ctx, result)
		}); err != nil {
			r.logger.Warn("plugin OnSupplyConsumed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSupplyRejected emits a supply rejected event.
func (r *Registry) EmitSupplyRejected(ctx context.Context, location string, year int, food, med int64, cause error) {
	r.mu.RLock()
	plugins := r.onSupplyRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSupplyRejected(ctx, location, year, food, med, cause)
		}); err != nil {
			r.logger.Warn("plugin OnSupplyRejected failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitAlertSent emits an alert sent event.
func (r *Registry) EmitAlertSent(ctx context.Context, to, subject string) {
	r.mu.RLock()
	plugins := r.onAlertSent
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAlertSent(ctx, to, subject)
		}); err != nil {
			r.logger.Warn("plugin OnAlertSent failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitAlertFailed emits an alert failed event.
func (r *Registry) EmitAlertFailed(ctx context.Context, to, subject string, cause error) {
	r.mu.RLock()
	plugins := r.onAlertFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAlertFailed(ctx, to, subject, cause)
		}); err != nil {
			r.logger.Warn("plugin OnAlertFailed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSensorEvaluated emits a sensor evaluated event.
func (r *Registry) EmitSensorEvaluated(ctx context.Context, reading, evaluation interface{}) {
	r.mu.RLock()
	plugins := r.onSensorEvaluated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSensorEvaluated(ctx, reading, evaluation)
		}); err != nil {
			r.logger.Warn("plugin OnSensorEvaluated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the relief pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
