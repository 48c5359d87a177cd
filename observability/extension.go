// Package observability provides a metrics extension for Relief that records
// lifecycle event counts via a pluggable MetricFactory.
package observability

import (
	"context"
	"errors"

	"github.com/xraph/relief"
	"github.com/xraph/relief/plugin"
	"github.com/xraph/relief/service"
	"github.com/xraph/relief/supply"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin              = (*MetricsExtension)(nil)
	_ plugin.OnInit              = (*MetricsExtension)(nil)
	_ plugin.OnPersonRegistered  = (*MetricsExtension)(nil)
	_ plugin.OnServiceRecorded   = (*MetricsExtension)(nil)
	_ plugin.OnSupplyProvisioned = (*MetricsExtension)(nil)
	_ plugin.OnSupplyConsumed    = (*MetricsExtension)(nil)
	_ plugin.OnSupplyRejected    = (*MetricsExtension)(nil)
	_ plugin.OnAlertSent         = (*MetricsExtension)(nil)
	_ plugin.OnAlertFailed       = (*MetricsExtension)(nil)
	_ plugin.OnSensorEvaluated   = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Coordinator plugin to automatically track relief metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Person metrics
	PersonsRegistered Counter

	// Service metrics
	ServicesRecorded Counter
	FoodDistributed  Counter
	MedDistributed   Counter

	// Supply metrics
	SupplyProvisioned     Counter
	ConsumesAccepted      Counter
	ConsumesRejected      Counter
	ConsumesMissingRecord Counter

	// Alert metrics
	AlertsSent   Counter
	AlertsFailed Counter

	// Sensor metrics
	SensorEvaluations Counter

	// Stock level histograms, observed after each accepted consume
	RemainingFood Histogram
	RemainingMed  Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Person metrics
		PersonsRegistered: factory.Counter("relief.person.registered"),

		// Service metrics
		ServicesRecorded: factory.Counter("relief.service.recorded"),
		FoodDistributed:  factory.Counter("relief.service.food_packets"),
		MedDistributed:   factory.Counter("relief.service.medical_kits"),

		// Supply metrics
		SupplyProvisioned:     factory.Counter("relief.supply.provisioned"),
		ConsumesAccepted:      factory.Counter("relief.supply.consume.accepted"),
		ConsumesRejected:      factory.Counter("relief.supply.consume.rejected"),
		ConsumesMissingRecord: factory.Counter("relief.supply.consume.missing_record"),

		// Alert metrics
		AlertsSent:   factory.Counter("relief.alert.sent"),
		AlertsFailed: factory.Counter("relief.alert.failed"),

		// Sensor metrics
		SensorEvaluations: factory.Counter("relief.sensor.evaluations"),

		// Stock level histograms
		RemainingFood: factory.Histogram("relief.supply.remaining_food"),
		RemainingMed:  factory.Histogram("relief.supply.remaining_med"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Person lifecycle hooks
// ──────────────────────────────────────────────────

// OnPersonRegistered implements plugin.OnPersonRegistered.
func (m *MetricsExtension) OnPersonRegistered(_ context.Context, _ interface{}) error {
	m.PersonsRegistered.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Service lifecycle hooks
// ──────────────────────────────────────────────────

// OnServiceRecorded implements plugin.OnServiceRecorded.
func (m *MetricsExtension) OnServiceRecorded(_ context.Context, rec interface{}) error {
	m.ServicesRecorded.Inc()
	if r, ok := rec.(*service.Record); ok {
		m.FoodDistributed.Add(float64(r.FoodPackets))
		m.MedDistributed.Add(float64(r.MedicalKits))
	}
	return nil
}

// ──────────────────────────────────────────────────
// Supply lifecycle hooks
// ──────────────────────────────────────────────────

// OnSupplyProvisioned implements plugin.OnSupplyProvisioned.
func (m *MetricsExtension) OnSupplyProvisioned(_ context.Context, _ interface{}) error {
	m.SupplyProvisioned.Inc()
	return nil
}

// OnSupplyConsumed implements plugin.OnSupplyConsumed.
func (m *MetricsExtension) OnSupplyConsumed(_ context.Context, result interface{}) error {
	m.ConsumesAccepted.Inc()
	if res, ok := result.(*supply.ConsumeResult); ok {
		m.RemainingFood.Observe(float64(res.RemainingFood))
		m.RemainingMed.Observe(float64(res.RemainingMed))
	}
	return nil
}

// OnSupplyRejected implements plugin.OnSupplyRejected.
func (m *MetricsExtension) OnSupplyRejected(_ context.Context, _ string, _ int, _, _ int64, cause error) error {
	m.ConsumesRejected.Inc()
	if errors.Is(cause, relief.ErrNoSupplyRecord) {
		m.ConsumesMissingRecord.Inc()
	}
	return nil
}

// ──────────────────────────────────────────────────
// Alert lifecycle hooks
// ──────────────────────────────────────────────────

// OnAlertSent implements plugin.OnAlertSent.
func (m *MetricsExtension) OnAlertSent(_ context.Context, _, _ string) error {
	m.AlertsSent.Inc()
	return nil
}

// OnAlertFailed implements plugin.OnAlertFailed.
func (m *MetricsExtension) OnAlertFailed(_ context.Context, _, _ string, _ error) error {
	m.AlertsFailed.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Sensor lifecycle hooks
// ──────────────────────────────────────────────────

// OnSensorEvaluated implements plugin.OnSensorEvaluated.
func (m *MetricsExtension) OnSensorEvaluated(_ context.Context, _, _ interface{}) error {
	m.SensorEvaluations.Inc()
	return nil
}
