// Package audithook bridges Relief lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/relief/plugin"
	"github.com/xraph/relief/sensor"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin              = (*Extension)(nil)
	_ plugin.OnPersonRegistered  = (*Extension)(nil)
	_ plugin.OnServiceRecorded   = (*Extension)(nil)
	_ plugin.OnSupplyProvisioned = (*Extension)(nil)
	_ plugin.OnSupplyConsumed    = (*Extension)(nil)
	_ plugin.OnSupplyRejected    = (*Extension)(nil)
	_ plugin.OnAlertSent         = (*Extension)(nil)
	_ plugin.OnAlertFailed       = (*Extension)(nil)
	_ plugin.OnSensorEvaluated   = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly — callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Relief lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Person lifecycle hooks
// ──────────────────────────────────────────────────

// OnPersonRegistered implements plugin.OnPersonRegistered.
func (e *Extension) OnPersonRegistered(ctx context.Context, _ interface{}) error {
	// Would extract person details from the interface
	return e.record(ctx, ActionPersonRegistered, SeverityInfo, OutcomeSuccess,
		ResourcePerson, "", CategoryIdentity, nil,
		"event", "person_registered",
	)
}

// ──────────────────────────────────────────────────
// Service lifecycle hooks
// ──────────────────────────────────────────────────

// OnServiceRecorded implements plugin.OnServiceRecorded.
func (e *Extension) OnServiceRecorded(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionServiceRecorded, SeverityInfo, OutcomeSuccess,
		ResourceRecord, "", CategoryRelief, nil,
		"event", "service_recorded",
	)
}

// ──────────────────────────────────────────────────
// Supply lifecycle hooks
// ──────────────────────────────────────────────────

// OnSupplyProvisioned implements plugin.OnSupplyProvisioned.
func (e *Extension) OnSupplyProvisioned(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionSupplyProvisioned, SeverityInfo, OutcomeSuccess,
		ResourceSupply, "", CategoryInventory, nil,
		"event", "supply_provisioned",
	)
}

// OnSupplyConsumed implements plugin.OnSupplyConsumed.
func (e *Extension) OnSupplyConsumed(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionSupplyConsumed, SeverityInfo, OutcomeSuccess,
		ResourceSupply, "", CategoryInventory, nil,
		"event", "supply_consumed",
	)
}

// OnSupplyRejected implements plugin.OnSupplyRejected.
func (e *Extension) OnSupplyRejected(ctx context.Context, location string, year int, food, med int64, err error) error {
	return e.record(ctx, ActionSupplyRejected, SeverityWarning, OutcomeFailure,
		ResourceSupply, location, CategoryInventory, err,
		"location", location,
		"year", year,
		"food_requested", food,
		"med_requested", med,
	)
}

// ──────────────────────────────────────────────────
// Alert lifecycle hooks
// ──────────────────────────────────────────────────

// OnAlertSent implements plugin.OnAlertSent.
func (e *Extension) OnAlertSent(ctx context.Context, to, subject string) error {
	return e.record(ctx, ActionAlertSent, SeverityInfo, OutcomeSuccess,
		ResourceAlert, to, CategoryNotification, nil,
		"recipient", to,
		"subject", subject,
	)
}

// OnAlertFailed implements plugin.OnAlertFailed.
func (e *Extension) OnAlertFailed(ctx context.Context, to, subject string, err error) error {
	return e.record(ctx, ActionAlertFailed, SeverityError, OutcomeFailure,
		ResourceAlert, to, CategoryNotification, err,
		"recipient", to,
		"subject", subject,
	)
}

// ──────────────────────────────────────────────────
// Sensor lifecycle hooks
// ──────────────────────────────────────────────────

// OnSensorEvaluated implements plugin.OnSensorEvaluated.
func (e *Extension) OnSensorEvaluated(ctx context.Context, reading, evaluation interface{}) error {
	// Only audit warnings and alerts to reduce noise
	eval, ok := evaluation.(sensor.Evaluation)
	if !ok || eval.Severity < sensor.SeverityWarning {
		return nil
	}

	severity := SeverityWarning
	if eval.Severity == sensor.SeverityAlert {
		severity = SeverityCritical
	}

	kvPairs := []any{"message", eval.Message}
	if r, ok := reading.(sensor.Reading); ok {
		kvPairs = append(kvPairs, "kind", string(r.Kind), "value", r.Value)
	}

	return e.record(ctx, ActionSensorEvaluated, severity, OutcomeSuccess,
		ResourceSensor, "", CategoryMonitoring, nil,
		kvPairs...,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
