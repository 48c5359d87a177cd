package audithook

// Action constants for audit events.
const (
	// Person actions
	ActionPersonRegistered = "person.registered"

	// Service actions
	ActionServiceRecorded = "service.recorded"

	// Supply actions
	ActionSupplyProvisioned = "supply.provisioned"
	ActionSupplyConsumed    = "supply.consumed"
	ActionSupplyRejected    = "supply.rejected"

	// Alert actions
	ActionAlertSent   = "alert.sent"
	ActionAlertFailed = "alert.failed"

	// Sensor actions
	ActionSensorEvaluated = "sensor.evaluated"
)

// Resource constants for audit events.
const (
	ResourcePerson = "person"
	ResourceRecord = "service_record"
	ResourceSupply = "supply"
	ResourceAlert  = "alert"
	ResourceSensor = "sensor"
)

// Category constants for audit events.
const (
	CategoryIdentity     = "identity"
	CategoryRelief       = "relief"
	CategoryInventory    = "inventory"
	CategoryNotification = "notification"
	CategoryMonitoring   = "monitoring"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
