// Package sensor evaluates disaster sensor readings against fixed thresholds
// and produces the alert text sent to affected people.
package sensor

import "strings"

// Kind identifies the disaster type a reading belongs to.
type Kind string

const (
	KindFlood      Kind = "flood"
	KindEarthquake Kind = "earthquake"
	KindFire       Kind = "fire"
)

// ParseKind normalizes free-form input ("Flood", " FIRE ") into a Kind.
// Unrecognized input is returned as-is in lower case; Evaluate maps it to
// SeverityNone.
func ParseKind(s string) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(s)))
}

// Title returns the kind capitalized for display, e.g. "Flood".
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Severity classifies an evaluated reading.
type Severity int

const (
	// SeverityNone means the kind is unknown and no thresholds apply.
	SeverityNone Severity = iota
	// SeverityNormal means the reading is below the warning threshold.
	SeverityNormal
	// SeverityWarning means the reading crossed the warning threshold.
	SeverityWarning
	// SeverityAlert means the reading crossed the alert threshold.
	SeverityAlert
)

func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityWarning:
		return "warning"
	case SeverityAlert:
		return "alert"
	default:
		return "none"
	}
}

// Reading is a single sensor measurement. The unit depends on the kind:
// meters of water for flood, magnitude for earthquake, smoke level 1-10
// for fire.
type Reading struct {
	Kind  Kind    `json:"kind"`
	Value float64 `json:"value"`
}

// Evaluation is the outcome of applying thresholds to a reading.
type Evaluation struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Evaluate applies the fixed per-kind thresholds: flood alerts at 5 meters
// and warns at 3, earthquake alerts at magnitude 6.0 and warns at 4.0, fire
// alerts at smoke level 7 and warns at 4.
func Evaluate(r Reading) Evaluation {
	switch r.Kind {
	case KindFlood:
		switch {
		case r.Value >= 5:
			return Evaluation{SeverityAlert, "ALERT: High flood water level detected. Evacuate immediately!"}
		case r.Value >= 3:
			return Evaluation{SeverityWarning, "Warning: Moderate flood level. Prepare for evacuation."}
		default:
			return Evaluation{SeverityNormal, "Status: Water level normal."}
		}
	case KindEarthquake:
		switch {
		case r.Value >= 6.0:
			return Evaluation{SeverityAlert, "ALERT: Strong earthquake tremors detected."}
		case r.Value >= 4.0:
			return Evaluation{SeverityWarning, "Warning: Moderate tremors detected."}
		default:
			return Evaluation{SeverityNormal, "Status: Tremors normal."}
		}
	case KindFire:
		switch {
		case r.Value >= 7:
			return Evaluation{SeverityAlert, "ALERT: High smoke levels detected. Evacuate!"}
		case r.Value >= 4:
			return Evaluation{SeverityWarning, "Warning: Moderate smoke detected."}
		default:
			return Evaluation{SeverityNormal, "Status: Smoke level normal."}
		}
	default:
		return Evaluation{SeverityNone, "No sensor data for this disaster type."}
	}
}
