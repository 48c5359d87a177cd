// Package service defines relief service records: a person receiving food
// packets and medical kits at a location, optionally tied to an evacuation
// center.
package service

import (
	"strings"
	"time"

	"github.com/xraph/relief/id"
	"github.com/xraph/relief/types"
)

// CenterNotSelected marks a record made without choosing an evacuation center.
const CenterNotSelected = "Not selected"

// Record is one relief distribution event. A record only exists if the supply
// ledger accepted the matching consume first.
type Record struct {
	types.Entity
	ID          id.ServiceRecordID `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	User        string             `json:"user"`
	Disaster    string             `json:"disaster"`
	FoodPackets int64              `json:"food_packets"`
	MedicalKits int64              `json:"medical_kits"`
	Location    string             `json:"location"`
	EvacCenter  string             `json:"evac_center"`
}

// Request is the input to record a relief service. A zero Timestamp means
// now; the supply year is taken from the timestamp.
type Request struct {
	User        string    `json:"user"`
	Disaster    string    `json:"disaster"`
	FoodPackets int64     `json:"food_packets"`
	MedicalKits int64     `json:"medical_kits"`
	Location    string    `json:"location"`
	EvacCenter  string    `json:"evac_center"`
	Timestamp   time.Time `json:"timestamp"`
}

// Normalize trims whitespace and applies the center sentinel for a blank
// evacuation center.
func (r *Request) Normalize() {
	r.User = strings.TrimSpace(r.User)
	r.Disaster = strings.TrimSpace(r.Disaster)
	r.Location = strings.TrimSpace(r.Location)
	r.EvacCenter = strings.TrimSpace(r.EvacCenter)
	if r.EvacCenter == "" {
		r.EvacCenter = CenterNotSelected
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
}

// ListOpts filters a service record listing. Zero values mean no filter.
type ListOpts struct {
	User     string
	Location string
}
