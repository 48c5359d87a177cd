// Package supply defines the supply ledger: per (location, year) stock of
// food packets and medical kits, with the amount already given out.
package supply

import (
	"github.com/xraph/relief/id"
	"github.com/xraph/relief/types"
)

// Entry is one supply ledger record, keyed by (Location, Year).
//
// The invariant 0 <= GivenFood <= TotalFood and 0 <= GivenMed <= TotalMed
// holds at all times. Given counters only ever grow; there is no operation
// that returns stock to the ledger.
type Entry struct {
	types.Entity
	ID        id.SupplyEntryID `json:"id"`
	Location  string           `json:"location"`
	Year      int              `json:"year"`
	TotalFood int64            `json:"total_food"`
	TotalMed  int64            `json:"total_med"`
	GivenFood int64            `json:"given_food"`
	GivenMed  int64            `json:"given_med"`
}

// AvailableFood returns the food packets still available for distribution.
func (e *Entry) AvailableFood() int64 { return e.TotalFood - e.GivenFood }

// AvailableMed returns the medical kits still available for distribution.
func (e *Entry) AvailableMed() int64 { return e.TotalMed - e.GivenMed }

// Availability is the derived remaining stock of a ledger entry.
type Availability struct {
	Food int64 `json:"food"`
	Med  int64 `json:"med"`
}

// Availability returns the derived remaining stock for both resources.
func (e *Entry) Availability() Availability {
	return Availability{Food: e.AvailableFood(), Med: e.AvailableMed()}
}

// ConsumeRequest asks the ledger to issue stock against a (location, year) key.
type ConsumeRequest struct {
	Location string `json:"location"`
	Year     int    `json:"year"`
	Food     int64  `json:"food"`
	Med      int64  `json:"med"`
}

// ConsumeResult reports the remaining stock after an accepted consume.
type ConsumeResult struct {
	Location      string `json:"location"`
	Year          int    `json:"year"`
	RemainingFood int64  `json:"remaining_food"`
	RemainingMed  int64  `json:"remaining_med"`
}

// DefaultSeed is the ledger entry the reference deployment starts with.
func DefaultSeed() Entry {
	return Entry{
		Location:  "Maharashtra",
		Year:      2025,
		TotalFood: 5000,
		TotalMed:  3000,
	}
}
