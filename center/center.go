// Package center holds the evacuation center directory: districts mapped to
// shelter names and a contact line, with a simple name-based lookup.
package center

import "strings"

// District groups the evacuation centers of one district with its contact line.
type District struct {
	Name    string   `json:"name"`
	Centers []string `json:"centers"`
	Contact string   `json:"contact"`
}

// Directory is an ordered list of districts. Lookup is a flat case-insensitive
// exact match on the district name; there is no geocoding.
type Directory struct {
	districts []District
}

// NewDirectory builds a directory preserving the given district order.
func NewDirectory(districts []District) *Directory {
	return &Directory{districts: districts}
}

// Districts returns the directory contents in insertion order.
func (d *Directory) Districts() []District {
	out := make([]District, len(d.districts))
	copy(out, d.districts)
	return out
}

// Find returns the districts matching the location. An exact case-insensitive
// name match returns that single district; a blank or unmatched location
// returns the whole directory, so callers always have centers to offer.
// The boolean reports whether an exact match was found.
func (d *Directory) Find(location string) ([]District, bool) {
	loc := strings.TrimSpace(location)
	if loc != "" {
		for _, dist := range d.districts {
			if strings.EqualFold(dist.Name, loc) {
				return []District{dist}, true
			}
		}
	}
	return d.Districts(), false
}

// Flatten lists every center as "District - Center" lines, including the
// contact line, in directory order.
func (d *Directory) Flatten() []string {
	var flat []string
	for _, dist := range d.districts {
		for _, c := range dist.Centers {
			flat = append(flat, dist.Name+" - "+c)
		}
		flat = append(flat, dist.Name+" - "+dist.Contact)
	}
	return flat
}

// Default returns the Maharashtra evacuation center directory.
func Default() *Directory {
	return NewDirectory([]District{
		{Name: "Mumbai", Centers: []string{"Mumbai Central Shelter", "Andheri Gymkhana"}, Contact: "Contact: 022-26123371"},
		{Name: "Pune", Centers: []string{"Pune Collector Office Grounds", "Shivajinagar Hall"}, Contact: "Contact: 020-26123371"},
		{Name: "Nashik", Centers: []string{"Godavari Nagar Center", "City Stadium Shelter"}, Contact: "Contact: 0253-2311234"},
		{Name: "Nagpur", Centers: []string{"Rescue Shelter Ground", "Government School 1"}, Contact: "Contact: 0712-2562001"},
		{Name: "Kolhapur", Centers: []string{"Main Stadium (Capacity: 500)", "Community Hall - North"}, Contact: "DDMA Office: 0231-2659232"},
		{Name: "Sangli", Centers: []string{"Collector Office Grounds", "School Hall A"}, Contact: "Toll-free: 1077, Office: 0233-2600500"},
		{Name: "Satara", Centers: []string{"Civic Center", "Community Shelter 1"}, Contact: "DDMA Office: 02162-232175"},
		{Name: "Aurangabad", Centers: []string{"Nagar Parishad Hall", "Town Shelter B"}, Contact: "Contact: 0240-2331550"},
		{Name: "Solapur", Centers: []string{"District Relief Camp", "Government Polytechnic Hall"}, Contact: "Contact: 0217-2729999"},
		{Name: "Thane", Centers: []string{"Thane Shelter Complex", "Kalwa Hall"}, Contact: "Contact: 022-25341300"},
	})
}
