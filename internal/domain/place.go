package domain

import "strings"

type Place struct {
	ID         int64
	Name       string
	Categories []string
	Info       string // free-text blurb
	Address    Address
	Hours      []HourInterval // empty means hours unknown
	Amenities  []Amenity
	MapLink    *string
}

type Address struct {
	Line    string
	City    string
	State   string
	Country string
}

// String renders the address as a single comma separated line, skipping empty parts.
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line, a.City, a.State, a.Country} {
		if t := strings.TrimSpace(p); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ", ")
}

// HourInterval is one opening window. Days uses short weekday names,
// either a range ("Mon-Sun", "Sat-Thu") or a list ("Mon,Wed,Fri").
// Open and Close are 24h "HH:MM".
type HourInterval struct {
	Days  string
	Open  string
	Close string
}

type Amenity struct {
	Label     string
	Available bool
}

// AvailableAmenities returns the labels of flagged amenities in catalog order.
func (p Place) AvailableAmenities() []string {
	var out []string
	for _, a := range p.Amenities {
		if a.Available {
			out = append(out, a.Label)
		}
	}
	return out
}
