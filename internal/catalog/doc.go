package catalog

import (
	"strings"

	"travel_guide/internal/domain"
)

// PlaceDoc is the wire shape of a place, shared by the HTTP API and the
// model prompt.
type PlaceDoc struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Categories []string   `json:"category"`
	Info       string     `json:"info,omitempty"`
	Address    string     `json:"address"`
	Hours      []HoursDoc `json:"hours"`
	HoursText  string     `json:"hours_text"`
	Amenities  []string   `json:"amenities"`
	MapLink    *string    `json:"map_link,omitempty"`
}

type HoursDoc struct {
	Days  string `json:"days"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// HoursUnknown is shown when a place has no hour intervals.
const HoursUnknown = "Hours information not available"

func ToDoc(p domain.Place) PlaceDoc {
	d := PlaceDoc{
		ID:         p.ID,
		Name:       p.Name,
		Categories: append([]string{}, p.Categories...),
		Info:       p.Info,
		Address:    p.Address.String(),
		Hours:      make([]HoursDoc, 0, len(p.Hours)),
		HoursText:  FormatHours(p.Hours, ", "),
		Amenities:  p.AvailableAmenities(),
	}
	if p.MapLink != nil {
		l := *p.MapLink
		d.MapLink = &l
	}
	if d.Amenities == nil {
		d.Amenities = []string{}
	}
	for _, h := range p.Hours {
		d.Hours = append(d.Hours, HoursDoc{Days: h.Days, Open: h.Open, Close: h.Close})
	}
	return d
}

func ToDocs(c *Catalog) []PlaceDoc {
	out := make([]PlaceDoc, 0, c.Len())
	for _, p := range c.places {
		out = append(out, ToDoc(p))
	}
	return out
}

// FormatHours renders "<days>: <open> - <close>" per interval joined by sep.
func FormatHours(hours []domain.HourInterval, sep string) string {
	if len(hours) == 0 {
		return HoursUnknown
	}
	lines := make([]string, 0, len(hours))
	for _, h := range hours {
		lines = append(lines, h.Days+": "+h.Open+" - "+h.Close)
	}
	return strings.Join(lines, sep)
}
