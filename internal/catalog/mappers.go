package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"travel_guide/internal/domain"
)

// Two record layouts exist in the wild: the structured one (hours list,
// location object, category list, amenity flags) and the flat one
// (free-text timings, location string, type, amenity list). Both map into
// domain.Place; free-text timings are converted into hour intervals.

/********** alias registries **********/

var placeAliases = map[string][]string{
	"name":    {"name", "title"},
	"info":    {"info", "description", "blurb", "summary"},
	"line":    {"location.address", "address.line", "address_line", "location.line"},
	"city":    {"location.city", "address.city", "city"},
	"state":   {"location.state", "address.state", "state"},
	"country": {"location.country", "address.country", "country"},
	"flat":    {"location", "address"},
	"timings": {"timings", "timing", "hours_text"},
	"map":     {"map_link", "mapLink", "maps_link", "map_url"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstNonEmptyAlias(m map[string]any, key string) string {
	for _, p := range placeAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

func firstInt64Flexible(m map[string]any, paths ...string) (int64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return int64(v), true
		case int:
			return int64(v), true
		case int64:
			return v, true
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// stringsAt accepts a list of strings or a single string.
func stringsAt(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		switch t := lookupAny(m, k).(type) {
		case []any:
			out := make([]string, 0, len(t))
			for _, it := range t {
				if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return []string{s}
			}
		}
	}
	return nil
}

// humanize turns "family_friendly" into "Family Friendly".
func humanize(key string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(key))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

/********** place mapper **********/

func mapPlace(r map[string]any, fallbackID int64) (domain.Place, error) {
	p := domain.Place{
		Name:       firstNonEmptyAlias(r, "name"),
		Info:       firstNonEmptyAlias(r, "info"),
		Categories: stringsAt(r, "category", "categories", "tags", "type"),
	}
	if id, ok := firstInt64Flexible(r, "id", "place_id"); ok {
		p.ID = id
	} else {
		p.ID = fallbackID
	}
	if p.Name == "" {
		return domain.Place{}, fmt.Errorf("record %d: missing name", p.ID)
	}

	p.Address = domain.Address{
		Line:    firstNonEmptyAlias(r, "line"),
		City:    firstNonEmptyAlias(r, "city"),
		State:   firstNonEmptyAlias(r, "state"),
		Country: firstNonEmptyAlias(r, "country"),
	}
	if p.Address == (domain.Address{}) {
		// flat layout: "Agra, Uttar Pradesh, India"
		p.Address.Line = firstNonEmptyAlias(r, "flat")
	}

	if raw, ok := r["hours"].([]any); ok {
		for _, it := range raw {
			h, ok := it.(map[string]any)
			if !ok {
				continue
			}
			p.Hours = append(p.Hours, domain.HourInterval{
				Days:  lookupStr(h, "days"),
				Open:  lookupStr(h, "open"),
				Close: lookupStr(h, "close"),
			})
		}
	} else if t := firstNonEmptyAlias(r, "timings"); t != "" {
		hours, err := ParseTimings(t)
		if err != nil {
			log.Warn().Err(err).Str("place", p.Name).Msg("timings not understood; hours left unknown")
		}
		p.Hours = hours
	}

	p.Amenities = mapAmenities(r["amenities"])

	if l := firstNonEmptyAlias(r, "map"); l != "" {
		p.MapLink = &l
	}
	return p, nil
}

// mapAmenities accepts either a flag object or a list of labels. Flag keys are
// sorted since JSON object order is not preserved.
func mapAmenities(v any) []domain.Amenity {
	switch t := v.(type) {
	case []any:
		out := make([]domain.Amenity, 0, len(t))
		for _, it := range t {
			switch a := it.(type) {
			case string:
				if a = strings.TrimSpace(a); a != "" {
					out = append(out, domain.Amenity{Label: a, Available: true})
				}
			case map[string]any:
				label := lookupStr(a, "label")
				if label == "" {
					label = lookupStr(a, "name")
				}
				avail, _ := a["available"].(bool)
				if label != "" {
					out = append(out, domain.Amenity{Label: label, Available: avail})
				}
			}
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]domain.Amenity, 0, len(keys))
		for _, k := range keys {
			flag, ok := t[k].(bool)
			if !ok {
				continue
			}
			out = append(out, domain.Amenity{Label: humanize(k), Available: flag})
		}
		return out
	}
	return nil
}

/********** free-text timings **********/

var (
	rangeRe  = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?\s*[-–to]+\s*(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\.?`)
	closedRe = regexp.MustCompile(`(?i)closed\s+on\s+([a-z, ]+?)(?:\)|$|\.)`)
	allDayRe = regexp.MustCompile(`(?i)open\s+24\s*(hours|hrs|h)`)
)

// ParseTimings converts strings like "9:30 AM - 4:30 PM (Closed on Mondays)"
// or "7:00 AM - 12:00 PM, 1:30 PM - 6:30 PM" into hour intervals.
func ParseTimings(s string) ([]domain.HourInterval, error) {
	days := allDays
	if m := closedRe.FindStringSubmatch(s); m != nil {
		for _, tok := range strings.FieldsFunc(m[1], func(r rune) bool { return r == ',' || r == ' ' }) {
			if strings.EqualFold(tok, "and") {
				continue
			}
			if i, ok := dayIndex(tok); ok {
				days &^= 1 << i
			}
		}
	}
	if days == 0 {
		return nil, fmt.Errorf("closed every day: %q", s)
	}
	label := formatDays(days)

	if allDayRe.MatchString(s) {
		return []domain.HourInterval{{Days: label, Open: "00:00", Close: "23:59"}}, nil
	}

	matches := rangeRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no time ranges in %q", s)
	}
	out := make([]domain.HourInterval, 0, len(matches))
	for _, m := range matches {
		open, err := clock12(m[1], m[2], m[3])
		if err != nil {
			return nil, err
		}
		closeT, err := clock12(m[4], m[5], m[6])
		if err != nil {
			return nil, err
		}
		// "HH:MM" compares lexically; ranges past midnight are not representable
		if open >= closeT {
			return nil, fmt.Errorf("range %s-%s ends before it starts in %q", open, closeT, s)
		}
		out = append(out, domain.HourInterval{Days: label, Open: open, Close: closeT})
	}
	return out, nil
}

func clock12(h, m, ampm string) (string, error) {
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 1 || hour > 12 {
		return "", fmt.Errorf("bad hour %q", h)
	}
	minute := 0
	if m != "" {
		if minute, err = strconv.Atoi(m); err != nil || minute > 59 {
			return "", fmt.Errorf("bad minute %q", m)
		}
	}
	hour %= 12
	if strings.EqualFold(ampm, "p") {
		hour += 12
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
