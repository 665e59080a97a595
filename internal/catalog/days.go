package catalog

import (
	"fmt"
	"strings"
	"time"
)

// weekdays in display order; bit i of a day mask is weekdays[i].
var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const allDays uint8 = 1<<7 - 1

func dayIndex(tok string) (int, bool) {
	t := strings.ToLower(strings.TrimSpace(tok))
	if len(t) < 3 {
		return 0, false
	}
	for i, d := range weekdays {
		if strings.HasPrefix(t, strings.ToLower(d)) {
			return i, true
		}
	}
	return 0, false
}

// parseDays turns "Mon-Sun", "Sat-Thu" (wrapping) or "Mon,Wed,Fri" into a day mask.
func parseDays(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "daily", "everyday", "all days":
		return allDays, nil
	}
	var mask uint8
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if from, to, ok := strings.Cut(part, "-"); ok {
			a, okA := dayIndex(from)
			b, okB := dayIndex(to)
			if !okA || !okB {
				return 0, fmt.Errorf("bad day range %q", part)
			}
			for i := a; ; i = (i + 1) % 7 {
				mask |= 1 << i
				if i == b {
					break
				}
			}
			continue
		}
		i, ok := dayIndex(part)
		if !ok {
			return 0, fmt.Errorf("bad day %q", part)
		}
		mask |= 1 << i
	}
	if mask == 0 {
		return 0, fmt.Errorf("no days in %q", s)
	}
	return mask, nil
}

// formatDays renders a mask as a single (possibly wrapping) range when the
// days are contiguous, otherwise as a comma list.
func formatDays(mask uint8) string {
	mask &= allDays
	if mask == allDays {
		return "Mon-Sun"
	}
	if mask == 0 {
		return ""
	}
	// a contiguous cyclic run has exactly one closed->open transition
	start, starts := -1, 0
	for i := 0; i < 7; i++ {
		prev := (i + 6) % 7
		if mask&(1<<i) != 0 && mask&(1<<prev) == 0 {
			start = i
			starts++
		}
	}
	if starts == 1 {
		end := start
		for mask&(1<<((end+1)%7)) != 0 {
			end = (end + 1) % 7
		}
		if start == end {
			return weekdays[start]
		}
		return weekdays[start] + "-" + weekdays[end]
	}
	var out []string
	for i, d := range weekdays {
		if mask&(1<<i) != 0 {
			out = append(out, d)
		}
	}
	return strings.Join(out, ",")
}

// parseClock parses 24h "HH:MM" into minutes after midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bad time %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
