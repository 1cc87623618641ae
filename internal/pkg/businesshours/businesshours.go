// Package businesshours converts wall-clock intervals into business-hours
// durations. All functions are pure and safe for concurrent use.
package businesshours

import "time"

// Config describes the counting window. StartHour/EndHour are local hours,
// EndHour exclusive. A zero-value Config counts raw wall-clock time.
type Config struct {
	BusinessHoursOnly bool
	StartHour         int
	EndHour           int
	ExcludeWeekends   bool
}

// Elapsed returns the number of hours between submittedAt and respondedAt that
// fall inside the configured business window. Reversed intervals yield zero.
// Partial leading and trailing hours are prorated fractionally.
func Elapsed(submittedAt, respondedAt time.Time, cfg Config) float64 {
	if !respondedAt.After(submittedAt) {
		return 0
	}

	if !cfg.BusinessHoursOnly {
		return respondedAt.Sub(submittedAt).Hours()
	}

	// Degenerate window: nothing would ever count, fall back to wall clock.
	if cfg.EndHour <= cfg.StartHour {
		return respondedAt.Sub(submittedAt).Hours()
	}

	var total float64
	cur := submittedAt

	for cur.Before(respondedAt) {
		if cfg.ExcludeWeekends && isWeekend(cur) {
			cur = nextBusinessStart(cur, cfg)
			continue
		}

		dayStart := atHour(cur, cfg.StartHour)
		dayEnd := atHour(cur, cfg.EndHour)

		if cur.Before(dayStart) {
			cur = dayStart
			continue
		}
		if !cur.Before(dayEnd) {
			cur = nextBusinessStart(cur, cfg)
			continue
		}

		segEnd := dayEnd
		if respondedAt.Before(segEnd) {
			segEnd = respondedAt
		}
		total += segEnd.Sub(cur).Hours()

		cur = nextBusinessStart(cur, cfg)
	}

	return total
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// nextBusinessStart returns the business-window start of the next counted day.
func nextBusinessStart(t time.Time, cfg Config) time.Time {
	next := atHour(t.AddDate(0, 0, 1), cfg.StartHour)
	if cfg.ExcludeWeekends {
		for isWeekend(next) {
			next = next.AddDate(0, 0, 1)
		}
	}
	return next
}
