package businesshours

import (
	"math"
	"testing"
	"time"
)

func date(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestElapsedWallClock(t *testing.T) {
	cfg := Config{}

	start := date(2025, time.March, 3, 10)
	end := start.Add(26 * time.Hour)

	if got := Elapsed(start, end, cfg); !almostEqual(got, 26) {
		t.Errorf("Elapsed = %v, want 26", got)
	}
}

func TestElapsedZeroForReversedInterval(t *testing.T) {
	cfg := Config{BusinessHoursOnly: true, StartHour: 9, EndHour: 17}

	at := date(2025, time.March, 3, 10)

	if got := Elapsed(at, at, cfg); got != 0 {
		t.Errorf("Elapsed(t, t) = %v, want 0", got)
	}
	if got := Elapsed(at, at.Add(-time.Hour), cfg); got != 0 {
		t.Errorf("Elapsed with reversed interval = %v, want 0", got)
	}
}

func TestElapsedBusinessHoursSameDay(t *testing.T) {
	cfg := Config{BusinessHoursOnly: true, StartHour: 9, EndHour: 17}

	// Monday 10:00 to Monday 14:30.
	start := date(2025, time.March, 3, 10)
	end := start.Add(4*time.Hour + 30*time.Minute)

	if got := Elapsed(start, end, cfg); !almostEqual(got, 4.5) {
		t.Errorf("Elapsed = %v, want 4.5", got)
	}
}

func TestElapsedSkipsNights(t *testing.T) {
	cfg := Config{BusinessHoursOnly: true, StartHour: 9, EndHour: 17}

	// Monday 16:00 to Tuesday 10:00: one hour Monday, one hour Tuesday.
	start := date(2025, time.March, 3, 16)
	end := date(2025, time.March, 4, 10)

	if got := Elapsed(start, end, cfg); !almostEqual(got, 2) {
		t.Errorf("Elapsed = %v, want 2", got)
	}
}

func TestElapsedSkipsWeekends(t *testing.T) {
	cfg := Config{BusinessHoursOnly: true, StartHour: 9, EndHour: 17, ExcludeWeekends: true}

	// Friday 16:00 to Monday 10:00: one hour Friday, one hour Monday.
	start := date(2025, time.March, 7, 16)
	end := date(2025, time.March, 10, 10)

	if got := Elapsed(start, end, cfg); !almostEqual(got, 2) {
		t.Errorf("Elapsed = %v, want 2", got)
	}
}

func TestElapsedWeekendSubmission(t *testing.T) {
	cfg := Config{BusinessHoursOnly: true, StartHour: 9, EndHour: 17, ExcludeWeekends: true}

	// Saturday noon to Monday 11:00: only Monday 9-11 counts.
	start := date(2025, time.March, 8, 12)
	end := date(2025, time.March, 10, 11)

	if got := Elapsed(start, end, cfg); !almostEqual(got, 2) {
		t.Errorf("Elapsed = %v, want 2", got)
	}
}

func TestElapsedOutsideWindowCountsNothing(t *testing.T) {
	cfg := Config{BusinessHoursOnly: true, StartHour: 9, EndHour: 17}

	// Entirely before the window opens.
	start := date(2025, time.March, 3, 6)
	end := date(2025, time.March, 3, 8)

	if got := Elapsed(start, end, cfg); got != 0 {
		t.Errorf("Elapsed = %v, want 0", got)
	}
}

func TestElapsedDegenerateWindowFallsBackToWallClock(t *testing.T) {
	cfg := Config{BusinessHoursOnly: true, StartHour: 17, EndHour: 9}

	start := date(2025, time.March, 3, 10)
	end := start.Add(5 * time.Hour)

	if got := Elapsed(start, end, cfg); !almostEqual(got, 5) {
		t.Errorf("Elapsed = %v, want 5", got)
	}
}

func TestElapsedMonotonic(t *testing.T) {
	cfg := Config{BusinessHoursOnly: true, StartHour: 9, EndHour: 17, ExcludeWeekends: true}

	start := date(2025, time.March, 7, 10)

	prev := -1.0
	for i := 0; i < 96; i++ {
		now := start.Add(time.Duration(i) * time.Hour)
		got := Elapsed(start, now, cfg)
		if got < prev {
			t.Fatalf("Elapsed decreased from %v to %v at +%dh", prev, got, i)
		}
		prev = got
	}
}
