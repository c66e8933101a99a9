package pricing

import "time"

// Season is a named date range. Seasons may overlap each other.
type Season struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Overlaps reports whether the trip range [tripStart, tripEnd] intersects the
// season. Both bounds are inclusive, so a trip starting on the season's last
// day overlaps.
func (s Season) Overlaps(tripStart, tripEnd time.Time) bool {
	return !dateOnly(tripStart).After(dateOnly(s.EndDate)) &&
		!dateOnly(tripEnd).Before(dateOnly(s.StartDate))
}

// OverlappingSeasons filters seasons to those overlapping the trip range.
func OverlappingSeasons(seasons []Season, tripStart, tripEnd time.Time) []Season {
	out := make([]Season, 0, len(seasons))
	for _, s := range seasons {
		if s.Overlaps(tripStart, tripEnd) {
			out = append(out, s)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
