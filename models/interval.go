package models

import "time"

// TimeInterval is a half-open [Start, End) range in UTC.
type TimeInterval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Intersect returns the overlap of two intervals, or false when they are
// disjoint. Touching endpoints still count as an overlap, matching the
// closed-ish range check used when filtering calendar events.
func Intersect(a, b TimeInterval) (TimeInterval, bool) {
	if a.Start.After(b.End) || b.Start.After(a.End) {
		return TimeInterval{}, false
	}
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	return TimeInterval{Start: start, End: end}, true
}

// Overlaps reports whether the two intervals share any instant, endpoints
// included.
func Overlaps(a, b TimeInterval) bool {
	_, ok := Intersect(a, b)
	return ok
}
