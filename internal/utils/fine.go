package utils

import "time"

// TruncateToDay normalizes t to midnight in its own location. Used for
// day-granularity cutoffs such as the overdue listing.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// utcDate maps t to its calendar date rendered in UTC. Differences
// between two such dates are exact multiples of 24h, so day counts are
// immune to DST transitions in the original location.
func utcDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OverdueDays returns the number of calendar days now is past due.
// Returns 0 when now is on or before the due date.
func OverdueDays(dueDate, now time.Time) int32 {
	due := utcDate(dueDate)
	cur := utcDate(now)
	if !cur.After(due) {
		return 0
	}
	return int32(cur.Sub(due).Hours() / 24)
}

// CalculateFine computes the fine owed on a loan due at dueDate when
// evaluated at now, charging finePerDay for every whole day past due.
//
// The function is pure: it has no side effects and may be called
// repeatedly with different now values to produce live fines for a
// record that has not been returned yet.
func CalculateFine(dueDate, now time.Time, finePerDay int32) int32 {
	return OverdueDays(dueDate, now) * finePerDay
}
