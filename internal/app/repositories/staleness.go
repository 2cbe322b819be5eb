package repositories

import "time"

// StalenessDecision is the outcome of the pre-refresh staleness gate.
type StalenessDecision struct {
	Proceed        bool
	ElapsedHours   float64
	RemainingHours float64
}

// EvaluateStaleness decides whether a refresh may run. A zero lastRefresh
// means the catalog has never been loaded, which always proceeds, as does
// force. Otherwise the refresh proceeds only once minInterval has elapsed
// since the last one. Both timestamps are normalized to UTC before
// comparison; the persisted timestamp is stored in UTC and must never be
// compared against a zoned now.
func EvaluateStaleness(lastRefresh, now time.Time, minInterval time.Duration, force bool) StalenessDecision {
	if force || lastRefresh.IsZero() {
		return StalenessDecision{Proceed: true}
	}

	elapsed := now.UTC().Sub(lastRefresh.UTC())
	remaining := minInterval - elapsed
	if remaining < 0 {
		remaining = 0
	}

	return StalenessDecision{
		Proceed:        elapsed >= minInterval,
		ElapsedHours:   elapsed.Hours(),
		RemainingHours: remaining.Hours(),
	}
}
