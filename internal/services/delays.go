package services

import (
	"cmp"
	"slices"

	"pick-analytics-service/internal/domain"
)

// Delays returns the events whose net idle time since the actor's previous
// pick exceeds thresholdMinutes, longest first. Leading events of an actor
// have no predecessor and never qualify.
func Delays(a *domain.Analysis, thresholdMinutes float64) []domain.SequencedEvent {
	out := make([]domain.SequencedEvent, 0)
	for _, ev := range a.Events {
		if ev.HasPrevious() && ev.NetIdleMinutes() > thresholdMinutes {
			out = append(out, ev)
		}
	}

	slices.SortStableFunc(out, func(x, y domain.SequencedEvent) int {
		return cmp.Compare(y.NetIdleSeconds, x.NetIdleSeconds)
	})

	return out
}

// SortedAggregates returns the analysis aggregates ordered by group id.
func SortedAggregates(a *domain.Analysis) []domain.GroupAggregate {
	out := make([]domain.GroupAggregate, 0, len(a.Aggregates))
	for _, agg := range a.Aggregates {
		out = append(out, agg)
	}

	slices.SortFunc(out, func(x, y domain.GroupAggregate) int {
		return cmp.Compare(x.GroupID, y.GroupID)
	})

	return out
}
