package services

import (
	"testing"
	"time"

	"pick-analytics-service/internal/domain"
)

func TestDelaysFiltersAndSorts(t *testing.T) {
	ds := &domain.Dataset{
		Events: []domain.PickEvent{
			{SourceRow: 1, Actor: "A", ConfirmedAt: clock(6, 0)},
			{SourceRow: 2, Actor: "A", ConfirmedAt: clock(6, 20)},
			{SourceRow: 3, Actor: "A", ConfirmedAt: clock(6, 30)},
			{SourceRow: 4, Actor: "A", ConfirmedAt: clock(7, 30)},
			{SourceRow: 5, Actor: "B", ConfirmedAt: clock(12, 0)},
		},
	}

	a := newTestEngine(t, nil).Analyze(ds)
	got := Delays(a, 15)

	if len(got) != 2 {
		t.Fatalf("delays = %d, want 2", len(got))
	}
	if got[0].SourceRow != 4 || got[1].SourceRow != 2 {
		t.Fatalf("order = %d,%d, want 4,2", got[0].SourceRow, got[1].SourceRow)
	}
	if got[0].NetIdleMinutes() != 60 {
		t.Fatalf("longest delay = %v min, want 60", got[0].NetIdleMinutes())
	}
}

func TestDelaysExcludesLeadingEvents(t *testing.T) {
	a := &domain.Analysis{
		Events: []domain.SequencedEvent{
			{PickEvent: domain.PickEvent{Actor: "A"}, NetIdleSeconds: 99999},
		},
	}

	if got := Delays(a, 0); len(got) != 0 {
		t.Fatalf("delays = %d, want 0", len(got))
	}
}

func TestSortedAggregates(t *testing.T) {
	a := &domain.Analysis{Aggregates: map[string]domain.GroupAggregate{
		"D3": {GroupID: "D3"},
		"D1": {GroupID: "D1"},
		"D2": {GroupID: "D2", SpanSeconds: time.Minute.Seconds()},
	}}

	got := SortedAggregates(a)
	if len(got) != 3 || got[0].GroupID != "D1" || got[2].GroupID != "D3" {
		t.Fatalf("sorted = %+v", got)
	}
}
