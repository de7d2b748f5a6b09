package services

import (
	"fmt"
	"slices"
	"strings"

	"pick-analytics-service/internal/domain"
)

// Engine sequences pick events per actor and derives idle time, travel
// distance, classification and group completion windows.
//
// An Engine holds only read-only configuration and may be shared; every
// Analyze call builds fresh state.
type Engine struct {
	opts       Options
	durations  *domain.DurationCalculator
	scorer     domain.DistanceScorer
	classifier domain.Classifier
}

func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	return &Engine{
		opts:       opts,
		durations:  domain.NewDurationCalculator(opts.Breaks, opts.grossCap()),
		scorer:     domain.DistanceScorer{RowChangePenalty: opts.RowChangePenalty},
		classifier: domain.Classifier{KLTStart: opts.KLTStart, KLTEnd: opts.KLTEnd},
	}, nil
}

func (e *Engine) Options() Options { return e.opts }

// Analyze runs one pass over the dataset. Row-level problems never fail the
// run: rows without a timestamp are dropped and counted, undecodable bins and
// identifiers degrade to sentinel values.
func (e *Engine) Analyze(ds *domain.Dataset) *domain.Analysis {
	events := make([]domain.PickEvent, 0, len(ds.Events))
	for _, ev := range ds.Events {
		if ev.ConfirmedAt.IsZero() {
			continue
		}
		events = append(events, ev)
	}
	dropped := len(ds.Events) - len(events)

	// Partition by actor, chronological within the partition. Stable so that
	// identical timestamps keep their export order.
	slices.SortStableFunc(events, func(a, b domain.PickEvent) int {
		if c := strings.Compare(a.Actor, b.Actor); c != 0 {
			return c
		}
		return a.ConfirmedAt.Compare(b.ConfirmedAt)
	})

	field := e.opts.GroupBy
	if field == domain.GroupByDelivery && !ds.HasDelivery {
		field = domain.GroupByTransferOrder
	}

	sequenced := make([]domain.SequencedEvent, 0, len(events))
	for i, ev := range events {
		se := domain.SequencedEvent{
			PickEvent:                ev,
			DistanceScore:            domain.UnknownDistance,
			Classification:           e.classifier.Classify(ev),
			NormalizedUnloadingPoint: domain.NormalizeIdentifier(ev.UnloadingPoint),
			GroupID:                  strings.TrimSpace(ev.GroupID(field)),
		}

		if bin, ok := domain.DecodeBin(ev.SourceBin); ok {
			se.Bin = &bin
		}

		if i > 0 && events[i-1].Actor == ev.Actor {
			prev := events[i-1]
			prevAt := prev.ConfirmedAt
			se.PreviousConfirmedAt = &prevAt
			se.PreviousSourceBin = prev.SourceBin
			se.GrossIdleSeconds = e.durations.GrossSeconds(prevAt, ev.ConfirmedAt)
			se.NetIdleSeconds = e.durations.NetSeconds(prevAt, ev.ConfirmedAt)
			se.DistanceScore = e.scorer.Score(ev.SourceBin, prev.SourceBin)
		}

		sequenced = append(sequenced, se)
	}

	aggregates := aggregateGroups(sequenced)
	for i := range sequenced {
		if agg, ok := aggregates[sequenced[i].GroupID]; ok {
			sequenced[i].GroupSpanSeconds = agg.SpanSeconds
		}
	}

	return &domain.Analysis{
		Source:      ds.Source,
		GroupField:  field,
		DroppedRows: dropped,
		Events:      sequenced,
		Aggregates:  aggregates,
	}
}

// aggregateGroups computes the completion window of every non-empty group.
// The first actor is the actor of the earliest event; equal timestamps go to
// the row that came first in the export.
func aggregateGroups(events []domain.SequencedEvent) map[string]domain.GroupAggregate {
	type acc struct {
		agg      domain.GroupAggregate
		firstRow int
	}

	groups := make(map[string]*acc)
	for _, ev := range events {
		if ev.GroupID == "" {
			continue
		}

		g, ok := groups[ev.GroupID]
		if !ok {
			groups[ev.GroupID] = &acc{
				agg: domain.GroupAggregate{
					GroupID:    ev.GroupID,
					Start:      ev.ConfirmedAt,
					End:        ev.ConfirmedAt,
					Items:      1,
					FirstActor: ev.Actor,
				},
				firstRow: ev.SourceRow,
			}
			continue
		}

		g.agg.Items++
		if ev.ConfirmedAt.Before(g.agg.Start) ||
			(ev.ConfirmedAt.Equal(g.agg.Start) && ev.SourceRow < g.firstRow) {
			g.agg.Start = ev.ConfirmedAt
			g.agg.FirstActor = ev.Actor
			g.firstRow = ev.SourceRow
		}
		if ev.ConfirmedAt.After(g.agg.End) {
			g.agg.End = ev.ConfirmedAt
		}
	}

	out := make(map[string]domain.GroupAggregate, len(groups))
	for id, g := range groups {
		span := g.agg.End.Sub(g.agg.Start)
		// Negative spans mean corrupted input; they are left out, not clamped.
		if span < 0 {
			continue
		}
		g.agg.SpanSeconds = span.Seconds()
		out[id] = g.agg
	}

	return out
}
