package domain

import "time"

// Represents a pick enriched with its actor-scoped predecessor and the metrics
// derived from the pair. A leading event of an actor has no predecessor: its
// PreviousConfirmedAt is nil, its idle times are 0 and its distance is unknown.
type SequencedEvent struct {
	PickEvent

	PreviousConfirmedAt *time.Time `json:"previous_confirmed_at"`
	PreviousSourceBin   string     `json:"previous_source_bin,omitempty"`

	GrossIdleSeconds float64 `json:"gross_idle_seconds"`
	NetIdleSeconds   float64 `json:"net_idle_seconds"`
	DistanceScore    int     `json:"distance_score"`

	Bin                      *BinCoordinate `json:"bin"`
	Classification           Classification `json:"classification"`
	NormalizedUnloadingPoint string         `json:"normalized_unloading_point,omitempty"`

	GroupID          string  `json:"group_id"`
	GroupSpanSeconds float64 `json:"group_span_seconds"`
}

// HasPrevious reports whether the event has a predecessor for the same actor.
func (e SequencedEvent) HasPrevious() bool {
	return e.PreviousConfirmedAt != nil
}

// NetIdleMinutes is NetIdleSeconds expressed in minutes.
func (e SequencedEvent) NetIdleMinutes() float64 {
	return e.NetIdleSeconds / 60
}

// Completion window of one delivery or transfer order. SpanSeconds is
// End-Start and is not net of breaks.
type GroupAggregate struct {
	GroupID     string    `json:"group_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Items       int       `json:"items"`
	FirstActor  string    `json:"first_actor"`
	SpanSeconds float64   `json:"span_seconds"`
}

// Analysis is the output of one engine run over one dataset.
type Analysis struct {
	Source      string                    `json:"source"`
	GroupField  GroupField                `json:"group_field"`
	DroppedRows int                       `json:"dropped_rows"`
	Events      []SequencedEvent          `json:"events"`
	Aggregates  map[string]GroupAggregate `json:"aggregates"`
}
