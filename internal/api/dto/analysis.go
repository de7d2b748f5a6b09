package dto

import (
	"time"

	"pick-analytics-service/internal/domain"
)

type BinResponse struct {
	Row int `json:"row"`
	Bay int `json:"bay"`
}

type EventResponse struct {
	SourceRow           int          `json:"source_row"`
	Actor               string       `json:"actor"`
	TransferOrder       string       `json:"transfer_order"`
	Delivery            string       `json:"delivery,omitempty"`
	GroupID             string       `json:"group_id"`
	SourceBin           string       `json:"source_bin"`
	Bin                 *BinResponse `json:"bin"`
	Material            string       `json:"material,omitempty"`
	MaterialDescription string       `json:"material_description,omitempty"`
	ConfirmedAt         time.Time    `json:"confirmed_at"`
	PreviousConfirmedAt *time.Time   `json:"previous_confirmed_at"`
	PreviousSourceBin   string       `json:"previous_source_bin,omitempty"`
	GrossIdleSeconds    float64      `json:"gross_idle_seconds"`
	NetIdleSeconds      float64      `json:"net_idle_seconds"`
	NetIdleMinutes      float64      `json:"net_idle_minutes"`
	DistanceScore       int          `json:"distance_score"`
	Classification      string       `json:"classification"`
	UnloadingPoint      string       `json:"unloading_point,omitempty"`
	GroupSpanSeconds    float64      `json:"group_span_seconds"`
}

type AggregateResponse struct {
	GroupID     string    `json:"group_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Items       int       `json:"items"`
	FirstActor  string    `json:"first_actor"`
	SpanSeconds float64   `json:"span_seconds"`
}

type AnalysisSummary struct {
	Events      int `json:"events"`
	Groups      int `json:"groups"`
	Delays      int `json:"delays"`
	DroppedRows int `json:"dropped_rows"`
}

type AnalysisResponse struct {
	Source           string              `json:"source"`
	GroupField       string              `json:"group_field"`
	ThresholdMinutes float64             `json:"threshold_minutes"`
	Summary          AnalysisSummary     `json:"summary"`
	Events           []EventResponse     `json:"events"`
	Aggregates       []AggregateResponse `json:"aggregates"`
	Delays           []EventResponse     `json:"delays"`
}

func NewEventResponse(ev domain.SequencedEvent) EventResponse {
	res := EventResponse{
		SourceRow:           ev.SourceRow,
		Actor:               ev.Actor,
		TransferOrder:       ev.TransferOrder,
		Delivery:            ev.Delivery,
		GroupID:             ev.GroupID,
		SourceBin:           ev.SourceBin,
		Material:            ev.Material,
		MaterialDescription: ev.MaterialDescription,
		ConfirmedAt:         ev.ConfirmedAt,
		PreviousConfirmedAt: ev.PreviousConfirmedAt,
		PreviousSourceBin:   ev.PreviousSourceBin,
		GrossIdleSeconds:    ev.GrossIdleSeconds,
		NetIdleSeconds:      ev.NetIdleSeconds,
		NetIdleMinutes:      ev.NetIdleMinutes(),
		DistanceScore:       ev.DistanceScore,
		Classification:      string(ev.Classification),
		UnloadingPoint:      ev.NormalizedUnloadingPoint,
		GroupSpanSeconds:    ev.GroupSpanSeconds,
	}
	if ev.Bin != nil {
		res.Bin = &BinResponse{Row: ev.Bin.Row, Bay: ev.Bin.Bay}
	}
	return res
}

func NewEventResponses(events []domain.SequencedEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, NewEventResponse(ev))
	}
	return out
}

func NewAggregateResponses(aggs []domain.GroupAggregate) []AggregateResponse {
	out := make([]AggregateResponse, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, AggregateResponse{
			GroupID:     a.GroupID,
			Start:       a.Start,
			End:         a.End,
			Items:       a.Items,
			FirstActor:  a.FirstActor,
			SpanSeconds: a.SpanSeconds,
		})
	}
	return out
}
