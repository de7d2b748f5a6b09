package export

import (
	"strconv"
	"time"

	"pick-analytics-service/internal/domain"
)

// TimeLayout is used for every timestamp cell.
const TimeLayout = "2006-01-02 15:04:05"

// Table is a header plus string rows, the shape shared by the CSV and
// workbook writers.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// EventColumns documents the per-event table. Delay reports use the same columns.
var EventColumns = []string{
	"source_row",
	"actor",
	"transfer_order",
	"delivery",
	"group_id",
	"source_bin",
	"bin_row",
	"bin_bay",
	"material",
	"material_description",
	"confirmed_at",
	"previous_confirmed_at",
	"previous_source_bin",
	"gross_idle_seconds",
	"net_idle_seconds",
	"net_idle_minutes",
	"distance_score",
	"classification",
	"certificate_number",
	"unloading_point",
	"normalized_unloading_point",
	"group_span_seconds",
}

var AggregateColumns = []string{
	"group_id",
	"start",
	"end",
	"items",
	"first_actor",
	"span_seconds",
	"span_minutes",
}

func EventsTable(name string, events []domain.SequencedEvent) Table {
	t := Table{Name: name, Header: EventColumns, Rows: make([][]string, 0, len(events))}
	for _, ev := range events {
		t.Rows = append(t.Rows, eventRow(ev))
	}
	return t
}

func AggregatesTable(name string, aggs []domain.GroupAggregate) Table {
	t := Table{Name: name, Header: AggregateColumns, Rows: make([][]string, 0, len(aggs))}
	for _, a := range aggs {
		t.Rows = append(t.Rows, []string{
			a.GroupID,
			formatTime(a.Start),
			formatTime(a.End),
			strconv.Itoa(a.Items),
			a.FirstActor,
			formatFloat(a.SpanSeconds),
			formatFloat(a.SpanSeconds / 60),
		})
	}
	return t
}

// Unknown bin coordinates and missing predecessors are written as empty cells.
func eventRow(ev domain.SequencedEvent) []string {
	var binRow, binBay, prevAt string
	if ev.Bin != nil {
		binRow = strconv.Itoa(ev.Bin.Row)
		binBay = strconv.Itoa(ev.Bin.Bay)
	}
	if ev.PreviousConfirmedAt != nil {
		prevAt = formatTime(*ev.PreviousConfirmedAt)
	}

	return []string{
		strconv.Itoa(ev.SourceRow),
		ev.Actor,
		ev.TransferOrder,
		ev.Delivery,
		ev.GroupID,
		ev.SourceBin,
		binRow,
		binBay,
		ev.Material,
		ev.MaterialDescription,
		formatTime(ev.ConfirmedAt),
		prevAt,
		ev.PreviousSourceBin,
		formatFloat(ev.GrossIdleSeconds),
		formatFloat(ev.NetIdleSeconds),
		formatFloat(ev.NetIdleMinutes()),
		strconv.Itoa(ev.DistanceScore),
		string(ev.Classification),
		ev.CertificateNumber,
		ev.UnloadingPoint,
		ev.NormalizedUnloadingPoint,
		formatFloat(ev.GroupSpanSeconds),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
