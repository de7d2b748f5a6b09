package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"pick-analytics-service/internal/domain"
)

// WriteCSV writes the table header and rows as comma-separated text.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write %s csv header: %w", t.Name, err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write %s csv rows: %w", t.Name, err)
	}
	return nil
}

func WriteEvents(w io.Writer, events []domain.SequencedEvent) error {
	return WriteCSV(w, EventsTable("events", events))
}

func WriteDelays(w io.Writer, delays []domain.SequencedEvent) error {
	return WriteCSV(w, EventsTable("delays", delays))
}

func WriteAggregates(w io.Writer, aggs []domain.GroupAggregate) error {
	return WriteCSV(w, AggregatesTable("aggregates", aggs))
}
