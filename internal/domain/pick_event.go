package domain

import "time"

// Represents one confirmed pick taken from a WMS export row.
// Optional fields use the empty string as the absent value.
// A zero ConfirmedAt marks a row whose date/time cells did not parse;
// such events are dropped before sequencing.
type PickEvent struct {
	SourceRow           int       `json:"source_row"`
	Actor               string    `json:"actor"`
	TransferOrder       string    `json:"transfer_order"`
	Delivery            string    `json:"delivery,omitempty"`
	SourceBin           string    `json:"source_bin"`
	Material            string    `json:"material"`
	MaterialDescription string    `json:"material_description,omitempty"`
	ConfirmedAt         time.Time `json:"confirmed_at"`
	CertificateNumber   string    `json:"certificate_number,omitempty"`
	UnloadingPoint      string    `json:"unloading_point,omitempty"`
}

// HasCertificate reports whether the certificate-number cell carried a value.
func (e PickEvent) HasCertificate() bool {
	return !isBlank(e.CertificateNumber)
}

// Dataset is one ingested export file.
type Dataset struct {
	Source string
	Events []PickEvent
	// HasDelivery is true when the export carried a delivery column at all.
	HasDelivery bool
}

// GroupField names the identifier used to build completion aggregates.
type GroupField string

const (
	GroupByDelivery      GroupField = "Delivery"
	GroupByTransferOrder GroupField = "TransferOrder"
)

// GroupID returns the event's identifier for the given grouping.
func (e PickEvent) GroupID(field GroupField) string {
	if field == GroupByDelivery {
		return e.Delivery
	}
	return e.TransferOrder
}
