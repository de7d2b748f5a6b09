package ingest

import (
	"strconv"
	"strings"

	"pick-analytics-service/internal/domain"
)

// Column names of the WMS pick export. Matching is case-sensitive.
const (
	ColUser                = "User"
	ColTransferOrder       = "Transfer Order Number"
	ColDelivery            = "Delivery"
	ColSourceBin           = "Source Storage Bin"
	ColMaterial            = "Material"
	ColMaterialDescription = "Material Description"
	ColConfirmationDate    = "Confirmation date"
	ColConfirmationTime    = "Confirmation time"
	ColCertificate         = "Certificate Number"
	ColUnloadingPoint      = "Unloading Point"
)

// itemSuffix marks the second occurrence of a header. Exports carry the
// confirmation date/time twice (order header and item) and the item pair is
// the one that belongs to the pick.
const itemSuffix = ".1"

// dedupeHeader trims header names and renames repeats to "name.1", "name.2", ...
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]struct{}, len(header))
	for _, h := range header {
		taken[strings.TrimSpace(h)] = struct{}{}
	}

	for i, h := range header {
		name := strings.TrimSpace(h)
		n, dup := seen[name]
		if !dup {
			seen[name] = 1
			out[i] = name
			continue
		}

		for {
			candidate := name + "." + strconv.Itoa(n)
			n++
			if _, clash := taken[candidate]; !clash {
				out[i] = candidate
				taken[candidate] = struct{}{}
				break
			}
		}
		seen[name] = n
	}

	return out
}

// columnMap resolves the export's column positions. Absent optional columns
// are -1.
type columnMap struct {
	user                int
	transferOrder       int
	delivery            int
	sourceBin           int
	material            int
	materialDescription int
	date                int
	time                int
	certificate         int
	unloadingPoint      int
}

func resolveColumns(header []string) (columnMap, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	lookup := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}
	// Prefer the item-level ".1" column, fall back to the plain one.
	lookupItem := func(name string) int {
		if i := lookup(name + itemSuffix); i >= 0 {
			return i
		}
		return lookup(name)
	}

	cm := columnMap{
		user:                lookup(ColUser),
		transferOrder:       lookup(ColTransferOrder),
		delivery:            lookup(ColDelivery),
		sourceBin:           lookup(ColSourceBin),
		material:            lookup(ColMaterial),
		materialDescription: lookup(ColMaterialDescription),
		date:                lookupItem(ColConfirmationDate),
		time:                lookupItem(ColConfirmationTime),
		certificate:         lookup(ColCertificate),
		unloadingPoint:      lookup(ColUnloadingPoint),
	}

	var missing []string
	if cm.date < 0 {
		missing = append(missing, ColConfirmationDate)
	}
	if cm.time < 0 {
		missing = append(missing, ColConfirmationTime)
	}
	if len(missing) > 0 {
		return columnMap{}, &domain.SchemaError{Missing: missing}
	}

	return cm, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// toEvent builds a PickEvent from one data record. rowNum is 1-based over
// data rows.
func (cm columnMap) toEvent(record []string, rowNum int) domain.PickEvent {
	at, _ := parseConfirmation(cell(record, cm.date), cell(record, cm.time))

	return domain.PickEvent{
		SourceRow:           rowNum,
		Actor:               cell(record, cm.user),
		TransferOrder:       cell(record, cm.transferOrder),
		Delivery:            cell(record, cm.delivery),
		SourceBin:           cell(record, cm.sourceBin),
		Material:            cell(record, cm.material),
		MaterialDescription: cell(record, cm.materialDescription),
		ConfirmedAt:         at,
		CertificateNumber:   cell(record, cm.certificate),
		UnloadingPoint:      cell(record, cm.unloadingPoint),
	}
}

// buildDataset turns a header plus records into a Dataset. Fully blank
// records are skipped.
func buildDataset(source string, rows [][]string) (*domain.Dataset, error) {
	if len(rows) == 0 {
		return nil, &domain.SchemaError{Missing: []string{ColConfirmationDate, ColConfirmationTime}}
	}

	header := dedupeHeader(rows[0])
	cm, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	ds := &domain.Dataset{
		Source:      source,
		HasDelivery: cm.delivery >= 0,
		Events:      make([]domain.PickEvent, 0, len(rows)-1),
	}
	for i, record := range rows[1:] {
		if isBlankRecord(record) {
			continue
		}
		ds.Events = append(ds.Events, cm.toEvent(record, i+1))
	}

	return ds, nil
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
