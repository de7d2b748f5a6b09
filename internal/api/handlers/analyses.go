package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"pick-analytics-service/internal/adapters/export"
	"pick-analytics-service/internal/api/dto"
	"pick-analytics-service/internal/domain"
	"pick-analytics-service/internal/platform/obs"
	"pick-analytics-service/internal/services"
)

// DefaultMaxUploadBytes caps the accepted export size.
const DefaultMaxUploadBytes = 64 << 20

const defaultUploadName = "upload.csv"

type AnalysisHandler struct {
	Service        *services.AnalysisService
	Defaults       services.Options
	MaxUploadBytes int64
}

// Create analyzes one uploaded export. The file comes either as the multipart
// field "file" or as the raw request body named by ?filename=.
func (h *AnalysisHandler) Create(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	q := r.URL.Query()
	opts, err := optionsFromQuery(h.Defaults, q)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	name, data, err := readUpload(r, limit)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.Service.Analyze(r.Context(), services.AnalyzeRequest{Name: name, Data: data, Options: opts})
	if err != nil {
		var se *domain.SchemaError
		switch {
		case errors.As(err, &se):
			writeError(w, r, http.StatusUnprocessableEntity, se.Error())
		case errors.Is(err, services.ErrInvalidOptions):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			obs.FromContext(r.Context()).WithError(err).Error("analysis failed")
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	delays := services.Delays(a, opts.IdleThresholdMinutes)
	aggs := services.SortedAggregates(a)

	switch format := strings.ToLower(q.Get("format")); format {
	case "", "json":
		writeJSON(w, r, http.StatusOK, dto.AnalysisResponse{
			Source:           a.Source,
			GroupField:       string(a.GroupField),
			ThresholdMinutes: opts.IdleThresholdMinutes,
			Summary: dto.AnalysisSummary{
				Events:      len(a.Events),
				Groups:      len(aggs),
				Delays:      len(delays),
				DroppedRows: a.DroppedRows,
			},
			Events:     dto.NewEventResponses(a.Events),
			Aggregates: dto.NewAggregateResponses(aggs),
			Delays:     dto.NewEventResponses(delays),
		})

	case "csv":
		var table export.Table
		switch t := q.Get("table"); t {
		case "", "delays":
			table = export.EventsTable("delays", delays)
		case "events":
			table = export.EventsTable("events", a.Events)
		case "aggregates":
			table = export.AggregatesTable("aggregates", aggs)
		default:
			writeError(w, r, http.StatusBadRequest, "table must be one of events, aggregates, delays")
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment(a.Source, table.Name, ".csv"))
		if err := export.WriteCSV(w, table); err != nil {
			obs.FromContext(r.Context()).WithError(err).Warn("write csv response failed")
		}

	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", attachment(a.Source, "report", ".xlsx"))
		err := export.WriteWorkbook(w,
			export.EventsTable("delays", delays),
			export.AggregatesTable("aggregates", aggs),
			export.EventsTable("events", a.Events),
		)
		if err != nil {
			obs.FromContext(r.Context()).WithError(err).Warn("write workbook response failed")
		}

	default:
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
	}
}

// optionsFromQuery applies the per-request overrides to defaults. Range
// checks are left to Options.Validate.
func optionsFromQuery(defaults services.Options, q url.Values) (services.Options, error) {
	opts := defaults

	if v := strings.TrimSpace(q.Get("threshold_minutes")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New("threshold_minutes must be a number")
		}
		opts.IdleThresholdMinutes = f
	}
	if v := strings.TrimSpace(q.Get("row_change_penalty")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New("row_change_penalty must be an integer")
		}
		opts.RowChangePenalty = n
	}
	if v := strings.TrimSpace(q.Get("group_by")); v != "" {
		opts.GroupBy = domain.GroupField(v)
	}

	return opts, nil
}

func readUpload(r *http.Request, limit int64) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		name = strings.TrimSpace(r.URL.Query().Get("filename"))
		data []byte
	)
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(limit); err != nil {
			return "", nil, fmt.Errorf("invalid multipart body: %w", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return "", nil, errors.New(`multipart field "file" is required`)
		}
		defer f.Close()

		if data, err = io.ReadAll(f); err != nil {
			return "", nil, fmt.Errorf("read upload: %w", err)
		}
		if name == "" {
			name = hdr.Filename
		}
	} else {
		var err error
		if data, err = io.ReadAll(r.Body); err != nil {
			return "", nil, fmt.Errorf("read upload: %w", err)
		}
	}

	if len(data) == 0 {
		return "", nil, errors.New("empty file")
	}
	if name == "" {
		name = defaultUploadName
	}
	return filepath.Base(name), data, nil
}

func attachment(source, table, ext string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return fmt.Sprintf("attachment; filename=%q", base+"_"+table+ext)
}
