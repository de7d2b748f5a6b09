package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pick-analytics-service/internal/adapters/cache"
	"pick-analytics-service/internal/adapters/export"
	"pick-analytics-service/internal/adapters/ingest"
	"pick-analytics-service/internal/api/dto"
	"pick-analytics-service/internal/services"

	"github.com/stretchr/testify/require"
)

const pickExport = "User;Transfer Order Number;Delivery;Source Storage Bin;Confirmation date;Confirmation time\n" +
	"OP1;T1;D1;13-01-01-01;2024-01-01;08:00:00\n" +
	"OP1;T1;D1;15-01-01-01;2024-01-01;08:45:00\n" +
	"OP1;T2;D2;15-02-01-01;2024-01-01;08:50:00\n"

func newTestRouter(t *testing.T, maxUpload int64) http.Handler {
	t.Helper()
	svc := services.NewAnalysisService(ingest.NewParser(), cache.NewMemoryResultCache(), 0)
	return NewRouter(svc, services.DefaultOptions(), maxUpload)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestHealthRejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")

	rec := httptest.NewRecorder()
	newTestRouter(t, 0).ServeHTTP(rec, req)

	require.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestCreateAnalysisRawBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyses?filename=shift.csv&threshold_minutes=20", bytes.NewBufferString(pickExport))
	req.Header.Set("Content-Type", "text/csv")

	rec := httptest.NewRecorder()
	newTestRouter(t, 0).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.Equal(t, "shift.csv", res.Source)
	require.Equal(t, "Delivery", res.GroupField)
	require.Equal(t, 3, res.Summary.Events)
	require.Equal(t, 2, res.Summary.Groups)
	require.Len(t, res.Aggregates, 2)
	require.Equal(t, "D1", res.Aggregates[0].GroupID)
	require.Equal(t, float64(2700), res.Aggregates[0].SpanSeconds)

	// 08:00 -> 08:45 spans the 08:15-08:30 break: 30 net minutes.
	require.Len(t, res.Delays, 1)
	require.Equal(t, float64(30), res.Delays[0].NetIdleMinutes)
	require.Equal(t, 50, res.Delays[0].DistanceScore)
}

func TestCreateAnalysisMultipartCSV(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "night.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(pickExport))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyses?format=csv&table=aggregates", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	newTestRouter(t, 0).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Header().Get("Content-Disposition"), "night_aggregates.csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, export.AggregateColumns, rows[0])
}

func TestCreateAnalysisErrors(t *testing.T) {
	cases := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"schema", "/analyses", "User;Delivery\nOP1;D1\n", http.StatusUnprocessableEntity},
		{"bad group", "/analyses?group_by=Material", pickExport, http.StatusBadRequest},
		{"bad threshold", "/analyses?threshold_minutes=soon", pickExport, http.StatusBadRequest},
		{"negative penalty", "/analyses?row_change_penalty=-5", pickExport, http.StatusBadRequest},
		{"bad format", "/analyses?format=pdf", pickExport, http.StatusBadRequest},
		{"bad table", "/analyses?format=csv&table=bins", pickExport, http.StatusBadRequest},
		{"empty", "/analyses", "", http.StatusBadRequest},
	}

	router := newTestRouter(t, 0)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, c.target, bytes.NewBufferString(c.body)))
			require.Equal(t, c.want, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateAnalysisTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, 16).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBufferString(pickExport)))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetrics(t *testing.T) {
	router := newTestRouter(t, 0)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBufferString(pickExport)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "pick_analyses_total")
}
