package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/repository/memory"
	"github.com/Freeeeeet/clinic_frontdesk/internal/service"
)

var monday = model.NewDate(2024, time.January, 15)

func booked(id, clock string, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{
		ID: id,
		Draft: model.Draft{
			PatientID: "pat-1",
			DoctorID:  "doc-1",
			Date:      monday,
			Time:      clock,
			Duration:  30,
			Status:    status,
			Symptoms:  "Головная боль",
		},
	}
}

func newTestServer(t *testing.T, existing ...model.Appointment) (*echo.Echo, *memory.Appointments) {
	t.Helper()

	doctors := memory.Doctors{
		"doc-1": {
			ID: "doc-1",
			WorkingHours: model.WorkingHours{
				Start:       "09:00",
				End:         "17:00",
				WorkingDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
			},
		},
	}
	store := memory.NewAppointments(existing...)
	payments := memory.Payments{
		{ID: "pay-1", Status: model.PaymentStatusPaid, TransactionID: "TX-1"},
		{ID: "pay-2", Status: model.PaymentStatusPending},
	}

	logger := zap.NewNop()
	h := NewHandler(
		service.NewAppointmentService(doctors, store, logger),
		service.NewReportService(store, payments, logger),
		logger,
	)

	return NewServer(h, logger), store
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHandler_DaySlots(t *testing.T) {
	e, _ := newTestServer(t, booked("a1", "09:30", model.AppointmentStatusScheduled))

	rec := do(e, http.MethodGet, "/api/v1/doctors/doc-1/slots?date=2024-01-15", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var slots []model.TimeSlot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	require.Len(t, slots, 16)
	assert.False(t, slots[1].Available)
	assert.Equal(t, "Время занято", slots[1].Reason)
}

func TestHandler_DaySlots_Errors(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/v1/doctors/doc-1/slots?date=15.01.2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["error"])

	rec = do(e, http.MethodGet, "/api/v1/doctors/doc-404/slots?date=2024-01-15", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Recommendations(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/v1/doctors/doc-1/recommendations?date=2024-01-15&duration=45", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var slots []model.TimeSlot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	assert.Len(t, slots, 6)

	rec = do(e, http.MethodGet, "/api/v1/doctors/doc-1/recommendations?date=2024-01-15&duration=long", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_NextAvailable(t *testing.T) {
	e, _ := newTestServer(t, booked("a1", "10:00", model.AppointmentStatusScheduled))

	rec := do(e, http.MethodGet, "/api/v1/doctors/doc-1/next-available?from=2024-01-15&time=10:00", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-01-16", decode(t, rec)["date"])

	rec = do(e, http.MethodGet, "/api/v1/doctors/doc-1/next-available?from=2024-01-15&time=ten", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/doctors/doc-1/next-available?from=2024-01-15&time=9:00", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/doctors/doc-404/next-available?from=2024-01-15&time=10:00", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Validate(t *testing.T) {
	e, _ := newTestServer(t, booked("a1", "16:30", model.AppointmentStatusScheduled))

	rec := do(e, http.MethodPost, "/api/v1/appointments/validate",
		`{"doctor_id":"doc-1","date":"2024-01-15","time":"16:30","duration":60}`)
	require.Equal(t, http.StatusOK, rec.Code)

	conflicts := decode(t, rec)["conflicts"].([]any)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "outside-hours", conflicts[0].(map[string]any)["kind"])
	assert.Equal(t, "overlap", conflicts[1].(map[string]any)["kind"])

	rec = do(e, http.MethodPost, "/api/v1/appointments/validate",
		`{"doctor_id":"doc-1","date":"2024-01-15","time":"16:30","duration":30,"exclude_id":"a1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["conflicts"])
}

func TestHandler_Book(t *testing.T) {
	e, store := newTestServer(t)
	body := `{"patient_id":"pat-9","doctor_id":"doc-1","date":"2024-01-15","time":"11:00","duration":30}`

	rec := do(e, http.MethodPost, "/api/v1/appointments", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, "scheduled", created["status"])
	assert.Equal(t, "11:00", created["time"])

	rec = do(e, http.MethodPost, "/api/v1/appointments", body)
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decode(t, rec)
	assert.NotEmpty(t, conflict["error"])
	assert.Equal(t, "overlap", conflict["conflicts"].([]any)[0].(map[string]any)["kind"])

	assert.Equal(t, 1, store.Len())
}

func TestHandler_Book_BadRequest(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/v1/appointments", `{"doctor_id":"doc-1","date":"2024-01-15","time":"11:00","duration":30}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/appointments", `{"patient_id":"p","doctor_id":"doc-1","date":"2024-01-15","time":"11:00","duration":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/appointments", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_BookSeries(t *testing.T) {
	e, store := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/v1/appointments/series", `{
		"appointment": {"patient_id":"pat-9","doctor_id":"doc-1","date":"2024-01-15","time":"11:00","duration":30},
		"options": {"interval":"week","count":2,"skip_conflicts":true}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	result := decode(t, rec)
	assert.Len(t, result["booked"], 3)
	assert.Empty(t, result["skipped"])
	assert.Equal(t, 3, store.Len())

	rec = do(e, http.MethodPost, "/api/v1/appointments/series", `{
		"appointment": {"patient_id":"pat-9","doctor_id":"doc-1","date":"2024-01-15","time":"11:00","duration":30},
		"options": {"interval":"year","count":2}
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_DuplicateToNextWeek(t *testing.T) {
	e, store := newTestServer(t,
		booked("a1", "09:00", model.AppointmentStatusScheduled),
		booked("a2", "10:00", model.AppointmentStatusScheduled),
	)

	rec := do(e, http.MethodPost, "/api/v1/appointments/duplicate", `{"appointment_ids":["a1","a2"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode(t, rec)
	assert.Len(t, result["created"], 2)
	assert.Empty(t, result["conflicts"])
	assert.Equal(t, 4, store.Len())

	rec = do(e, http.MethodPost, "/api/v1/appointments/duplicate", `{"appointment_ids":["nope"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DuplicateAppointment_Preview(t *testing.T) {
	e, store := newTestServer(t, booked("a1", "09:00", model.AppointmentStatusScheduled))

	rec := do(e, http.MethodPost, "/api/v1/appointments/a1/duplicate?preview=true", `{"interval":"month","count":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["successful"], 2)
	assert.Equal(t, 1, store.Len())

	rec = do(e, http.MethodPost, "/api/v1/appointments/a1/duplicate", `{"interval":"month","count":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["created"], 2)
	assert.Equal(t, 3, store.Len())
}

func TestHandler_UpdateStatus(t *testing.T) {
	e, _ := newTestServer(t, booked("a1", "09:00", model.AppointmentStatusScheduled))

	rec := do(e, http.MethodPatch, "/api/v1/appointments/a1/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodPatch, "/api/v1/appointments/a1/status", `{"status":"finished"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPatch, "/api/v1/appointments/a9/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_GroupedAppointments(t *testing.T) {
	e, _ := newTestServer(t,
		booked("a1", "09:00", model.AppointmentStatusCompleted),
		booked("a2", "10:00", model.AppointmentStatusScheduled),
		booked("a3", "11:00", model.AppointmentStatusScheduled),
	)

	rec := do(e, http.MethodGet, "/api/v1/appointments/grouped", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.GroupedView[model.Appointment]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, []string{"scheduled", "completed"}, view.Groups.Keys())
	assert.Equal(t, 3, view.Statistics.TotalRecords)

	rec = do(e, http.MethodGet, "/api/v1/appointments/grouped?sortBy=count&sortOrder=asc&q=%D0%B3%D0%BE%D0%BB%D0%BE%D0%B2%D0%BD%D0%B0%D1%8F", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, []string{"scheduled", "completed"}, view.Groups.Keys())

	rec = do(e, http.MethodGet, "/api/v1/appointments/grouped?sortBy=size", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GroupedPayments(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/api/v1/payments/grouped?showEmpty=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view service.GroupedView[model.Payment]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, []string{"pending", "paid", "failed", "refunded"}, view.Groups.Keys())
	assert.Equal(t, 2, view.Statistics.TotalRecords)
}
