package httpapi

import (
	"fmt"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

// appointmentRequest - тело запроса на создание записи. Дата приходит строкой YYYY-MM-DD.
type appointmentRequest struct {
	PatientID    string                  `json:"patient_id"`
	DoctorID     string                  `json:"doctor_id"`
	Date         string                  `json:"date"`
	Time         string                  `json:"time"`
	Duration     int                     `json:"duration"`
	Type         model.AppointmentType   `json:"type"`
	Status       model.AppointmentStatus `json:"status"`
	Notes        string                  `json:"notes"`
	Symptoms     string                  `json:"symptoms"`
	Diagnosis    string                  `json:"diagnosis"`
	Prescription string                  `json:"prescription"`
}

func (r appointmentRequest) toDraft() (model.Draft, error) {
	if r.PatientID == "" || r.DoctorID == "" {
		return model.Draft{}, fmt.Errorf("patient_id and doctor_id are required")
	}

	date, err := model.ParseDate(r.Date)
	if err != nil {
		return model.Draft{}, err
	}

	if r.Status != "" && !r.Status.Valid() {
		return model.Draft{}, fmt.Errorf("invalid status %q", r.Status)
	}

	return model.Draft{
		PatientID:    r.PatientID,
		DoctorID:     r.DoctorID,
		Date:         date,
		Time:         r.Time,
		Duration:     r.Duration,
		Type:         r.Type,
		Status:       r.Status,
		Notes:        r.Notes,
		Symptoms:     r.Symptoms,
		Diagnosis:    r.Diagnosis,
		Prescription: r.Prescription,
	}, nil
}

type validateRequest struct {
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  int    `json:"duration"`
	ExcludeID string `json:"exclude_id"`
}

type seriesRequest struct {
	Appointment appointmentRequest       `json:"appointment"`
	Options     model.DuplicationOptions `json:"options"`
}

type duplicateRequest struct {
	AppointmentIDs []string `json:"appointment_ids"`
}

type statusRequest struct {
	Status model.AppointmentStatus `json:"status"`
}

type conflictsResponse struct {
	Conflicts []model.ScheduleConflict `json:"conflicts"`
}

type nextAvailableResponse struct {
	Date string `json:"date"`
}

type errorResponse struct {
	Error     string                   `json:"error"`
	Conflicts []model.ScheduleConflict `json:"conflicts,omitempty"`
}
