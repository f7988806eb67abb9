package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled" // Запланировано
	AppointmentStatusCompleted AppointmentStatus = "completed" // Завершено
	AppointmentStatusCancelled AppointmentStatus = "cancelled" // Отменено
	AppointmentStatusNoShow    AppointmentStatus = "no-show"   // Неявка
)

// Valid проверяет, что статус входит в допустимый набор
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeFollowUp     AppointmentType = "follow-up"
	AppointmentTypeProcedure    AppointmentType = "procedure"
	AppointmentTypeEmergency    AppointmentType = "emergency"
)

// Draft - запись без идентификатора и времени создания,
// ожидающая сохранения
type Draft struct {
	PatientID    string            `json:"patient_id"`
	DoctorID     string            `json:"doctor_id"`
	Date         time.Time         `json:"date"`     // календарная дата, полночь UTC
	Time         string            `json:"time"`     // "HH:MM"
	Duration     int               `json:"duration"` // в минутах
	Type         AppointmentType   `json:"type"`
	Status       AppointmentStatus `json:"status"`
	Notes        string            `json:"notes"`
	Symptoms     string            `json:"symptoms"`
	Diagnosis    string            `json:"diagnosis,omitempty"`
	Prescription string            `json:"prescription,omitempty"`
	SeriesID     uuid.UUID         `json:"series_id"` // uuid.Nil для одиночной записи
}

type Appointment struct {
	ID string `json:"id"`
	Draft
	CreatedAt time.Time `json:"created_at"`
}

// AsDraft возвращает копию записи без идентификатора
func (a Appointment) AsDraft() Draft {
	return a.Draft
}

// IsActive - отменённые записи не занимают время
func (a Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCancelled
}
