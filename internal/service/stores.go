package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

// DoctorStore источник врачей. GetByID возвращает nil, nil если врач не найден.
type DoctorStore interface {
	GetByID(ctx context.Context, id string) (*model.Doctor, error)
}

// AppointmentStore хранилище записей на приём.
// CreateIfFree обязан атомарно проверять занятость (врач, дата, время)
// и возвращать repository.ErrSlotTaken, если время занято.
type AppointmentStore interface {
	CreateIfFree(ctx context.Context, draft model.Draft) (*model.Appointment, error)
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error)
	ListByDates(ctx context.Context, dates []time.Time) ([]model.Appointment, error)
	List(ctx context.Context) ([]model.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus) error
}

// DoctorRegistry справочник врачей с добавлением
type DoctorRegistry interface {
	DoctorStore
	Create(ctx context.Context, doctor *model.Doctor) error
	List(ctx context.Context) ([]*model.Doctor, error)
}

type PaymentStore interface {
	List(ctx context.Context) ([]model.Payment, error)
}

// PaymentLedger хранилище платежей с добавлением
type PaymentLedger interface {
	PaymentStore
	Create(ctx context.Context, payment *model.Payment) error
}
