package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/clinic_frontdesk/internal/grouping"
	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"go.uber.org/zap"
)

// GroupedView - сгруппированные записи и статистика по ним
type GroupedView[T any] struct {
	Groups     grouping.Grouped[T] `json:"groups"`
	Statistics grouping.Statistics `json:"statistics"`
}

// ReportService группирует записи и платежи по статусу для отображения
type ReportService struct {
	appointments AppointmentStore
	payments     PaymentStore
	logger       *zap.Logger
}

func NewReportService(appointments AppointmentStore, payments PaymentStore, logger *zap.Logger) *ReportService {
	return &ReportService{
		appointments: appointments,
		payments:     payments,
		logger:       logger,
	}
}

// DefaultAppointmentConfig порядок групп записей по статусам
func DefaultAppointmentConfig() grouping.Config {
	return grouping.Config{
		SortBy:      grouping.SortCustom,
		CustomOrder: grouping.AppointmentStatusOrder,
	}
}

// DefaultPaymentConfig порядок групп платежей по статусам
func DefaultPaymentConfig() grouping.Config {
	return grouping.Config{
		SortBy:      grouping.SortCustom,
		CustomOrder: grouping.PaymentStatusOrder,
	}
}

var (
	appointmentStatusKey = grouping.ByField(func(a model.Appointment) model.AppointmentStatus { return a.Status })
	paymentStatusKey     = grouping.ByField(func(p model.Payment) model.PaymentStatus { return p.Status })

	appointmentSearchFields = []func(model.Appointment) string{
		func(a model.Appointment) string { return a.Symptoms },
		func(a model.Appointment) string { return a.Notes },
		func(a model.Appointment) string { return a.Diagnosis },
	}
	paymentSearchFields = []func(model.Payment) string{
		func(p model.Payment) string { return p.TransactionID },
	}
)

// AppointmentsByStatus группирует записи по статусу и фильтрует по term
// (симптомы, заметки, диагноз)
func (s *ReportService) AppointmentsByStatus(ctx context.Context, cfg grouping.Config, term string) (*GroupedView[model.Appointment], error) {
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	grouped := grouping.By(appointments, appointmentStatusKey, cfg).Filter(term, appointmentSearchFields...)

	s.logger.Debug("Appointments grouped",
		zap.Int("records", len(appointments)),
		zap.Int("groups", len(grouped)),
		zap.String("term", term),
	)

	return &GroupedView[model.Appointment]{
		Groups:     grouped,
		Statistics: grouped.Statistics(),
	}, nil
}

// PaymentsByStatus группирует платежи по статусу и фильтрует по номеру транзакции
func (s *ReportService) PaymentsByStatus(ctx context.Context, cfg grouping.Config, term string) (*GroupedView[model.Payment], error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	grouped := grouping.By(payments, paymentStatusKey, cfg).Filter(term, paymentSearchFields...)

	return &GroupedView[model.Payment]{
		Groups:     grouped,
		Statistics: grouped.Statistics(),
	}, nil
}
