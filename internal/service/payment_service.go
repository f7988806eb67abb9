package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

// PaymentService регистрирует платежи по записям
type PaymentService struct {
	payments     PaymentLedger
	appointments AppointmentStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewPaymentService(payments PaymentLedger, appointments AppointmentStore, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		payments:     payments,
		appointments: appointments,
		logger:       logger,
		now:          time.Now,
	}
}

// Record сохраняет платёж по существующей записи.
// Пациент берётся из записи; оплаченный платёж без PaidAt получает текущее время.
func (s *PaymentService) Record(ctx context.Context, payment *model.Payment) error {
	if payment.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidPayment)
	}
	if payment.Status == "" {
		payment.Status = model.PaymentStatusPending
	}
	if !payment.Status.Valid() {
		return fmt.Errorf("%w: status %q", ErrInvalidPayment, payment.Status)
	}
	if !payment.Method.Valid() {
		return fmt.Errorf("%w: method %q", ErrInvalidPayment, payment.Method)
	}

	appointment, err := s.appointments.GetByID(ctx, payment.AppointmentID)
	if err != nil {
		return fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil {
		return fmt.Errorf("appointment %s: %w", payment.AppointmentID, ErrNotFound)
	}
	payment.PatientID = appointment.PatientID

	if payment.Status == model.PaymentStatusPaid && payment.PaidAt == nil {
		paidAt := s.now()
		payment.PaidAt = &paidAt
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("appointment_id", payment.AppointmentID),
		zap.Int("amount", payment.Amount),
		zap.String("status", string(payment.Status)),
	)

	return nil
}
