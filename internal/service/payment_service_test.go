package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/repository/memory"
)

func TestPaymentService_Record(t *testing.T) {
	payments := &memory.Payments{}
	store := memory.NewAppointments(existingAt("a1", monday, "10:00", model.AppointmentStatusCompleted))
	paidAt := time.Date(2024, time.January, 15, 10, 40, 0, 0, time.UTC)

	svc := NewPaymentService(payments, store, zap.NewNop())
	svc.now = func() time.Time { return paidAt }

	payment := &model.Payment{
		AppointmentID: "a1",
		Amount:        250000,
		Method:        model.PaymentMethodCard,
		Status:        model.PaymentStatusPaid,
		TransactionID: "tx-1",
	}
	require.NoError(t, svc.Record(context.Background(), payment))
	assert.Equal(t, "pat-1", payment.PatientID)
	require.NotNil(t, payment.PaidAt)
	assert.Equal(t, paidAt, *payment.PaidAt)

	pending := &model.Payment{AppointmentID: "a1", Amount: 1000, Method: model.PaymentMethodCash}
	require.NoError(t, svc.Record(context.Background(), pending))
	assert.Equal(t, model.PaymentStatusPending, pending.Status)
	assert.Nil(t, pending.PaidAt)

	// Записанные платежи попадают в отчёт по статусам
	view, err := NewReportService(store, payments, zap.NewNop()).PaymentsByStatus(context.Background(), DefaultPaymentConfig(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Statistics.TotalRecords)
}

func TestPaymentService_RecordInvalid(t *testing.T) {
	store := memory.NewAppointments(existingAt("a1", monday, "10:00", model.AppointmentStatusCompleted))
	svc := NewPaymentService(&memory.Payments{}, store, zap.NewNop())

	tests := []struct {
		name    string
		payment model.Payment
		wantErr error
	}{
		{"zero amount", model.Payment{AppointmentID: "a1", Method: model.PaymentMethodCash}, ErrInvalidPayment},
		{"unknown method", model.Payment{AppointmentID: "a1", Amount: 100, Method: "crypto"}, ErrInvalidPayment},
		{"unknown status", model.Payment{AppointmentID: "a1", Amount: 100, Method: model.PaymentMethodCash, Status: "lost"}, ErrInvalidPayment},
		{"missing appointment", model.Payment{AppointmentID: "a9", Amount: 100, Method: model.PaymentMethodCash}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := tt.payment
			assert.ErrorIs(t, svc.Record(context.Background(), &payment), tt.wantErr)
		})
	}
}
