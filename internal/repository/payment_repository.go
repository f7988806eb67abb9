package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	*base.Repository
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт платёж
func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	query := `
		INSERT INTO payments (id, appointment_id, patient_id, amount, method, status, transaction_id, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		payment.ID,
		payment.AppointmentID,
		payment.PatientID,
		payment.Amount,
		payment.Method,
		payment.Status,
		payment.TransactionID,
		payment.PaidAt,
	).Scan(&payment.CreatedAt)

	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

// List получает все платежи, новые первыми
func (r *PaymentRepository) List(ctx context.Context) ([]model.Payment, error) {
	query := `
		SELECT id, appointment_id, patient_id, amount, method, status, transaction_id, created_at, paid_at
		FROM payments
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		err := rows.Scan(
			&p.ID,
			&p.AppointmentID,
			&p.PatientID,
			&p.Amount,
			&p.Method,
			&p.Status,
			&p.TransactionID,
			&p.CreatedAt,
			&p.PaidAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
