package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const appointmentColumns = `id, patient_id, doctor_id, date, time, duration, type, status,
	notes, symptoms, diagnosis, prescription, series_id, created_at`

// AppointmentRepository управляет записями на приём в базе данных
type AppointmentRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewAppointmentRepository(pool *pgxpool.Pool, logger *zap.Logger) *AppointmentRepository {
	return &AppointmentRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// CreateIfFree атомарно проверяет занятость времени врача и создаёт запись.
// Проверка и вставка выполняются в одной транзакции под advisory lock
// по ключу (врач, дата, время), поэтому два параллельных вызова не могут
// занять одно время. Возвращает ErrSlotTaken, если время занято.
func (r *AppointmentRepository) CreateIfFree(ctx context.Context, draft model.Draft) (*model.Appointment, error) {
	appointment := &model.Appointment{
		ID:    uuid.NewString(),
		Draft: draft,
	}

	err := r.InTx(ctx, func(tx pgx.Tx) error {
		lockKey := fmt.Sprintf("%s|%s|%s", draft.DoctorID, model.FormatDate(draft.Date), draft.Time)
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
			return fmt.Errorf("lock slot: %w", err)
		}

		var taken bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM appointments
				WHERE doctor_id = $1 AND date = $2 AND time = $3 AND status <> 'cancelled'
			)
		`, draft.DoctorID, draft.Date, draft.Time).Scan(&taken)
		if err != nil {
			return fmt.Errorf("check slot: %w", err)
		}

		if taken {
			return ErrSlotTaken
		}

		query := `
			INSERT INTO appointments (id, patient_id, doctor_id, date, time, duration, type, status,
				notes, symptoms, diagnosis, prescription, series_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING created_at
		`

		return tx.QueryRow(
			ctx, query,
			appointment.ID,
			draft.PatientID,
			draft.DoctorID,
			draft.Date,
			draft.Time,
			draft.Duration,
			draft.Type,
			draft.Status,
			draft.Notes,
			draft.Symptoms,
			draft.Diagnosis,
			draft.Prescription,
			nullableUUID(draft.SeriesID),
		).Scan(&appointment.CreatedAt)
	})

	if errors.Is(err, ErrSlotTaken) || base.IsUniqueViolation(err) {
		r.logger.Debug("Slot already taken",
			zap.String("doctor_id", draft.DoctorID),
			zap.Time("date", draft.Date),
			zap.String("time", draft.Time),
		)
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	return appointment, nil
}

// GetByID получает запись по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	appointment, err := scanAppointment(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	return appointment, nil
}

// GetByIDs получает записи по списку ID, отсутствующие пропускаются
func (r *AppointmentRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = ANY($1) ORDER BY date, time`

	return r.list(ctx, "get appointments by ids", query, ids)
}

// ListByDoctor получает записи врача за период [from, to] включительно
func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE doctor_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, time
	`

	return r.list(ctx, "list appointments by doctor", query, doctorID, from, to)
}

// ListByDates получает записи всех врачей на указанные даты
func (r *AppointmentRepository) ListByDates(ctx context.Context, dates []time.Time) ([]model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE date = ANY($1) ORDER BY date, time`

	return r.list(ctx, "list appointments by dates", query, dates)
}

// List получает все записи
func (r *AppointmentRepository) List(ctx context.Context) ([]model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY date DESC, time DESC`

	return r.list(ctx, "list appointments", query)
}

// UpdateStatus обновляет статус записи
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus) error {
	affected, err := r.ExecAffected(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, status, id)
	if base.IsUniqueViolation(err) {
		// восстановление отменённой записи на уже занятое время
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *AppointmentRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]model.Appointment, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var appointments []model.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return appointments, nil
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var (
		a        model.Appointment
		seriesID *uuid.UUID
	)

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.Date,
		&a.Time,
		&a.Duration,
		&a.Type,
		&a.Status,
		&a.Notes,
		&a.Symptoms,
		&a.Diagnosis,
		&a.Prescription,
		&seriesID,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if seriesID != nil {
		a.SeriesID = *seriesID
	}

	return &a, nil
}

func nullableUUID(id uuid.UUID) interface{} {
	if id == uuid.Nil {
		return nil
	}
	return id
}
