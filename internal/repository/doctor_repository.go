package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const doctorColumns = `id, first_name, last_name, specialization, phone, email, license_number,
	experience, consultation_fee, work_start, work_end, working_days, created_at`

type DoctorRepository struct {
	*base.Repository
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт врача, ID генерируется если не задан
func (r *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	if doctor.ID == "" {
		doctor.ID = uuid.NewString()
	}

	query := `
		INSERT INTO doctors (id, first_name, last_name, specialization, phone, email, license_number,
			experience, consultation_fee, work_start, work_end, working_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		doctor.ID,
		doctor.FirstName,
		doctor.LastName,
		doctor.Specialization,
		doctor.Phone,
		doctor.Email,
		doctor.LicenseNumber,
		doctor.Experience,
		doctor.ConsultationFee,
		doctor.WorkingHours.Start,
		doctor.WorkingHours.End,
		weekdaysToInts(doctor.WorkingHours.WorkingDays),
	).Scan(&doctor.CreatedAt)

	if err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}

	return nil
}

// GetByID получает врача по ID
func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	doctor, err := scanDoctor(r.QueryRow(ctx, query, id))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor by id: %w", err)
	}

	return doctor, nil
}

// List возвращает всех врачей
func (r *DoctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY last_name, first_name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	var doctors []*model.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, doctor)
	}

	return doctors, rows.Err()
}

func scanDoctor(row pgx.Row) (*model.Doctor, error) {
	var (
		doctor model.Doctor
		days   []int16
	)

	err := row.Scan(
		&doctor.ID,
		&doctor.FirstName,
		&doctor.LastName,
		&doctor.Specialization,
		&doctor.Phone,
		&doctor.Email,
		&doctor.LicenseNumber,
		&doctor.Experience,
		&doctor.ConsultationFee,
		&doctor.WorkingHours.Start,
		&doctor.WorkingHours.End,
		&days,
		&doctor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	doctor.WorkingHours.WorkingDays = make([]time.Weekday, 0, len(days))
	for _, d := range days {
		doctor.WorkingHours.WorkingDays = append(doctor.WorkingHours.WorkingDays, time.Weekday(d))
	}

	return &doctor, nil
}

func weekdaysToInts(days []time.Weekday) []int16 {
	out := make([]int16, 0, len(days))
	for _, d := range days {
		out = append(out, int16(d))
	}
	return out
}
