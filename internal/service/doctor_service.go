package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/schedule"
)

// DoctorService ведёт справочник врачей
type DoctorService struct {
	doctors DoctorRegistry
	logger  *zap.Logger
}

func NewDoctorService(doctors DoctorRegistry, logger *zap.Logger) *DoctorService {
	return &DoctorService{
		doctors: doctors,
		logger:  logger,
	}
}

// Register проверяет карточку врача и добавляет её в справочник
func (s *DoctorService) Register(ctx context.Context, doctor *model.Doctor) error {
	doctor.FirstName = strings.TrimSpace(doctor.FirstName)
	doctor.LastName = strings.TrimSpace(doctor.LastName)

	if doctor.FirstName == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidDoctor)
	}
	if doctor.Experience < 0 || doctor.ConsultationFee < 0 {
		return fmt.Errorf("%w: experience and fee must not be negative", ErrInvalidDoctor)
	}
	if err := schedule.ValidateWorkingHours(doctor.WorkingHours); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDoctor, err)
	}

	if doctor.ID != "" {
		existing, err := s.doctors.GetByID(ctx, doctor.ID)
		if err != nil {
			return fmt.Errorf("get doctor: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("doctor %s: %w", doctor.ID, ErrDoctorExists)
		}
	}

	if err := s.doctors.Create(ctx, doctor); err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}

	s.logger.Info("Doctor registered",
		zap.String("doctor_id", doctor.ID),
		zap.String("name", doctor.FullName()),
		zap.String("hours", doctor.WorkingHours.Start+"-"+doctor.WorkingHours.End),
	)

	return nil
}

// List возвращает всех врачей по фамилии
func (s *DoctorService) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}
