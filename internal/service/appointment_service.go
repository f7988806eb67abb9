package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/repository"
	"github.com/Freeeeeet/clinic_frontdesk/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentService struct {
	doctors      DoctorStore
	appointments AppointmentStore
	logger       *zap.Logger
}

func NewAppointmentService(doctors DoctorStore, appointments AppointmentStore, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		doctors:      doctors,
		appointments: appointments,
		logger:       logger,
	}
}

// ValidationRequest - предлагаемая запись для проверки
type ValidationRequest struct {
	DoctorID  string
	Date      time.Time
	Time      string
	Duration  int
	ExcludeID string // запись, которую редактируют; не конфликтует сама с собой
}

// SkippedOccurrence - повтор серии, который не удалось записать
type SkippedOccurrence struct {
	Draft  model.Draft `json:"draft"`
	Reason string      `json:"reason"`
}

type SeriesResult struct {
	SeriesID uuid.UUID           `json:"series_id"`
	Booked   []model.Appointment `json:"booked"`
	Skipped  []SkippedOccurrence `json:"skipped"`
}

type DuplicationResult struct {
	Created   []model.Appointment `json:"created"`
	Conflicts []schedule.Conflict `json:"conflicts"`
}

// Doctor возвращает врача по ID
func (s *AppointmentService) Doctor(ctx context.Context, doctorID string) (*model.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	if doctor == nil {
		return nil, fmt.Errorf("doctor %s: %w", doctorID, ErrNotFound)
	}
	return doctor, nil
}

// Appointment возвращает запись по ID
func (s *AppointmentService) Appointment(ctx context.Context, id string) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %s: %w", id, ErrNotFound)
	}
	return appointment, nil
}

// DaySlots возвращает слоты врача на дату
func (s *AppointmentService) DaySlots(ctx context.Context, doctorID string, date time.Time) ([]model.TimeSlot, error) {
	doctor, existing, err := s.doctorDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	return schedule.GenerateSlots(*doctor, date, existing)
}

// RecommendSlots предлагает лучшие свободные слоты на дату
func (s *AppointmentService) RecommendSlots(ctx context.Context, doctorID string, date time.Time, duration int) ([]model.TimeSlot, error) {
	doctor, existing, err := s.doctorDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	return schedule.Recommend(*doctor, date, duration, existing)
}

// ValidateAppointment проверяет предлагаемую запись без сохранения
func (s *AppointmentService) ValidateAppointment(ctx context.Context, req ValidationRequest) ([]model.ScheduleConflict, error) {
	date := model.ToDate(req.Date)

	doctor, existing, err := s.doctorDay(ctx, req.DoctorID, date)
	if err != nil {
		return nil, err
	}

	if req.ExcludeID != "" {
		existing = excludeAppointment(existing, req.ExcludeID)
	}

	return schedule.Validate(*doctor, date, req.Time, req.Duration, existing)
}

// Book создаёт запись, если она не нарушает рабочие часы и время свободно
func (s *AppointmentService) Book(ctx context.Context, draft model.Draft) (*model.Appointment, error) {
	draft = normalizeDraft(draft)

	conflicts, err := s.ValidateAppointment(ctx, ValidationRequest{
		DoctorID: draft.DoctorID,
		Date:     draft.Date,
		Time:     draft.Time,
		Duration: draft.Duration,
	})
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	return s.create(ctx, draft)
}

// create сохраняет запись через атомарную проверку хранилища.
// Проигранная гонка за время превращается в конфликт overlap.
func (s *AppointmentService) create(ctx context.Context, draft model.Draft) (*model.Appointment, error) {
	appointment, err := s.appointments.CreateIfFree(ctx, draft)
	if errors.Is(err, repository.ErrSlotTaken) {
		return nil, &ConflictError{Conflicts: []model.ScheduleConflict{{
			Kind:    model.ConflictOverlap,
			Message: schedule.MessageOverlap,
		}}}
	}
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logger.Info("Appointment booked",
		zap.String("appointment_id", appointment.ID),
		zap.String("doctor_id", draft.DoctorID),
		zap.String("patient_id", draft.PatientID),
		zap.String("date", model.FormatDate(draft.Date)),
		zap.String("time", draft.Time),
	)

	return appointment, nil
}

// BookSeries создаёт исходную запись и её повторения одной серией.
// С SkipConflicts занятые повторы пропускаются, без него любой конфликт
// отменяет всю серию до сохранения.
func (s *AppointmentService) BookSeries(ctx context.Context, draft model.Draft, opts model.DuplicationOptions) (*SeriesResult, error) {
	draft = normalizeDraft(draft)
	draft.SeriesID = uuid.New()

	series, err := schedule.BuildRecurringSeries(draft, opts)
	if err != nil {
		return nil, err
	}

	result := &SeriesResult{
		SeriesID: draft.SeriesID,
		Booked:   []model.Appointment{},
		Skipped:  []SkippedOccurrence{},
	}

	if !opts.SkipConflicts {
		for _, occurrence := range series {
			conflicts, err := s.ValidateAppointment(ctx, ValidationRequest{
				DoctorID: occurrence.DoctorID,
				Date:     occurrence.Date,
				Time:     occurrence.Time,
				Duration: occurrence.Duration,
			})
			if err != nil {
				return nil, err
			}
			if len(conflicts) > 0 {
				return nil, fmt.Errorf("occurrence %s: %w", model.FormatDate(occurrence.Date), &ConflictError{Conflicts: conflicts})
			}
		}
	}

	for _, occurrence := range series {
		appointment, err := s.Book(ctx, occurrence)
		if conflict, ok := AsConflict(err); ok {
			result.Skipped = append(result.Skipped, SkippedOccurrence{
				Draft:  occurrence,
				Reason: conflictReason(occurrence, conflict),
			})
			continue
		}
		if err != nil {
			return nil, err
		}
		result.Booked = append(result.Booked, *appointment)
	}

	s.logger.Info("Recurring series booked",
		zap.String("series_id", result.SeriesID.String()),
		zap.String("interval", string(opts.Interval)),
		zap.Int("booked", len(result.Booked)),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

// DuplicateToNextWeek копирует выбранные записи на ту же дату и время через неделю
func (s *AppointmentService) DuplicateToNextWeek(ctx context.Context, ids []string) (*DuplicationResult, error) {
	sources, err := s.sources(ctx, ids)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(sources))
	for _, src := range sources {
		dates = append(dates, src.Date.AddDate(0, 0, 7))
	}

	existing, err := s.appointments.ListByDates(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	result := &DuplicationResult{
		Created:   []model.Appointment{},
		Conflicts: []schedule.Conflict{},
	}

	for _, src := range sources {
		partition := schedule.ExpandAndPartition([]model.Appointment{src}, existing)
		result.Conflicts = append(result.Conflicts, partition.Conflicts...)

		created, lost, err := s.persistDrafts(ctx, src, partition.Successful)
		if err != nil {
			return nil, err
		}
		result.Created = append(result.Created, created...)
		result.Conflicts = append(result.Conflicts, lost...)
		existing = append(existing, created...)
	}

	s.logger.Info("Appointments duplicated to next week",
		zap.Int("selected", len(ids)),
		zap.Int("created", len(result.Created)),
		zap.Int("conflicts", len(result.Conflicts)),
	)

	return result, nil
}

// PreviewDuplication показывает, какие копии записи будут созданы, без сохранения
func (s *AppointmentService) PreviewDuplication(ctx context.Context, id string, opts model.DuplicationOptions) (*schedule.Partition, error) {
	source, existing, err := s.duplicationContext(ctx, id, opts)
	if err != nil {
		return nil, err
	}

	partition, err := schedule.PreviewDuplicates(*source, opts, existing)
	if err != nil {
		return nil, err
	}

	return &partition, nil
}

// DuplicateAppointment сохраняет копии одной записи по opts
func (s *AppointmentService) DuplicateAppointment(ctx context.Context, id string, opts model.DuplicationOptions) (*DuplicationResult, error) {
	source, existing, err := s.duplicationContext(ctx, id, opts)
	if err != nil {
		return nil, err
	}

	partition, err := schedule.PreviewDuplicates(*source, opts, existing)
	if err != nil {
		return nil, err
	}

	created, lost, err := s.persistDrafts(ctx, *source, partition.Successful)
	if err != nil {
		return nil, err
	}

	return &DuplicationResult{
		Created:   created,
		Conflicts: append(partition.Conflicts, lost...),
	}, nil
}

// NextAvailableDate ищет ближайшую будничную дату со свободным временем clock
func (s *AppointmentService) NextAvailableDate(ctx context.Context, doctorID string, from time.Time, clock string) (time.Time, bool, error) {
	if _, err := schedule.ParseClock(clock); err != nil {
		return time.Time{}, false, err
	}

	if _, err := s.Doctor(ctx, doctorID); err != nil {
		return time.Time{}, false, err
	}

	from = model.ToDate(from)
	to := from.AddDate(0, 0, schedule.ScanHorizonDays-1)

	existing, err := s.appointments.ListByDoctor(ctx, doctorID, from, to)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("list appointments: %w", err)
	}

	date, ok := schedule.NextAvailable(doctorID, from, clock, existing)
	return date, ok, nil
}

// UpdateStatus меняет статус записи (завершена, отменена, неявка)
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	err := s.appointments.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repository.ErrSlotTaken) {
		return &ConflictError{Conflicts: []model.ScheduleConflict{{
			Kind:    model.ConflictOverlap,
			Message: schedule.MessageOverlap,
		}}}
	}
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	s.logger.Info("Appointment status updated",
		zap.String("appointment_id", id),
		zap.String("status", string(status)),
	)

	return nil
}

// persistDrafts сохраняет черновики; проигравшие гонку возвращаются конфликтами
func (s *AppointmentService) persistDrafts(ctx context.Context, source model.Appointment, drafts []model.Draft) ([]model.Appointment, []schedule.Conflict, error) {
	created := []model.Appointment{}
	var lost []schedule.Conflict

	for _, draft := range drafts {
		appointment, err := s.create(ctx, draft)
		if _, ok := AsConflict(err); ok {
			lost = append(lost, schedule.Conflict{Source: source, Reason: schedule.ConflictReason(draft)})
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		created = append(created, *appointment)
	}

	return created, lost, nil
}

func (s *AppointmentService) duplicationContext(ctx context.Context, id string, opts model.DuplicationOptions) (*model.Appointment, []model.Appointment, error) {
	source, err := s.Appointment(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	drafts, err := schedule.Expand(source.AsDraft(), opts)
	if err != nil {
		return nil, nil, err
	}

	dates := make([]time.Time, 0, len(drafts))
	for _, d := range drafts {
		dates = append(dates, d.Date)
	}

	existing, err := s.appointments.ListByDates(ctx, dates)
	if err != nil {
		return nil, nil, fmt.Errorf("list appointments: %w", err)
	}

	return source, existing, nil
}

func (s *AppointmentService) sources(ctx context.Context, ids []string) ([]model.Appointment, error) {
	ids = slices.Compact(slices.Sorted(slices.Values(ids)))
	if len(ids) == 0 {
		return nil, nil
	}

	sources, err := s.appointments.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get appointments: %w", err)
	}

	if len(sources) != len(ids) {
		return nil, fmt.Errorf("%w: requested %d appointments, found %d", ErrNotFound, len(ids), len(sources))
	}

	return sources, nil
}

// doctorDay загружает врача и его записи на дату
func (s *AppointmentService) doctorDay(ctx context.Context, doctorID string, date time.Time) (*model.Doctor, []model.Appointment, error) {
	doctor, err := s.Doctor(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.appointments.ListByDoctor(ctx, doctorID, date, date)
	if err != nil {
		return nil, nil, fmt.Errorf("list appointments: %w", err)
	}

	return doctor, existing, nil
}

func normalizeDraft(draft model.Draft) model.Draft {
	draft.Date = model.ToDate(draft.Date)
	if draft.Status == "" {
		draft.Status = model.AppointmentStatusScheduled
	}
	if draft.Type == "" {
		draft.Type = model.AppointmentTypeConsultation
	}
	return draft
}

func excludeAppointment(appointments []model.Appointment, id string) []model.Appointment {
	kept := make([]model.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return kept
}

func conflictReason(d model.Draft, conflict *ConflictError) string {
	messages := make([]string, 0, len(conflict.Conflicts))
	for _, c := range conflict.Conflicts {
		messages = append(messages, c.Message)
	}
	return fmt.Sprintf("%s %s: %s", model.FormatDate(d.Date), d.Time, strings.Join(messages, "; "))
}
