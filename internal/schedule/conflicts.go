package schedule

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

const (
	MessageOutsideHours = "Время записи вне рабочих часов врача"
	MessageOverlap      = "Время уже занято другой записью"
)

// Validate возвращает нарушенные ограничения для предлагаемой записи.
// Пустой (не nil) список означает, что нарушений нет.
func Validate(doctor model.Doctor, date time.Time, clock string, duration int, existing []model.Appointment) ([]model.ScheduleConflict, error) {
	workStart, workEnd, err := workingRange(doctor.WorkingHours.Start, doctor.WorkingHours.End)
	if err != nil {
		return nil, err
	}

	at, err := ParseClock(clock)
	if err != nil {
		return nil, err
	}

	if duration <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, duration)
	}

	conflicts := []model.ScheduleConflict{}

	if at < workStart || at+duration > workEnd {
		conflicts = append(conflicts, model.ScheduleConflict{
			Kind:    model.ConflictOutsideHours,
			Message: MessageOutsideHours,
		})
	}

	if IsOccupied(doctor.ID, date, clock, existing) {
		conflicts = append(conflicts, model.ScheduleConflict{
			Kind:    model.ConflictOverlap,
			Message: MessageOverlap,
		})
	}

	return conflicts, nil
}
