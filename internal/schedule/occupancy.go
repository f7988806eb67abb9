package schedule

import (
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

// IsOccupied проверяет, занято ли время врача на дату.
// Слот занят только при точном совпадении времени начала с неотменённой
// записью; длительность существующей записи не учитывается.
func IsOccupied(doctorID string, date time.Time, clock string, existing []model.Appointment) bool {
	for _, a := range existing {
		if a.DoctorID == doctorID &&
			model.SameDate(a.Date, date) &&
			a.Time == clock &&
			a.IsActive() {
			return true
		}
	}
	return false
}

func isWeekend(date time.Time) bool {
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}
