package schedule

import (
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

// ScanHorizonDays - сколько дней просматривает NextAvailable, включая стартовый
const ScanHorizonDays = 30

// NextAvailable ищет первую будничную дату начиная со start (включительно),
// на которую у врача свободно время clock. Выходные пропускаются всегда.
// ok == false означает, что за ScanHorizonDays дней свободной даты нет.
func NextAvailable(doctorID string, start time.Time, clock string, existing []model.Appointment) (date time.Time, ok bool) {
	start = model.ToDate(start)

	for i := 0; i < ScanHorizonDays; i++ {
		candidate := start.AddDate(0, 0, i)

		if isWeekend(candidate) {
			continue
		}

		if !IsOccupied(doctorID, candidate, clock, existing) {
			return candidate, true
		}
	}

	return time.Time{}, false
}
