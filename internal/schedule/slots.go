package schedule

import (
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

// ReasonSlotTaken причина недоступности занятого слота
const ReasonSlotTaken = "Время занято"

// GenerateSlots строит все слоты врача на дату с шагом SlotStep.
// В нерабочий день возвращается пустой список.
func GenerateSlots(doctor model.Doctor, date time.Time, existing []model.Appointment) ([]model.TimeSlot, error) {
	start, end, err := workingRange(doctor.WorkingHours.Start, doctor.WorkingHours.End)
	if err != nil {
		return nil, err
	}

	slots := []model.TimeSlot{}
	if !doctor.WorkingHours.Works(date.Weekday()) {
		return slots, nil
	}

	for minutes := start; minutes < end; minutes += SlotStep {
		clock := FormatClock(minutes)
		slot := model.TimeSlot{Time: clock, Available: true}

		if IsOccupied(doctor.ID, date, clock, existing) {
			slot.Available = false
			slot.Reason = ReasonSlotTaken
		}

		slots = append(slots, slot)
	}

	return slots, nil
}
