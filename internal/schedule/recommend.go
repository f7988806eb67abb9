package schedule

import (
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

const recommendPerHalf = 3

// Recommend предлагает до трёх свободных слотов утром и до трёх после обеда.
// Половины не добирают друг из друга, поэтому результат может быть короче шести.
// duration на выбор слотов не влияет.
func Recommend(doctor model.Doctor, date time.Time, duration int, existing []model.Appointment) ([]model.TimeSlot, error) {
	slots, err := GenerateSlots(doctor, date, existing)
	if err != nil {
		return nil, err
	}

	var morning, afternoon []model.TimeSlot
	for _, slot := range slots {
		if !slot.Available {
			continue
		}

		// Время уже проверено при генерации
		minutes, _ := ParseClock(slot.Time)
		if minutes < NoonMinutes {
			morning = append(morning, slot)
		} else {
			afternoon = append(afternoon, slot)
		}
	}

	best := make([]model.TimeSlot, 0, 2*recommendPerHalf)
	best = append(best, firstN(morning, recommendPerHalf)...)
	best = append(best, firstN(afternoon, recommendPerHalf)...)

	return best, nil
}

func firstN(slots []model.TimeSlot, n int) []model.TimeSlot {
	if len(slots) > n {
		return slots[:n]
	}
	return slots
}
