package schedule

import (
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

func weekdayDoctor(start, end string) model.Doctor {
	return model.Doctor{
		ID:        "doc-1",
		FirstName: "Анна",
		LastName:  "Петрова",
		WorkingHours: model.WorkingHours{
			Start: start,
			End:   end,
			WorkingDays: []time.Weekday{
				time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
			},
		},
	}
}

func booking(doctorID string, date time.Time, clock string, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{
		ID: doctorID + "-" + model.FormatDate(date) + "-" + clock,
		Draft: model.Draft{
			PatientID: "pat-1",
			DoctorID:  doctorID,
			Date:      date,
			Time:      clock,
			Duration:  30,
			Type:      model.AppointmentTypeConsultation,
			Status:    status,
		},
	}
}

func slotTimes(slots []model.TimeSlot) []string {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	return times
}
