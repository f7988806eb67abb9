package model

import "time"

// WorkingHours описывает рабочее время врача
type WorkingHours struct {
	Start       string         `json:"start"`        // "09:00"
	End         string         `json:"end"`          // "17:00", не включительно
	WorkingDays []time.Weekday `json:"working_days"` // 0 = Sunday, 6 = Saturday
}

// Works проверяет, работает ли врач в указанный день недели
func (w WorkingHours) Works(day time.Weekday) bool {
	for _, d := range w.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

type Doctor struct {
	ID              string       `json:"id"`
	FirstName       string       `json:"first_name"`
	LastName        string       `json:"last_name"`
	Specialization  string       `json:"specialization"`
	Phone           string       `json:"phone"`
	Email           string       `json:"email"`
	LicenseNumber   string       `json:"license_number"`
	Experience      int          `json:"experience"`       // в годах
	ConsultationFee int          `json:"consultation_fee"` // в копейках
	WorkingHours    WorkingHours `json:"working_hours"`
	CreatedAt       time.Time    `json:"created_at"`
}

// FullName возвращает имя врача для отображения
func (d *Doctor) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.LastName + " " + d.FirstName
}
