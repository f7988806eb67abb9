package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/grouping"
	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

// FormatDoctorHeader форматирует заголовок с врачом и датой
func FormatDoctorHeader(doctor *model.Doctor, date time.Time) string {
	text := fmt.Sprintf("👨‍⚕️ <b>%s</b>", html.EscapeString(doctor.FullName()))
	if doctor.Specialization != "" {
		text += ", " + html.EscapeString(doctor.Specialization)
	}
	if doctor.ConsultationFee > 0 {
		text += " · " + FormatPriceShort(doctor.ConsultationFee)
	}
	return text + "\n📅 " + FormatDateWithWeekday(date)
}

// FormatSlots форматирует слоты дня, по одному на строку
func FormatSlots(slots []model.TimeSlot) string {
	if len(slots) == 0 {
		return "Врач не принимает в этот день"
	}

	free := 0
	var sb strings.Builder
	for _, slot := range slots {
		if slot.Available {
			free++
			sb.WriteString(fmt.Sprintf("🟢 %s\n", slot.Time))
			continue
		}
		sb.WriteString(fmt.Sprintf("🔴 %s · %s\n", slot.Time, slot.Reason))
	}

	sb.WriteString(fmt.Sprintf("\nСвободно: %d %s из %d", free, PluralizeSlots(free), len(slots)))
	return sb.String()
}

// FormatRecommendations форматирует рекомендованные слоты
func FormatRecommendations(slots []model.TimeSlot, duration int) string {
	if len(slots) == 0 {
		return "Свободного времени нет"
	}

	times := make([]string, 0, len(slots))
	for _, slot := range slots {
		times = append(times, slot.Time)
	}

	return fmt.Sprintf("⭐ Рекомендуем (%s): %s", FormatDuration(duration), strings.Join(times, ", "))
}

// FormatConflicts форматирует нарушения для предлагаемой записи
func FormatConflicts(conflicts []model.ScheduleConflict) string {
	if len(conflicts) == 0 {
		return "✅ Время доступно"
	}

	lines := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		lines = append(lines, "⚠️ "+c.Message)
	}
	return strings.Join(lines, "\n")
}

// FormatAppointmentCard форматирует карточку записи; doctor может быть nil
func FormatAppointmentCard(appointment model.Appointment, doctor *model.Doctor) string {
	status := AppointmentStatusDisplay(appointment.Status)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s <b>%s</b>\n", status.Emoji, status.Text))
	if doctor != nil {
		sb.WriteString(fmt.Sprintf("👨‍⚕️ %s\n", html.EscapeString(doctor.FullName())))
	}
	sb.WriteString(fmt.Sprintf("📅 %s, %s в %s · %s",
		WeekdayName(appointment.Date.Weekday()),
		FormatDate(appointment.Date),
		appointment.Time,
		FormatDuration(appointment.Duration),
	))
	if appointment.Symptoms != "" {
		sb.WriteString("\n📝 " + html.EscapeString(appointment.Symptoms))
	}

	return sb.String()
}

// FormatStatistics форматирует сводку по группам статусов
func FormatStatistics[T any](grouped grouping.Grouped[T], stats grouping.Statistics) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 <b>Всего %d %s</b>\n\n", stats.TotalRecords, PluralizeAppointments(stats.TotalRecords)))

	for _, group := range grouped {
		sb.WriteString(fmt.Sprintf("%s: %d\n", GroupLabel(group.Key), len(group.Records)))
	}

	if stats.Largest.Size > 0 {
		sb.WriteString(fmt.Sprintf("\nБольше всего: %s (%d)", GroupLabel(stats.Largest.Name), stats.Largest.Size))
	}

	return sb.String()
}
