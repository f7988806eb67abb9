package formatting

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с днём недели
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s (%s)", FormatDate(t), WeekdayShortName(t.Weekday()))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

var weekdayNames = []string{
	"Воскресенье",
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
}

// WeekdayName возвращает название дня недели на русском
func WeekdayName(day time.Weekday) string {
	if day >= 0 && int(day) < len(weekdayNames) {
		return weekdayNames[day]
	}
	return "Неизвестно"
}

// FormatWorkingDays перечисляет рабочие дни полными названиями
func FormatWorkingDays(days []time.Weekday) string {
	if len(days) == 0 {
		return "нет рабочих дней"
	}

	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, WeekdayName(day))
	}
	return strings.Join(names, ", ")
}

// WeekdayShortName возвращает краткое название дня недели на русском
func WeekdayShortName(day time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if day >= 0 && int(day) < len(names) {
		return names[day]
	}
	return "?"
}
