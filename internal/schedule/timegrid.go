// Package schedule содержит чистые функции расписания: генерацию слотов,
// проверку конфликтов, рекомендации, серии повторных записей и поиск
// ближайшей свободной даты. Пакет не хранит состояние и не меняет входные данные.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

const (
	// SlotStep шаг сетки слотов в минутах
	SlotStep = 30
	// NoonMinutes граница утро/после обеда
	NoonMinutes = 12 * 60

	minutesPerDay = 24 * 60
)

var (
	ErrInvalidClock        = errors.New("invalid clock time")
	ErrInvalidWorkingHours = errors.New("invalid working hours")
	ErrInvalidDuration     = errors.New("duration must be positive")
	ErrInvalidCount        = errors.New("count must be positive")
	ErrInvalidInterval     = errors.New("unknown duplication interval")
)

// ParseClock переводит "HH:MM" в минуты от полуночи.
// Принимается только каноничная запись из двух цифр с каждой стороны,
// иначе "9:00" и "09:00" стали бы разными ключами занятости.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return hours*60 + minutes, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatClock переводит минуты от полуночи в "HH:MM"
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// workingRange возвращает границы рабочего дня в минутах
func workingRange(start, end string) (int, int, error) {
	from, err := ParseClock(start)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: start: %w", ErrInvalidWorkingHours, err)
	}

	to, err := ParseClock(end)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: end: %w", ErrInvalidWorkingHours, err)
	}

	if from >= to {
		return 0, 0, fmt.Errorf("%w: %s-%s", ErrInvalidWorkingHours, start, end)
	}

	return from, to, nil
}

// ValidateWorkingHours проверяет часы приёма и дни недели врача
func ValidateWorkingHours(hours model.WorkingHours) error {
	if _, _, err := workingRange(hours.Start, hours.End); err != nil {
		return err
	}

	for _, day := range hours.WorkingDays {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: weekday %d", ErrInvalidWorkingHours, day)
		}
	}

	return nil
}
