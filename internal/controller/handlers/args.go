package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/schedule"
)

// Ограничения длительности приёма в минутах
const (
	DefaultDuration = schedule.SlotStep
	MaxDuration     = 480
)

var ErrUsage = errors.New("wrong command arguments")

// DayArgs - аргументы /slots и /recommend
type DayArgs struct {
	DoctorID string
	Date     time.Time
	Duration int
}

// CheckArgs - аргументы /check
type CheckArgs struct {
	DoctorID string
	Date     time.Time
	Time     string
	Duration int
}

// NextArgs - аргументы /next
type NextArgs struct {
	DoctorID string
	From     time.Time
	Time     string
}

// ParseSlotsArgs разбирает "/slots <doctorID> <YYYY-MM-DD>"
func ParseSlotsArgs(text string) (DayArgs, error) {
	args, err := commandArgs(text, 2, 2)
	if err != nil {
		return DayArgs{}, err
	}

	date, err := model.ParseDate(args[1])
	if err != nil {
		return DayArgs{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return DayArgs{DoctorID: args[0], Date: date}, nil
}

// ParseRecommendArgs разбирает "/recommend <doctorID> <YYYY-MM-DD> [duration]"
func ParseRecommendArgs(text string) (DayArgs, error) {
	args, err := commandArgs(text, 2, 3)
	if err != nil {
		return DayArgs{}, err
	}

	date, err := model.ParseDate(args[1])
	if err != nil {
		return DayArgs{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	duration := DefaultDuration
	if len(args) == 3 {
		if duration, err = parseDuration(args[2]); err != nil {
			return DayArgs{}, err
		}
	}

	return DayArgs{DoctorID: args[0], Date: date, Duration: duration}, nil
}

// ParseNextArgs разбирает "/next <doctorID> <YYYY-MM-DD> <HH:MM>"
func ParseNextArgs(text string) (NextArgs, error) {
	args, err := commandArgs(text, 3, 3)
	if err != nil {
		return NextArgs{}, err
	}

	date, err := model.ParseDate(args[1])
	if err != nil {
		return NextArgs{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if _, err := schedule.ParseClock(args[2]); err != nil {
		return NextArgs{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return NextArgs{DoctorID: args[0], From: date, Time: args[2]}, nil
}

// ParseCheckArgs разбирает "/check <doctorID> <YYYY-MM-DD> <HH:MM> [duration]"
func ParseCheckArgs(text string) (CheckArgs, error) {
	args, err := commandArgs(text, 3, 4)
	if err != nil {
		return CheckArgs{}, err
	}

	date, err := model.ParseDate(args[1])
	if err != nil {
		return CheckArgs{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if _, err := schedule.ParseClock(args[2]); err != nil {
		return CheckArgs{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	duration := DefaultDuration
	if len(args) == 4 {
		if duration, err = parseDuration(args[3]); err != nil {
			return CheckArgs{}, err
		}
	}

	return CheckArgs{DoctorID: args[0], Date: date, Time: args[2], Duration: duration}, nil
}

// ParseAppointmentArgs разбирает "/appointment <appointmentID>"
func ParseAppointmentArgs(text string) (string, error) {
	args, err := commandArgs(text, 1, 1)
	if err != nil {
		return "", err
	}
	return args[0], nil
}

func parseDuration(s string) (int, error) {
	duration, err := strconv.Atoi(s)
	if err != nil || duration <= 0 || duration > MaxDuration {
		return 0, fmt.Errorf("%w: duration %q", ErrUsage, s)
	}
	return duration, nil
}

// commandArgs отбрасывает саму команду (в том числе вида /slots@bot)
// и проверяет количество аргументов
func commandArgs(text string, minArgs, maxArgs int) ([]string, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return nil, fmt.Errorf("%w: not a command", ErrUsage)
	}

	args := fields[1:]
	if len(args) < minArgs || len(args) > maxArgs {
		return nil, fmt.Errorf("%w: expected %d..%d arguments, got %d", ErrUsage, minArgs, maxArgs, len(args))
	}

	return args, nil
}
