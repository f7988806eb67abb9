package service

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidStatus  = errors.New("invalid appointment status")
	ErrInvalidDoctor  = errors.New("invalid doctor")
	ErrDoctorExists   = errors.New("doctor already exists")
	ErrInvalidPayment = errors.New("invalid payment")
)

// ConflictError - запись нельзя создать из-за нарушенных ограничений
type ConflictError struct {
	Conflicts []model.ScheduleConflict
}

func (e *ConflictError) Error() string {
	messages := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		messages = append(messages, c.Message)
	}
	return "appointment conflicts: " + strings.Join(messages, "; ")
}

// AsConflict извлекает ConflictError из цепочки ошибок
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	ok := errors.As(err, &conflict)
	return conflict, ok
}
