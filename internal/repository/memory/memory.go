// Package memory - хранилища в памяти с теми же гарантиями, что и pgx-репозитории.
// Используются в тестах сервисов и контроллеров.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/repository"
	"github.com/Freeeeeet/clinic_frontdesk/internal/schedule"
)

// Doctors - справочник врачей по ID
type Doctors map[string]model.Doctor

func (d Doctors) GetByID(_ context.Context, id string) (*model.Doctor, error) {
	doctor, ok := d[id]
	if !ok {
		return nil, nil
	}
	return &doctor, nil
}

// Create добавляет врача; ID генерируется если не задан
func (d Doctors) Create(_ context.Context, doctor *model.Doctor) error {
	if doctor.ID == "" {
		doctor.ID = uuid.NewString()
	}
	doctor.CreatedAt = time.Now()
	d[doctor.ID] = *doctor
	return nil
}

// List возвращает врачей по фамилии и имени
func (d Doctors) List(context.Context) ([]*model.Doctor, error) {
	out := make([]*model.Doctor, 0, len(d))
	for _, doctor := range d {
		out = append(out, &doctor)
	}

	slices.SortFunc(out, func(x, y *model.Doctor) int {
		if c := strings.Compare(x.LastName, y.LastName); c != 0 {
			return c
		}
		return strings.Compare(x.FirstName, y.FirstName)
	})
	return out, nil
}

// Appointments хранит записи; CreateIfFree атомарен под мьютексом
type Appointments struct {
	mu      sync.Mutex
	items   []model.Appointment
	seq     int
	blocked map[string]bool
}

func NewAppointments(items ...model.Appointment) *Appointments {
	return &Appointments{
		items:   slices.Clone(items),
		blocked: map[string]bool{},
	}
}

// BlockSlot заставляет CreateIfFree отказывать на дату и время,
// как если бы параллельная запись заняла их между проверкой и вставкой
func (a *Appointments) BlockSlot(date time.Time, clock string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.blocked[slotKey(date, clock)] = true
}

func (a *Appointments) CreateIfFree(_ context.Context, draft model.Draft) (*model.Appointment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.blocked[slotKey(draft.Date, draft.Time)] || schedule.IsOccupied(draft.DoctorID, draft.Date, draft.Time, a.items) {
		return nil, repository.ErrSlotTaken
	}

	a.seq++
	appointment := model.Appointment{
		ID:        fmt.Sprintf("apt-%d", a.seq),
		Draft:     draft,
		CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	a.items = append(a.items, appointment)

	return &appointment, nil
}

func (a *Appointments) GetByID(_ context.Context, id string) (*model.Appointment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, appointment := range a.items {
		if appointment.ID == id {
			return &appointment, nil
		}
	}
	return nil, nil
}

// GetByIDs возвращает найденные записи, упорядоченные по дате и времени.
// Неизвестные ID пропускаются.
func (a *Appointments) GetByIDs(_ context.Context, ids []string) ([]model.Appointment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []model.Appointment
	for _, appointment := range a.items {
		if slices.Contains(ids, appointment.ID) {
			out = append(out, appointment)
		}
	}

	slices.SortStableFunc(out, func(x, y model.Appointment) int {
		if c := x.Date.Compare(y.Date); c != 0 {
			return c
		}
		switch {
		case x.Time < y.Time:
			return -1
		case x.Time > y.Time:
			return 1
		}
		return 0
	})

	return out, nil
}

func (a *Appointments) ListByDoctor(_ context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []model.Appointment
	for _, appointment := range a.items {
		if appointment.DoctorID == doctorID && !appointment.Date.Before(from) && !appointment.Date.After(to) {
			out = append(out, appointment)
		}
	}
	return out, nil
}

func (a *Appointments) ListByDates(_ context.Context, dates []time.Time) ([]model.Appointment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []model.Appointment
	for _, appointment := range a.items {
		if slices.ContainsFunc(dates, func(d time.Time) bool { return model.SameDate(d, appointment.Date) }) {
			out = append(out, appointment)
		}
	}
	return out, nil
}

func (a *Appointments) List(_ context.Context) ([]model.Appointment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return slices.Clone(a.items), nil
}

func (a *Appointments) UpdateStatus(_ context.Context, id string, status model.AppointmentStatus) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := slices.IndexFunc(a.items, func(appointment model.Appointment) bool { return appointment.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}

	updated := a.items[i]
	updated.Status = status
	if updated.IsActive() && schedule.IsOccupied(updated.DoctorID, updated.Date, updated.Time, without(a.items, i)) {
		return repository.ErrSlotTaken
	}

	a.items[i] = updated
	return nil
}

// Len - количество сохранённых записей
func (a *Appointments) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.items)
}

// Payments - список платежей
type Payments []model.Payment

func (p Payments) List(context.Context) ([]model.Payment, error) {
	return slices.Clone(p), nil
}

func (p *Payments) Create(_ context.Context, payment *model.Payment) error {
	if payment.ID == "" {
		payment.ID = fmt.Sprintf("pay-%d", len(*p)+1)
	}
	payment.CreatedAt = time.Now()
	*p = append(*p, *payment)
	return nil
}

func slotKey(date time.Time, clock string) string {
	return model.FormatDate(date) + " " + clock
}

func without(items []model.Appointment, i int) []model.Appointment {
	out := make([]model.Appointment, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
