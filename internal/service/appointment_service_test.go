package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/repository/memory"
	"github.com/Freeeeeet/clinic_frontdesk/internal/schedule"
)

var monday = model.NewDate(2024, time.January, 15)

func testDoctors() memory.Doctors {
	return memory.Doctors{
		"doc-1": {
			ID:        "doc-1",
			FirstName: "Анна",
			LastName:  "Петрова",
			WorkingHours: model.WorkingHours{
				Start:       "09:00",
				End:         "17:00",
				WorkingDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
			},
		},
	}
}

func existingAt(id string, date time.Time, clock string, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{
		ID: id,
		Draft: model.Draft{
			PatientID: "pat-1",
			DoctorID:  "doc-1",
			Date:      date,
			Time:      clock,
			Duration:  30,
			Type:      model.AppointmentTypeConsultation,
			Status:    status,
		},
	}
}

func newDraft(date time.Time, clock string) model.Draft {
	return model.Draft{
		PatientID: "pat-2",
		DoctorID:  "doc-1",
		Date:      date,
		Time:      clock,
		Duration:  30,
	}
}

func newTestService(store *memory.Appointments) *AppointmentService {
	return NewAppointmentService(testDoctors(), store, zap.NewNop())
}

func TestDaySlots(t *testing.T) {
	store := memory.NewAppointments(existingAt("a1", monday, "10:00", model.AppointmentStatusScheduled))
	svc := newTestService(store)

	slots, err := svc.DaySlots(context.Background(), "doc-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 16)
	assert.False(t, slots[2].Available)
	assert.Equal(t, "10:00", slots[2].Time)

	_, err = svc.DaySlots(context.Background(), "doc-404", monday)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendSlots(t *testing.T) {
	svc := newTestService(memory.NewAppointments(existingAt("a1", monday, "09:00", model.AppointmentStatusScheduled)))

	slots, err := svc.RecommendSlots(context.Background(), "doc-1", monday, 30)
	require.NoError(t, err)

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	assert.Equal(t, []string{"09:30", "10:00", "10:30", "12:00", "12:30", "13:00"}, times)
}

func TestValidateAppointment_ExcludesEditedRecord(t *testing.T) {
	store := memory.NewAppointments(existingAt("a1", monday, "10:00", model.AppointmentStatusScheduled))
	svc := newTestService(store)

	req := ValidationRequest{DoctorID: "doc-1", Date: monday, Time: "10:00", Duration: 30}

	conflicts, err := svc.ValidateAppointment(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ConflictOverlap, conflicts[0].Kind)

	req.ExcludeID = "a1"
	conflicts, err = svc.ValidateAppointment(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestBook(t *testing.T) {
	store := memory.NewAppointments()
	svc := newTestService(store)

	appointment, err := svc.Book(context.Background(), newDraft(monday, "11:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, appointment.ID)
	assert.Equal(t, model.AppointmentStatusScheduled, appointment.Status)
	assert.Equal(t, model.AppointmentTypeConsultation, appointment.Type)

	_, err = svc.Book(context.Background(), newDraft(monday, "11:00"))
	conflict, ok := AsConflict(err)
	require.True(t, ok, "second booking must conflict, got %v", err)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, model.ConflictOverlap, conflict.Conflicts[0].Kind)
}

func TestBook_OutsideHours(t *testing.T) {
	store := memory.NewAppointments()
	svc := newTestService(store)

	draft := newDraft(monday, "16:45")
	_, err := svc.Book(context.Background(), draft)

	conflict, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, model.ConflictOutsideHours, conflict.Conflicts[0].Kind)
	assert.Zero(t, store.Len())
}

func TestBook_InvalidInput(t *testing.T) {
	svc := newTestService(memory.NewAppointments())

	_, err := svc.Book(context.Background(), newDraft(monday, "25:00"))
	assert.ErrorIs(t, err, schedule.ErrInvalidClock)

	draft := newDraft(monday, "10:00")
	draft.Duration = 0
	_, err = svc.Book(context.Background(), draft)
	assert.ErrorIs(t, err, schedule.ErrInvalidDuration)
}

func TestBook_RejectsClockAliases(t *testing.T) {
	store := memory.NewAppointments()
	svc := newTestService(store)

	_, err := svc.Book(context.Background(), newDraft(monday, "09:00"))
	require.NoError(t, err)

	for _, clock := range []string{"9:00", "+9:00", "009:00"} {
		_, err := svc.Book(context.Background(), newDraft(monday, clock))
		assert.ErrorIs(t, err, schedule.ErrInvalidClock, clock)
	}
	assert.Equal(t, 1, store.Len())
}

func TestBook_LostRaceIsOverlap(t *testing.T) {
	store := memory.NewAppointments()
	store.BlockSlot(monday, "12:00")
	svc := newTestService(store)

	_, err := svc.Book(context.Background(), newDraft(monday, "12:00"))
	conflict, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, model.ConflictOverlap, conflict.Conflicts[0].Kind)
}

func TestBook_ConcurrentCallersGetOneSlot(t *testing.T) {
	store := memory.NewAppointments()
	svc := newTestService(store)

	const callers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		booked int
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Book(context.Background(), newDraft(monday, "14:00")); err == nil {
				mu.Lock()
				booked++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, booked)
	assert.Equal(t, 1, store.Len())
}

func TestBookSeries_SkipConflicts(t *testing.T) {
	store := memory.NewAppointments(existingAt("a1", monday.AddDate(0, 0, 14), "10:00", model.AppointmentStatusScheduled))
	svc := newTestService(store)

	result, err := svc.BookSeries(context.Background(), newDraft(monday, "10:00"), model.DuplicationOptions{
		Interval:      model.IntervalWeek,
		Count:         3,
		SkipConflicts: true,
	})
	require.NoError(t, err)

	require.Len(t, result.Booked, 3)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "2024-01-29", model.FormatDate(result.Skipped[0].Draft.Date))
	assert.Contains(t, result.Skipped[0].Reason, schedule.MessageOverlap)

	assert.NotEqual(t, uuid.Nil, result.SeriesID)
	for _, a := range result.Booked {
		assert.Equal(t, result.SeriesID, a.SeriesID)
	}
	assert.Equal(t, "2024-01-15", model.FormatDate(result.Booked[0].Date))
}

func TestBookSeries_AbortsWithoutSkip(t *testing.T) {
	store := memory.NewAppointments(existingAt("a1", monday.AddDate(0, 0, 14), "10:00", model.AppointmentStatusScheduled))
	svc := newTestService(store)

	_, err := svc.BookSeries(context.Background(), newDraft(monday, "10:00"), model.DuplicationOptions{
		Interval: model.IntervalWeek,
		Count:    3,
	})

	_, ok := AsConflict(err)
	assert.True(t, ok)
	assert.Equal(t, 1, store.Len(), "nothing is booked when the series is rejected")
}

func TestBookSeries_InvalidOptions(t *testing.T) {
	svc := newTestService(memory.NewAppointments())

	_, err := svc.BookSeries(context.Background(), newDraft(monday, "10:00"), model.DuplicationOptions{
		Interval: model.IntervalMonth,
	})
	assert.ErrorIs(t, err, schedule.ErrInvalidCount)
}

func TestDuplicateToNextWeek(t *testing.T) {
	nextMonday := monday.AddDate(0, 0, 7)
	store := memory.NewAppointments(
		existingAt("a1", monday, "09:00", model.AppointmentStatusCompleted),
		existingAt("a2", monday, "10:00", model.AppointmentStatusScheduled),
		existingAt("a3", nextMonday, "10:00", model.AppointmentStatusScheduled),
	)
	svc := newTestService(store)

	result, err := svc.DuplicateToNextWeek(context.Background(), []string{"a1", "a2"})
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, "09:00", result.Created[0].Time)
	assert.True(t, model.SameDate(nextMonday, result.Created[0].Date))
	assert.Equal(t, model.AppointmentStatusScheduled, result.Created[0].Status)

	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "a2", result.Conflicts[0].Source.ID)
	assert.Equal(t, "Конфликт времени: 2024-01-22 в 10:00", result.Conflicts[0].Reason)
}

func TestDuplicateToNextWeek_UnknownID(t *testing.T) {
	svc := newTestService(memory.NewAppointments(existingAt("a1", monday, "09:00", model.AppointmentStatusScheduled)))

	_, err := svc.DuplicateToNextWeek(context.Background(), []string{"a1", "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPreviewAndDuplicateAppointment(t *testing.T) {
	store := memory.NewAppointments(
		existingAt("a1", monday, "09:00", model.AppointmentStatusScheduled),
		existingAt("a2", monday.AddDate(0, 0, 14), "09:00", model.AppointmentStatusScheduled),
	)
	svc := newTestService(store)
	opts := model.DuplicationOptions{Interval: model.IntervalWeek, Count: 3, SkipConflicts: true}

	preview, err := svc.PreviewDuplication(context.Background(), "a1", opts)
	require.NoError(t, err)
	assert.Len(t, preview.Successful, 2)
	assert.Len(t, preview.Conflicts, 1)
	assert.Equal(t, 2, store.Len(), "preview does not persist")

	result, err := svc.DuplicateAppointment(context.Background(), "a1", opts)
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Len(t, result.Conflicts, 1)
	assert.Equal(t, 4, store.Len())

	_, err = svc.PreviewDuplication(context.Background(), "missing", opts)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNextAvailableDate(t *testing.T) {
	store := memory.NewAppointments(
		existingAt("a1", monday, "10:00", model.AppointmentStatusScheduled),
		existingAt("a2", monday.AddDate(0, 0, 1), "10:00", model.AppointmentStatusScheduled),
	)
	svc := newTestService(store)

	date, ok, err := svc.NextAvailableDate(context.Background(), "doc-1", monday, "10:00")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, monday.AddDate(0, 0, 2), date)

	_, _, err = svc.NextAvailableDate(context.Background(), "doc-1", monday, "10")
	assert.ErrorIs(t, err, schedule.ErrInvalidClock)

	_, _, err = svc.NextAvailableDate(context.Background(), "doc-1", monday, "9:00")
	assert.ErrorIs(t, err, schedule.ErrInvalidClock)
}

func TestNextAvailableDate_UnknownDoctor(t *testing.T) {
	svc := newTestService(memory.NewAppointments())

	_, _, err := svc.NextAvailableDate(context.Background(), "doc-404", monday, "10:00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	store := memory.NewAppointments(existingAt("a1", monday, "10:00", model.AppointmentStatusScheduled))
	svc := newTestService(store)

	require.NoError(t, svc.UpdateStatus(context.Background(), "a1", model.AppointmentStatusCancelled))
	updated, err := store.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, updated.Status)

	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), "a1", "done"), ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), "missing", model.AppointmentStatusCompleted), ErrNotFound)
}

func TestAppointment(t *testing.T) {
	svc := newTestService(memory.NewAppointments(existingAt("a1", monday, "10:00", model.AppointmentStatusScheduled)))

	appointment, err := svc.Appointment(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "10:00", appointment.Time)

	_, err = svc.Appointment(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
