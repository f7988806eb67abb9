package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

func TestValidate_OutsideHoursBoundary(t *testing.T) {
	doctor := weekdayDoctor("09:00", "17:00")
	date := model.NewDate(2024, time.January, 15)

	conflicts, err := Validate(doctor, date, "16:45", 30, nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ConflictOutsideHours, conflicts[0].Kind)
	assert.Equal(t, MessageOutsideHours, conflicts[0].Message)

	conflicts, err = Validate(doctor, date, "16:30", 30, nil)
	require.NoError(t, err)
	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)
}

func TestValidate_BeforeStart(t *testing.T) {
	doctor := weekdayDoctor("09:00", "17:00")
	date := model.NewDate(2024, time.January, 15)

	conflicts, err := Validate(doctor, date, "08:30", 30, nil)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ConflictOutsideHours, conflicts[0].Kind)
}

func TestValidate_Overlap(t *testing.T) {
	doctor := weekdayDoctor("09:00", "17:00")
	date := model.NewDate(2024, time.January, 15)
	existing := []model.Appointment{booking(doctor.ID, date, "10:00", model.AppointmentStatusScheduled)}

	conflicts, err := Validate(doctor, date, "10:00", 30, existing)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, model.ConflictOverlap, conflicts[0].Kind)
	assert.Equal(t, MessageOverlap, conflicts[0].Message)

	// Пересечение интервалов без совпадения начала конфликтом не считается
	conflicts, err = Validate(doctor, date, "10:15", 30, existing)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestValidate_BothConflicts(t *testing.T) {
	doctor := weekdayDoctor("09:00", "17:00")
	date := model.NewDate(2024, time.January, 15)
	existing := []model.Appointment{booking(doctor.ID, date, "16:30", model.AppointmentStatusCompleted)}

	conflicts, err := Validate(doctor, date, "16:30", 60, existing)
	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	assert.Equal(t, model.ConflictOutsideHours, conflicts[0].Kind)
	assert.Equal(t, model.ConflictOverlap, conflicts[1].Kind)
}

func TestValidate_Preconditions(t *testing.T) {
	doctor := weekdayDoctor("09:00", "17:00")
	date := model.NewDate(2024, time.January, 15)

	_, err := Validate(doctor, date, "10:00", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Validate(doctor, date, "ten", 30, nil)
	assert.ErrorIs(t, err, ErrInvalidClock)

	_, err = Validate(weekdayDoctor("10:00", "10:00"), date, "10:00", 30, nil)
	assert.ErrorIs(t, err, ErrInvalidWorkingHours)
}

func TestConflictKind_String(t *testing.T) {
	assert.Equal(t, "outside-hours", model.ConflictOutsideHours.String())
	assert.Equal(t, "overlap", model.ConflictOverlap.String())
}
