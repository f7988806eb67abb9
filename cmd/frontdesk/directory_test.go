package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

func TestWeekdays(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, weekdays([]int{1, 5}))
	assert.Empty(t, weekdays(nil))
}

func TestPrintDoctors(t *testing.T) {
	var buf bytes.Buffer
	printDoctors(&buf, nil)
	assert.Equal(t, "No doctors registered\n", buf.String())

	buf.Reset()
	printDoctors(&buf, []*model.Doctor{{
		ID:        "doc-1",
		FirstName: "Анна",
		LastName:  "Петрова",
		WorkingHours: model.WorkingHours{
			Start:       "09:00",
			End:         "17:00",
			WorkingDays: []time.Weekday{time.Monday, time.Tuesday},
		},
	}})
	assert.Equal(t, "doc-1  Петрова Анна  09:00-17:00  Понедельник, Вторник\n", buf.String())
}
