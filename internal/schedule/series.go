package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

// nextWeekOptions - дублирование выбранных записей на следующую неделю
var nextWeekOptions = model.DuplicationOptions{
	Interval:      model.IntervalWeek,
	Count:         1,
	SkipConflicts: true,
}

// Conflict - исходная запись, копию которой не удалось разместить
type Conflict struct {
	Source model.Appointment `json:"appointment"`
	Reason string            `json:"reason"`
}

// Partition - результат массового дублирования.
// Частичный успех - обычный исход, а не ошибка.
type Partition struct {
	Successful []model.Draft `json:"successful"`
	Conflicts  []Conflict    `json:"conflicts"`
}

// Expand создаёт opts.Count будущих копий записи.
// Копия i сдвигается на i недель или i календарных месяцев от исходной даты.
func Expand(draft model.Draft, opts model.DuplicationOptions) ([]model.Draft, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, opts.Count)
	}

	if opts.Interval != model.IntervalWeek && opts.Interval != model.IntervalMonth {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInterval, opts.Interval)
	}

	return expand(draft, opts), nil
}

func expand(draft model.Draft, opts model.DuplicationOptions) []model.Draft {
	duplicates := make([]model.Draft, 0, opts.Count)

	for i := 1; i <= opts.Count; i++ {
		date := shiftDate(draft.Date, opts.Interval, i)

		if opts.SkipWeekends {
			date = nextWeekday(date)
		}

		duplicate := draft
		duplicate.Date = date
		duplicate.Status = model.AppointmentStatusScheduled
		duplicate.Notes = duplicateNotes(draft.Notes, draft.Date)

		duplicates = append(duplicates, duplicate)
	}

	return duplicates
}

// shiftDate сдвигает дату с переходом через границы месяца и года.
// 31 января + 1 месяц даёт 2 или 3 марта, как и обычная календарная нормализация.
func shiftDate(date time.Time, interval model.Interval, n int) time.Time {
	if interval == model.IntervalMonth {
		return date.AddDate(0, n, 0)
	}
	return date.AddDate(0, 0, 7*n)
}

// nextWeekday переносит субботу и воскресенье на понедельник
func nextWeekday(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Sunday:
		return date.AddDate(0, 0, 1)
	case time.Saturday:
		return date.AddDate(0, 0, 2)
	default:
		return date
	}
}

func duplicateNotes(notes string, source time.Time) string {
	return strings.TrimSpace(fmt.Sprintf("%s (Дублировано из %s)", notes, model.FormatDate(source)))
}

// ExpandAndPartition дублирует каждую запись на следующую неделю и делит
// копии на принятые и конфликтующие с existing.
func ExpandAndPartition(appointments, existing []model.Appointment) Partition {
	result := Partition{
		Successful: []model.Draft{},
		Conflicts:  []Conflict{},
	}

	for _, source := range appointments {
		for _, duplicate := range expand(source.AsDraft(), nextWeekOptions) {
			if IsOccupied(duplicate.DoctorID, duplicate.Date, duplicate.Time, existing) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Source: source,
					Reason: ConflictReason(duplicate),
				})
				continue
			}
			result.Successful = append(result.Successful, duplicate)
		}
	}

	return result
}

// ConflictReason формирует сообщение о занятом времени копии
func ConflictReason(d model.Draft) string {
	return fmt.Sprintf("Конфликт времени: %s в %s", model.FormatDate(d.Date), d.Time)
}

// BuildRecurringSeries возвращает исходную запись и все её повторения одной серией
func BuildRecurringSeries(draft model.Draft, opts model.DuplicationOptions) ([]model.Draft, error) {
	duplicates, err := Expand(draft, opts)
	if err != nil {
		return nil, err
	}

	series := make([]model.Draft, 0, len(duplicates)+1)
	series = append(series, draft)
	series = append(series, duplicates...)

	return series, nil
}

// PreviewDuplicates раскладывает копии одной записи с произвольными opts.
// Занятые копии уходят в конфликты только при opts.SkipConflicts,
// иначе они остаются среди принятых и решение за вызывающим.
func PreviewDuplicates(source model.Appointment, opts model.DuplicationOptions, existing []model.Appointment) (Partition, error) {
	duplicates, err := Expand(source.AsDraft(), opts)
	if err != nil {
		return Partition{}, err
	}

	result := Partition{
		Successful: []model.Draft{},
		Conflicts:  []Conflict{},
	}

	for _, duplicate := range duplicates {
		if opts.SkipConflicts && IsOccupied(duplicate.DoctorID, duplicate.Date, duplicate.Time, existing) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Source: source,
				Reason: ConflictReason(duplicate),
			})
			continue
		}
		result.Successful = append(result.Successful, duplicate)
	}

	return result, nil
}
