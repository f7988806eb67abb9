package model

import "encoding/json"

// TimeSlot - кандидат на время записи, не сохраняется
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"` // пусто для свободного слота
}

// ConflictKind - закрытый набор причин отказа
type ConflictKind int

const (
	ConflictOutsideHours ConflictKind = iota + 1
	ConflictOverlap
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictOutsideHours:
		return "outside-hours"
	case ConflictOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

func (k ConflictKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

type ScheduleConflict struct {
	Kind    ConflictKind `json:"kind"`
	Message string       `json:"message"`
}

type Interval string

const (
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

type DuplicationOptions struct {
	Interval      Interval `json:"interval"`
	Count         int      `json:"count"`
	SkipWeekends  bool     `json:"skip_weekends"`
	SkipConflicts bool     `json:"skip_conflicts"`
}
