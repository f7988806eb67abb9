// Package grouping раскладывает произвольные записи по группам значения поля,
// сортирует группы и считает по ним статистику.
package grouping

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Unspecified - группа для записей с пустым значением поля
const Unspecified = "Не указано"

type SortBy string

const (
	SortAlphabetical SortBy = "alphabetical"
	SortByCount      SortBy = "count"
	SortCustom       SortBy = "custom"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Порядок статусов для разных типов записей
var (
	AppointmentStatusOrder = []string{"scheduled", "completed", "cancelled", "no-show"}
	PaymentStatusOrder     = []string{"pending", "paid", "failed", "refunded"}
)

type Config struct {
	SortBy          SortBy    `json:"sort_by"`    // по умолчанию alphabetical
	SortOrder       SortOrder `json:"sort_order"` // по умолчанию asc
	CustomOrder     []string  `json:"custom_order"`
	ShowEmptyGroups bool      `json:"show_empty_groups"`
}

// KeyFunc возвращает ключ группы для записи
type KeyFunc[T any] func(T) string

// ByField строит KeyFunc из селектора поля. Нулевое значение поля
// попадает в группу Unspecified.
func ByField[T any, K comparable](field func(T) K) KeyFunc[T] {
	return func(record T) string {
		var zero K
		value := field(record)
		if value == zero {
			return Unspecified
		}
		return fmt.Sprint(value)
	}
}

type Group[T any] struct {
	Key     string `json:"key"`
	Records []T    `json:"records"`
}

// Grouped - упорядоченный набор групп
type Grouped[T any] []Group[T]

// By группирует записи по ключу и сортирует группы согласно cfg.
// Внутри группы записи сохраняют исходный порядок.
func By[T any](records []T, key KeyFunc[T], cfg Config) Grouped[T] {
	index := map[string]int{}
	grouped := Grouped[T]{}

	for _, record := range records {
		k := key(record)
		i, ok := index[k]
		if !ok {
			i = len(grouped)
			index[k] = i
			grouped = append(grouped, Group[T]{Key: k})
		}
		grouped[i].Records = append(grouped[i].Records, record)
	}

	if cfg.ShowEmptyGroups && len(cfg.CustomOrder) > 0 {
		for _, k := range cfg.CustomOrder {
			if _, ok := index[k]; ok {
				continue
			}
			index[k] = len(grouped)
			grouped = append(grouped, Group[T]{Key: k, Records: []T{}})
		}
	}

	return Sort(grouped, cfg)
}

// Sort возвращает отсортированную копию групп
func Sort[T any](grouped Grouped[T], cfg Config) Grouped[T] {
	sorted := slices.Clone(grouped)
	if sorted == nil {
		sorted = Grouped[T]{}
	}

	cmp := compareFunc[T](cfg)
	slices.SortStableFunc(sorted, cmp)

	return sorted
}

func compareFunc[T any](cfg Config) func(a, b Group[T]) int {
	// Collator не потокобезопасен, поэтому создаётся на каждую сортировку
	collator := collate.New(language.Russian)

	position := make(map[string]int, len(cfg.CustomOrder))
	for i, k := range cfg.CustomOrder {
		if _, ok := position[k]; !ok {
			position[k] = i
		}
	}

	sign := 1
	if cfg.SortOrder == SortDesc {
		sign = -1
	}

	return func(a, b Group[T]) int {
		var c int

		switch cfg.SortBy {
		case SortByCount:
			c = len(b.Records) - len(a.Records)
		case SortCustom:
			ia, okA := position[a.Key]
			ib, okB := position[b.Key]
			switch {
			case okA && okB:
				c = ia - ib
			case okA:
				c = -1
			case okB:
				c = 1
			default:
				c = collator.CompareString(a.Key, b.Key)
			}
		default:
			c = collator.CompareString(a.Key, b.Key)
		}

		return sign * c
	}
}

// Keys возвращает ключи групп в текущем порядке
func (g Grouped[T]) Keys() []string {
	keys := make([]string, 0, len(g))
	for _, group := range g {
		keys = append(keys, group.Key)
	}
	return keys
}

// Get возвращает записи группы по ключу
func (g Grouped[T]) Get(key string) ([]T, bool) {
	for _, group := range g {
		if group.Key == key {
			return group.Records, true
		}
	}
	return nil, false
}

// Filter оставляет записи, у которых хотя бы одно из полей содержит term
// без учёта регистра. Опустевшие группы удаляются. Пустой term возвращает
// группы без изменений.
func (g Grouped[T]) Filter(term string, fields ...func(T) string) Grouped[T] {
	if strings.TrimSpace(term) == "" {
		return g
	}

	needle := strings.ToLower(term)
	filtered := Grouped[T]{}

	for _, group := range g {
		var kept []T
		for _, record := range group.Records {
			if matches(record, needle, fields) {
				kept = append(kept, record)
			}
		}

		if len(kept) > 0 {
			filtered = append(filtered, Group[T]{Key: group.Key, Records: kept})
		}
	}

	return filtered
}

func matches[T any](record T, needle string, fields []func(T) string) bool {
	for _, field := range fields {
		value := field(record)
		if value != "" && strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}
