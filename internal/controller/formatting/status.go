package formatting

import (
	"github.com/Freeeeeet/clinic_frontdesk/internal/grouping"
	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
)

// StatusDisplay представляет отображение статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// AppointmentStatusDisplay возвращает emoji и текст для статуса записи
func AppointmentStatusDisplay(status model.AppointmentStatus) StatusDisplay {
	displays := map[model.AppointmentStatus]StatusDisplay{
		model.AppointmentStatusScheduled: {"🗓", "Запланировано"},
		model.AppointmentStatusCompleted: {"✅", "Завершено"},
		model.AppointmentStatusCancelled: {"❌", "Отменено"},
		model.AppointmentStatusNoShow:    {"🚫", "Неявка"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// groupLabels подписи ключей групп по статусу
var groupLabels = map[string]string{
	"scheduled": "Запланировано",
	"completed": "Завершено",
	"cancelled": "Отменено",
	"no-show":   "Неявка",

	"pending":  "Ожидает оплаты",
	"paid":     "Оплачено",
	"failed":   "Неуспешно",
	"refunded": "Возврат",

	grouping.Unspecified: grouping.Unspecified,
}

// GroupLabel возвращает русскую подпись ключа группы; неизвестный ключ выводится как есть
func GroupLabel(key string) string {
	if label, ok := groupLabels[key]; ok {
		return label
	}
	return key
}
