package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/controller/formatting"
	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/schedule"
	"github.com/Freeeeeet/clinic_frontdesk/internal/service"
)

const (
	usageSlots       = "Использование: /slots ID_врача ГГГГ-ММ-ДД"
	usageRecommend   = "Использование: /recommend ID_врача ГГГГ-ММ-ДД [минуты]"
	usageNext        = "Использование: /next ID_врача ГГГГ-ММ-ДД ЧЧ:ММ"
	usageCheck       = "Использование: /check ID_врача ГГГГ-ММ-ДД ЧЧ:ММ [минуты]"
	usageAppointment = "Использование: /appointment ID_записи"

	textDoctorNotFound      = "❌ Врач не найден."
	textAppointmentNotFound = "❌ Запись не найдена."
	textInternalError       = "❌ Произошла ошибка. Попробуйте позже."
)

const helpText = "📚 Справка по командам:\n\n" +
	"/slots ID_врача ГГГГ-ММ-ДД - Слоты врача на день\n" +
	"/recommend ID_врача ГГГГ-ММ-ДД [минуты] - Лучшее время для записи\n" +
	"/next ID_врача ГГГГ-ММ-ДД ЧЧ:ММ - Ближайший день со свободным временем\n" +
	"/check ID_врача ГГГГ-ММ-ДД ЧЧ:ММ [минуты] - Можно ли записать на это время\n" +
	"/appointment ID_записи - Карточка записи\n" +
	"/stats - Записи по статусам\n" +
	"/help - Показать эту справку"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := "коллега"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	h.reply(ctx, b, update, fmt.Sprintf("👋 Привет, %s!\n\nЭто бот регистратуры клиники.\n\n%s", name, helpText))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.reply(ctx, b, update, helpText)
}

// HandleSlots обрабатывает команду /slots
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.reply(ctx, b, update, h.SlotsText(ctx, update.Message.Text))
}

// HandleRecommend обрабатывает команду /recommend
func (h *Handlers) HandleRecommend(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.reply(ctx, b, update, h.RecommendText(ctx, update.Message.Text))
}

// HandleNext обрабатывает команду /next
func (h *Handlers) HandleNext(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.reply(ctx, b, update, h.NextText(ctx, update.Message.Text))
}

// HandleCheck обрабатывает команду /check
func (h *Handlers) HandleCheck(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.reply(ctx, b, update, h.CheckText(ctx, update.Message.Text))
}

// HandleAppointment обрабатывает команду /appointment
func (h *Handlers) HandleAppointment(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.reply(ctx, b, update, h.AppointmentText(ctx, update.Message.Text))
}

// HandleStats обрабатывает команду /stats
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.reply(ctx, b, update, h.StatsText(ctx))
}

// SlotsText формирует ответ на /slots
func (h *Handlers) SlotsText(ctx context.Context, text string) string {
	args, err := ParseSlotsArgs(text)
	if err != nil {
		return usageSlots
	}

	doctor, err := h.appointments.Doctor(ctx, args.DoctorID)
	if err != nil {
		return h.errorText(err)
	}

	slots, err := h.appointments.DaySlots(ctx, args.DoctorID, args.Date)
	if err != nil {
		return h.errorText(err)
	}

	return formatting.FormatDoctorHeader(doctor, args.Date) + "\n\n" + formatting.FormatSlots(slots)
}

// RecommendText формирует ответ на /recommend
func (h *Handlers) RecommendText(ctx context.Context, text string) string {
	args, err := ParseRecommendArgs(text)
	if err != nil {
		return usageRecommend
	}

	doctor, err := h.appointments.Doctor(ctx, args.DoctorID)
	if err != nil {
		return h.errorText(err)
	}

	slots, err := h.appointments.RecommendSlots(ctx, args.DoctorID, args.Date, args.Duration)
	if err != nil {
		return h.errorText(err)
	}

	return formatting.FormatDoctorHeader(doctor, args.Date) + "\n\n" + formatting.FormatRecommendations(slots, args.Duration)
}

// NextText формирует ответ на /next
func (h *Handlers) NextText(ctx context.Context, text string) string {
	args, err := ParseNextArgs(text)
	if err != nil {
		return usageNext
	}

	date, ok, err := h.appointments.NextAvailableDate(ctx, args.DoctorID, args.From, args.Time)
	if err != nil {
		return h.errorText(err)
	}

	if !ok {
		return fmt.Sprintf("😔 В ближайшие %d дней время %s занято", schedule.ScanHorizonDays, args.Time)
	}

	return fmt.Sprintf("✅ Ближайшая свободная дата: %s в %s", formatting.FormatDateWithWeekday(date), args.Time)
}

// CheckText формирует ответ на /check
func (h *Handlers) CheckText(ctx context.Context, text string) string {
	args, err := ParseCheckArgs(text)
	if err != nil {
		return usageCheck
	}

	doctor, err := h.appointments.Doctor(ctx, args.DoctorID)
	if err != nil {
		return h.errorText(err)
	}

	conflicts, err := h.appointments.ValidateAppointment(ctx, service.ValidationRequest{
		DoctorID: args.DoctorID,
		Date:     args.Date,
		Time:     args.Time,
		Duration: args.Duration,
	})
	if err != nil {
		return h.errorText(err)
	}

	return fmt.Sprintf("%s\n⏰ %s · %s\n\n%s",
		formatting.FormatDoctorHeader(doctor, args.Date),
		args.Time,
		formatting.FormatDuration(args.Duration),
		formatting.FormatConflicts(conflicts),
	)
}

// AppointmentText формирует ответ на /appointment
func (h *Handlers) AppointmentText(ctx context.Context, text string) string {
	id, err := ParseAppointmentArgs(text)
	if err != nil {
		return usageAppointment
	}

	appointment, err := h.appointments.Appointment(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		return textAppointmentNotFound
	}
	if err != nil {
		return h.errorText(err)
	}

	doctor, err := h.appointments.Doctor(ctx, appointment.DoctorID)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		return h.errorText(err)
	}

	return formatting.FormatAppointmentCard(*appointment, doctor)
}

// StatsText формирует ответ на /stats
func (h *Handlers) StatsText(ctx context.Context) string {
	view, err := h.reports.AppointmentsByStatus(ctx, service.DefaultAppointmentConfig(), "")
	if err != nil {
		return h.errorText(err)
	}

	if view.Statistics.TotalRecords == 0 {
		return "📭 Записей пока нет"
	}

	return formatting.FormatStatistics[model.Appointment](view.Groups, view.Statistics)
}

func (h *Handlers) errorText(err error) string {
	if errors.Is(err, service.ErrNotFound) {
		return textDoctorNotFound
	}

	h.logger.Error("Bot command failed", zap.Error(err))
	return textInternalError
}
