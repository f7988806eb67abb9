package controller

import (
	"context"

	"github.com/Freeeeeet/clinic_frontdesk/internal/controller/handlers"
	"github.com/Freeeeeet/clinic_frontdesk/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	appointments *service.AppointmentService,
	reports *service.ReportService,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(appointments, reports, logger),
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды принимаются и в виде /cmd@bot, как их отправляют из групповых чатов
	c.bot.RegisterHandlerMatchFunc(handlers.MatchCommand("start"), c.handlers.HandleStart)
	c.bot.RegisterHandlerMatchFunc(handlers.MatchCommand("help"), c.handlers.HandleHelp)
	c.bot.RegisterHandlerMatchFunc(handlers.MatchCommand("stats"), c.handlers.HandleStats)
	c.bot.RegisterHandlerMatchFunc(handlers.MatchCommand("slots"), c.handlers.HandleSlots)
	c.bot.RegisterHandlerMatchFunc(handlers.MatchCommand("recommend"), c.handlers.HandleRecommend)
	c.bot.RegisterHandlerMatchFunc(handlers.MatchCommand("next"), c.handlers.HandleNext)
	c.bot.RegisterHandlerMatchFunc(handlers.MatchCommand("check"), c.handlers.HandleCheck)
	c.bot.RegisterHandlerMatchFunc(handlers.MatchCommand("appointment"), c.handlers.HandleAppointment)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "slots", Description: "🗓 Слоты врача на день"},
		{Command: "recommend", Description: "⭐ Лучшее время для записи"},
		{Command: "next", Description: "🔎 Ближайшая свободная дата"},
		{Command: "check", Description: "✔️ Проверить время записи"},
		{Command: "appointment", Description: "📋 Карточка записи"},
		{Command: "stats", Description: "📊 Записи по статусам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
