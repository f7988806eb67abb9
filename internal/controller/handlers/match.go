package handlers

import (
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MatchCommand срабатывает на "/name" и "/name@bot" с аргументами или без.
// "/nextweek" с командой next не совпадает.
func MatchCommand(name string) bot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil {
			return false
		}
		return commandName(update.Message.Text) == name
	}
}

// commandName возвращает имя команды без "/" и упоминания бота
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}

	name, _, _ := strings.Cut(strings.TrimPrefix(fields[0], "/"), "@")
	return name
}
