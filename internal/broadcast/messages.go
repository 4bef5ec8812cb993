package broadcast

import (
	"github.com/matheus3301/wschat/internal/config"
	"github.com/matheus3301/wschat/internal/event"
)

// DefaultWelcome is sent to every client right after it connects.
var DefaultWelcome = event.Payload{From: "Server", Message: "Добро пожаловать в чат!"}

// DefaultMessages returns the built-in cyclic message list.
func DefaultMessages() []event.Payload {
	return []event.Payload{
		{From: "Алёна", Message: "Привет!"},
		{From: "Марина", Message: "Как дела?"},
		{From: "Иван", Message: "Добрый день!"},
		{From: "Елена", Message: "Привет, как ты?"},
		{From: "Сергей", Message: "Все хорошо!"},
		{From: "Анна", Message: "Отлично!"},
		{From: "Дмитрий", Message: "Привет всем!"},
		{From: "Ольга", Message: "Добрый вечер!"},
		{From: "Александр", Message: "Как дела?"},
		{From: "Наталья", Message: "Все отлично!"},
		{From: "Михаил", Message: "Привет!"},
		{From: "Екатерина", Message: "Добрый день!"},
		{From: "Андрей", Message: "Как ты?"},
		{From: "Татьяна", Message: "Хорошо!"},
		{From: "Владимир", Message: "Привет всем!"},
		{From: "Ирина", Message: "Добрый вечер!"},
	}
}

// OptionsFromConfig builds server options from the [server] config section.
// Empty fields fall back to the defaults applied by NewServer.
func OptionsFromConfig(cfg config.ServerConfig) Options {
	opts := Options{
		Interval: cfg.Interval,
		Welcome:  event.Payload{From: cfg.WelcomeFrom, Message: cfg.WelcomeText},
	}
	for _, m := range cfg.Messages {
		if m.From == "" {
			continue
		}
		opts.Messages = append(opts.Messages, event.Payload{From: m.From, Message: m.Message})
	}
	return opts
}
