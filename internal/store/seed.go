package store

import "time"

// DemoSeed returns the sample contacts and conversations shown before any
// live message arrives, with timestamps relative to now.
func DemoSeed(now time.Time) ([]Contact, map[string][]Message) {
	ago := func(d time.Duration) time.Time { return now.Add(-d) }

	contacts := []Contact{
		{Name: "Алёна", LastMessage: "Привет! Как дела?", UnreadCount: 2, LastMessageTime: ago(30 * time.Minute)},
		{Name: "Марина", LastMessage: "Не забудь про встречу завтра", UnreadCount: 0, LastMessageTime: ago(2 * time.Hour)},
		{Name: "Иван", LastMessage: "Документы готовы", UnreadCount: 1, LastMessageTime: ago(24 * time.Hour)},
	}

	conversations := map[string][]Message{
		"Алёна": {
			{From: "Алёна", Text: "Привет!", Timestamp: ago(time.Hour)},
			{From: LocalSender, Text: "Привет! Как дела?", Timestamp: ago(45 * time.Minute)},
			{From: "Алёна", Text: "Хорошо, спасибо! А у тебя?", Timestamp: ago(30 * time.Minute)},
		},
		"Марина": {
			{From: "Марина", Text: "Привет!", Timestamp: ago(3 * time.Hour)},
			{From: LocalSender, Text: "Привет, Марина!", Timestamp: ago(150 * time.Minute)},
			{From: "Марина", Text: "Не забудь про встречу завтра", Timestamp: ago(2 * time.Hour)},
		},
		"Иван": {
			{From: "Иван", Text: "Добрый день!", Timestamp: ago(25 * time.Hour)},
			{From: LocalSender, Text: "Добрый день, Иван!", Timestamp: ago(24*time.Hour + 30*time.Minute)},
			{From: "Иван", Text: "Документы готовы", Timestamp: ago(24 * time.Hour)},
		},
	}
	return contacts, conversations
}
