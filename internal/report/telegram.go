package report

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobtrends-automation/internal/rank"
)

// TelegramReporter pushes a run's ranked table to a chat. Purely a
// presentation collaborator: it consumes the final table and nothing else.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendTable sends the ranked frequency table, top entries first.
func (t *TelegramReporter) SendTable(query string, entries []rank.Entry, totalListings int) error {
	if len(entries) == 0 {
		return t.send(fmt.Sprintf("📊 <b>%s</b>\nNo technologies matched across %d listings.", query, totalListings))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Tech trends for %q</b> (%d listings)\n\n", query, totalListings)
	for i, e := range entries {
		if i >= 20 {
			fmt.Fprintf(&b, "… and %d more\n", len(entries)-i)
			break
		}
		fmt.Fprintf(&b, "%2d. %s: %d\n", i+1, e.Keyword, e.Count)
	}
	return t.send(b.String())
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.send(fmt.Sprintf("⚠️ <b>Scan failed</b>:\n%v", errReq))
}

func (t *TelegramReporter) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}
