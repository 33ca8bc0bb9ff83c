package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client struct {
	Bot          *tgbotapi.BotAPI
	UpdateConfig tgbotapi.UpdateConfig
}

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	return &Client{
		Bot:          bot,
		UpdateConfig: updateConfig,
	}, nil
}

// SendText sends a plain text reply to a chat.
func (c *Client) SendText(chatID int64, text string) error {
	_, err := c.Bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendDocument uploads an in-memory file (CSV exports) to a chat.
func (c *Client) SendDocument(chatID int64, name string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  name,
		Bytes: data,
	})
	_, err := c.Bot.Send(doc)
	return err
}
