package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) registerUser(message *tgbotapi.Message) {
	from := message.From
	if from == nil {
		h.reply(message.Chat.ID, "❌ Não foi possível identificar o remetente.")
		return
	}

	user, err := h.panelUserService.Register(message.Chat.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.logger.WithField("chat_id", user.ChatID).Info("User registered")
	h.reply(message.Chat.ID, "✅ Cadastro realizado! Use /help para ver os comandos do painel.")
}

func (h *Handler) showProfile(message *tgbotapi.Message) {
	user, err := h.panelUserService.Get(message.Chat.ID)
	if err != nil {
		h.reply(message.Chat.ID, "🔐 Você ainda não está cadastrado. Use /register para acessar o painel.")
		return
	}

	h.reply(message.Chat.ID, h.panelUserService.FormatUserInfo(user))
}

func (h *Handler) deleteProfile(message *tgbotapi.Message) {
	if err := h.panelUserService.Delete(message.Chat.ID); err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.logger.WithField("chat_id", message.Chat.ID).Info("User deleted")
	h.reply(message.Chat.ID, "🗑 Cadastro removido. Use /register se quiser voltar.")
}
