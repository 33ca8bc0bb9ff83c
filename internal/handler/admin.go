package handler

import (
	"fmt"
	"strconv"
	"strings"

	"courier-metrics-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) reloadExtract(message *tgbotapi.Message) {
	if !h.requireAdmin(message) {
		return
	}

	h.reply(message.Chat.ID, "⏳ Recarregando a planilha...")

	count, err := h.datasetService.Reload()
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload extract")
		h.reply(message.Chat.ID, "❌ Erro ao recarregar a planilha: "+err.Error())
		return
	}

	h.logger.WithField("records", count).Info("Extract reloaded")
	h.reply(message.Chat.ID, fmt.Sprintf("✅ Planilha recarregada: %d registros.", count))
}

func (h *Handler) showAllUsers(message *tgbotapi.Message) {
	if !h.requireAdmin(message) {
		return
	}

	text, err := h.panelUserService.FormatAllUsers()
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.reply(message.Chat.ID, text)
}

func (h *Handler) promoteToAdmin(message *tgbotapi.Message, args string) {
	h.changeRole(message, args, models.Role(models.RoleAdmin), "👑 Usuário promovido a administrador.")
}

func (h *Handler) demoteToClient(message *tgbotapi.Message, args string) {
	h.changeRole(message, args, models.Role(models.RoleClient), "👤 Usuário rebaixado para cliente.")
}

func (h *Handler) changeRole(message *tgbotapi.Message, args string, role models.Role, successText string) {
	if !h.requireAdmin(message) {
		return
	}

	targetChatID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.reply(message.Chat.ID, "ℹ️ Use: /promote <chat_id> ou /demote <chat_id>")
		return
	}

	if err := h.panelUserService.UpdateRole(message.Chat.ID, targetChatID, role); err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.logger.WithFields(logrus.Fields{
		"target": targetChatID,
		"role":   role,
	}).Info("Role updated")
	h.reply(message.Chat.ID, successText)
}
