package handler

import (
	"courier-metrics-bot/internal/config"
	"courier-metrics-bot/internal/service"
	"courier-metrics-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	client            *telegram.Client
	panelUserService  *service.PanelUserService
	datasetService    *service.DatasetService
	reportService     *service.ReportService
	attendanceService *service.AttendanceService
	classifierService *service.ClassifierService
	utrService        *service.UtrService
	config            *config.BotConfig
	logger            *logrus.Logger
}

func NewHandler(
	client *telegram.Client,
	panelUserService *service.PanelUserService,
	datasetService *service.DatasetService,
	reportService *service.ReportService,
	attendanceService *service.AttendanceService,
	classifierService *service.ClassifierService,
	utrService *service.UtrService,
	cfg *config.BotConfig,
) *Handler {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Handler{
		client:            client,
		panelUserService:  panelUserService,
		datasetService:    datasetService,
		reportService:     reportService,
		attendanceService: attendanceService,
		classifierService: classifierService,
		utrService:        utrService,
		config:            cfg,
		logger:            logger,
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if !message.IsCommand() {
		h.reply(message.Chat.ID, "ℹ️ Use comandos para consultar o painel. /help lista todos.")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"command": message.Command(),
	}).Info("Handling command")

	h.handleCommand(message)
}

func (h *Handler) reply(chatID int64, text string) {
	if err := h.client.SendText(chatID, text); err != nil {
		h.logger.WithError(err).Error("Failed to send reply")
	}
}

// requireUser blocks commands from unregistered chats.
func (h *Handler) requireUser(message *tgbotapi.Message) bool {
	user, err := h.panelUserService.Get(message.Chat.ID)
	if err != nil || user == nil {
		h.reply(message.Chat.ID, "🔐 Você ainda não está cadastrado. Use /register para acessar o painel.")
		return false
	}
	return true
}

// requireAdmin blocks admin commands from non-admin chats.
func (h *Handler) requireAdmin(message *tgbotapi.Message) bool {
	isAdmin, err := h.panelUserService.IsAdmin(message.Chat.ID)
	if err != nil {
		h.reply(message.Chat.ID, "❌ Erro ao verificar permissões: "+err.Error())
		return false
	}
	if !isAdmin {
		h.reply(message.Chat.ID, "🚫 Comando disponível apenas para administradores.")
		return false
	}
	return true
}
