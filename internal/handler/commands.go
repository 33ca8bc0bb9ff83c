package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(message)
	case "help":
		h.sendHelpMessage(message)
	case "helpadmin":
		h.sendAdminHelpMessage(message)
	case "register":
		h.registerUser(message)
	case "myprofile":
		h.showProfile(message)
	case "deleteprofile":
		h.deleteProfile(message)

	// Consultas do painel (usuários cadastrados)
	case "couriers", "entregadores":
		h.listCouriers(message)
	case "report", "relatorio":
		h.sendNarrativeReport(message, args)
	case "simple", "simplificada":
		h.sendSimplifiedReport(message, args)
	case "custom", "customizado":
		h.sendCustomReport(message, args)
	case "alerts", "faltas":
		h.sendAbsenceAlerts(message)
	case "categories", "categorias":
		h.sendCategories(message, args)
	case "utr":
		h.sendUtr(message, args)
	case "utrpivot":
		h.sendUtrPivot(message, args)
	case "indicators", "indicadores":
		h.sendMonthlyIndicators(message)
	case "promos", "promocoes":
		h.sendPromotions(message)

	// Exportação CSV
	case "utrcsv":
		h.sendUtrCSV(message, args)
	case "categoriescsv", "categoriascsv":
		h.sendCategoriesCSV(message, args)

	// Administração
	case "reload", "atualizar":
		h.reloadExtract(message)
	case "allusers":
		h.showAllUsers(message)
	case "promote":
		h.promoteToAdmin(message, args)
	case "demote":
		h.demoteToClient(message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Comando desconhecido. Use /help para ver a lista de comandos.")
}

func (h *Handler) sendStartMessage(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, `📋 Painel de Entregadores

Acompanhe presença, horas realizadas, UTR e categorias dos entregadores direto pelo Telegram.

Use /register para se cadastrar e /help para ver os comandos.`)
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, `📖 Comandos disponíveis:

/register – cadastrar-se no painel
/myprofile – ver seu perfil
/deleteprofile – remover seu cadastro

/couriers – listar entregadores da base
/report <mês> <ano> <nome> – relatório completo do mês
/report <nome> – relatório de todo o histórico
/simple <mês> <ano> <nome> – versão simplificada (WhatsApp)
/custom <nome>; subpraca=...; turno=...; de=DD/MM/AAAA; ate=DD/MM/AAAA; dias=DD/MM/AAAA,... – relatório customizado
/alerts – entregadores com 4+ faltas consecutivas
/categories [mês ano] – classificação por categoria
/utr <mês> <ano> [turno] – UTR médio por dia
/utrpivot <mês> <ano> – UTR médio por entregador × turno
/indicators – indicadores gerais por mês
/promos – promoções vigentes

/utrcsv <mês> <ano> – baixar CSV do UTR diário
/categoriescsv [mês ano] – baixar CSV da classificação`)
}

func (h *Handler) sendAdminHelpMessage(message *tgbotapi.Message) {
	if !h.requireAdmin(message) {
		return
	}

	h.reply(message.Chat.ID, `👑 Comandos administrativos:

/reload – recarregar a planilha de dados
/allusers – listar usuários cadastrados
/promote <chat_id> – tornar usuário administrador
/demote <chat_id> – rebaixar administrador para cliente`)
}
