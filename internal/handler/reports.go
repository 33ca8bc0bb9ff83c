package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"courier-metrics-bot/internal/models"
	"courier-metrics-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const noDataMessage = "❌ Nenhum dado encontrado com os filtros aplicados."

// parseMonthYearName splits "8 2025 João Silva" into its parts. When the
// two leading numbers are absent the whole argument is the courier name and
// the report covers the full history.
func parseMonthYearName(args string) (month, year int, name string) {
	fields := strings.Fields(args)
	if len(fields) >= 2 {
		m, errM := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errM == nil && errY == nil && m >= 1 && m <= 12 && y >= 2000 && y <= 2100 {
			return m, y, strings.TrimSpace(strings.Join(fields[2:], " "))
		}
	}
	return 0, 0, strings.TrimSpace(args)
}

func parseMonthYear(args string) (month, year int, ok bool) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return 0, 0, false
	}
	m, errM := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if errM != nil || errY != nil || m < 1 || m > 12 || y < 2000 || y > 2100 {
		return 0, 0, false
	}
	return m, y, true
}

func (h *Handler) snapshot(chatID int64) ([]models.ShiftRecord, bool) {
	records, err := h.datasetService.Snapshot()
	if err != nil {
		h.reply(chatID, "❌ Erro ao ler a base de dados: "+err.Error())
		return nil, false
	}
	if len(records) == 0 {
		h.reply(chatID, "📭 Nenhum dado carregado. Peça a um administrador para rodar /reload.")
		return nil, false
	}
	return records, true
}

func (h *Handler) snapshotMonth(chatID int64, month, year int) ([]models.ShiftRecord, bool) {
	records, err := h.datasetService.SnapshotMonth(year, month)
	if err != nil {
		h.reply(chatID, "❌ Erro ao ler a base de dados: "+err.Error())
		return nil, false
	}
	if len(records) == 0 {
		h.reply(chatID, noDataMessage)
		return nil, false
	}
	return records, true
}

func (h *Handler) listCouriers(message *tgbotapi.Message) {
	if !h.requireUser(message) {
		return
	}

	courierNames, err := h.datasetService.CourierNames()
	if err != nil {
		h.reply(message.Chat.ID, "❌ Erro ao listar entregadores: "+err.Error())
		return
	}
	if len(courierNames) == 0 {
		h.reply(message.Chat.ID, "📭 Nenhum dado carregado.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔎 Entregadores na base (%d):\n\n", len(courierNames))
	for i, name := range courierNames {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}

	if years, err := h.datasetService.Years(); err == nil && len(years) > 0 {
		labels := make([]string, 0, len(years))
		for _, y := range years {
			labels = append(labels, strconv.Itoa(y))
		}
		fmt.Fprintf(&b, "\n📅 Anos na base: %s", strings.Join(labels, ", "))
	}
	h.reply(message.Chat.ID, b.String())
}

func (h *Handler) sendNarrativeReport(message *tgbotapi.Message, args string) {
	if !h.requireUser(message) {
		return
	}

	month, year, name := parseMonthYearName(args)
	if name == "" {
		h.reply(message.Chat.ID, "ℹ️ Use: /report <mês> <ano> <nome> ou /report <nome>")
		return
	}

	records, ok := h.snapshot(message.Chat.ID)
	if !ok {
		return
	}

	text := h.reportService.Narrative(records, name, month, year)
	if text == "" {
		h.reply(message.Chat.ID, noDataMessage)
		return
	}
	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendSimplifiedReport(message *tgbotapi.Message, args string) {
	if !h.requireUser(message) {
		return
	}

	month, year, name := parseMonthYearName(args)
	if name == "" || month == 0 {
		h.reply(message.Chat.ID, "ℹ️ Use: /simple <mês> <ano> <nome>")
		return
	}

	records, ok := h.snapshot(message.Chat.ID)
	if !ok {
		return
	}

	text := h.reportService.Simplified(records, name, month, year)
	if text == "" {
		h.reply(message.Chat.ID, noDataMessage)
		return
	}
	h.reply(message.Chat.ID, text)
}

// sendCustomReport parses "<nome>; subpraca=...; turno=...; de=...; ate=...;
// dias=..." and aggregates over the resulting slice.
func (h *Handler) sendCustomReport(message *tgbotapi.Message, args string) {
	if !h.requireUser(message) {
		return
	}

	opts, err := parseFilterOptions(args)
	if err != nil {
		h.reply(message.Chat.ID, "ℹ️ "+err.Error())
		return
	}

	records, ok := h.snapshot(message.Chat.ID)
	if !ok {
		return
	}

	filtered := h.reportService.Filter(records, opts)
	if len(filtered) == 0 {
		h.reply(message.Chat.ID, noDataMessage)
		return
	}

	text := h.reportService.Narrative(filtered, opts.CourierName, 0, 0)
	if text == "" {
		h.reply(message.Chat.ID, noDataMessage)
		return
	}
	h.reply(message.Chat.ID, text)
}

func parseFilterOptions(args string) (service.FilterOptions, error) {
	opts := service.FilterOptions{}
	if strings.TrimSpace(args) == "" {
		return opts, fmt.Errorf("use: /custom <nome>; subpraca=...; turno=...; de=DD/MM/AAAA; ate=DD/MM/AAAA; dias=DD/MM/AAAA,...")
	}

	for i, part := range strings.Split(args, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, found := strings.Cut(part, "=")
		if !found {
			if i == 0 {
				opts.CourierName = part
				continue
			}
			return opts, fmt.Errorf("filtro inválido: %q", part)
		}

		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "subpraca", "sub_praca":
			opts.SubArea = value
		case "turno", "periodo":
			opts.Period = value
		case "de":
			d, err := time.Parse("02/01/2006", value)
			if err != nil {
				return opts, fmt.Errorf("data inválida em de=: %q", value)
			}
			opts.StartDate = d
		case "ate", "até":
			d, err := time.Parse("02/01/2006", value)
			if err != nil {
				return opts, fmt.Errorf("data inválida em ate=: %q", value)
			}
			opts.EndDate = d
		case "dias":
			for _, ds := range strings.Split(value, ",") {
				d, err := time.Parse("02/01/2006", strings.TrimSpace(ds))
				if err != nil {
					return opts, fmt.Errorf("data inválida em dias=: %q", ds)
				}
				opts.Dates = append(opts.Dates, d)
			}
		default:
			return opts, fmt.Errorf("filtro desconhecido: %q", key)
		}
	}

	if opts.CourierName == "" {
		return opts, fmt.Errorf("informe o nome do entregador antes dos filtros")
	}

	return opts, nil
}

func (h *Handler) sendAbsenceAlerts(message *tgbotapi.Message) {
	if !h.requireUser(message) {
		return
	}

	// The streak walk only looks at the trailing 30 days, so load just that.
	asOf := time.Now()
	records, err := h.datasetService.SnapshotSince(asOf.AddDate(0, 0, -30))
	if err != nil {
		h.reply(message.Chat.ID, "❌ Erro ao ler a base de dados: "+err.Error())
		return
	}

	alerts := h.attendanceService.FlagConsecutiveAbsences(records, asOf)
	text := h.reportService.FormatAbsenceAlerts(alerts)
	if len(alerts) > 0 {
		text = "⚠️ Entregadores com faltas consecutivas:\n\n" + text
	}
	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendCategories(message *tgbotapi.Message, args string) {
	if !h.requireUser(message) {
		return
	}

	month, year, _ := parseMonthYear(args)

	records, ok := h.snapshot(message.Chat.ID)
	if !ok {
		return
	}

	rows := h.classifierService.ClassifyAll(records, month, year)
	if len(rows) == 0 {
		h.reply(message.Chat.ID, noDataMessage)
		return
	}

	counts := h.classifierService.CategoryCounts(rows)
	var b strings.Builder
	b.WriteString("📚 Categorias de Entregadores\n\n")
	fmt.Fprintf(&b, "🚀 Premium: %d  🎯 Conectado: %d  👍 Casual: %d  ↩ Flutuante: %d\n\n",
		counts[models.CategoryPremium], counts[models.CategoryConectado],
		counts[models.CategoryCasual], counts[models.CategoryFlutuante])

	for i := range rows {
		row := &rows[i]
		fmt.Fprintf(&b, "%d. %s – %s (%d/3)\n   ⏱ %s  👍 %.1f%%  🏁 %.1f%%  [%s]\n",
			i+1, row.CourierName, row.Category, row.CriteriaMet,
			row.SupplyHoursHMS, row.AcceptancePct, row.CompletionPct, row.CriteriaDesc)
		if b.Len() > 3500 {
			fmt.Fprintf(&b, "\n… lista truncada (%d entregadores). Use /categoriescsv para a tabela completa.", len(rows))
			break
		}
	}
	h.reply(message.Chat.ID, b.String())
}

func (h *Handler) sendUtr(message *tgbotapi.Message, args string) {
	if !h.requireUser(message) {
		return
	}

	month, year, ok := parseMonthYear(args)
	if !ok {
		h.reply(message.Chat.ID, "ℹ️ Use: /utr <mês> <ano> [turno]")
		return
	}
	period := strings.TrimSpace(strings.Join(strings.Fields(args)[2:], " "))

	records, okSnap := h.snapshotMonth(message.Chat.ID, month, year)
	if !okSnap {
		return
	}

	base := h.utrService.Daily(records, month, year)
	if len(base) == 0 {
		h.reply(message.Chat.ID, noDataMessage)
		return
	}

	if period != "" {
		filtered := base[:0:0]
		for i := range base {
			if base[i].Period == period {
				filtered = append(filtered, base[i])
			}
		}
		base = filtered
		if len(base) == 0 {
			h.reply(message.Chat.ID, "❌ Sem dados para o turno selecionado.")
			return
		}
	}

	daily := h.utrService.DailyAverages(base)

	var b strings.Builder
	title := "todos os turnos"
	if period != "" {
		title = period
	}
	fmt.Fprintf(&b, "🧭 UTR médio por dia – %02d/%d • %s\n\n", month, year, title)

	total := 0.0
	for i := range daily {
		fmt.Fprintf(&b, "dia %02d: %.2f\n", daily[i].Day.Day(), daily[i].Mean)
		total += daily[i].Mean
	}
	fmt.Fprintf(&b, "\n📌 Média UTR no mês: %.2f", total/float64(len(daily)))

	h.reply(message.Chat.ID, b.String())
}

func (h *Handler) sendUtrPivot(message *tgbotapi.Message, args string) {
	if !h.requireUser(message) {
		return
	}

	month, year, ok := parseMonthYear(args)
	if !ok {
		h.reply(message.Chat.ID, "ℹ️ Use: /utrpivot <mês> <ano>")
		return
	}

	records, okSnap := h.snapshotMonth(message.Chat.ID, month, year)
	if !okSnap {
		return
	}

	pivot := h.utrService.Pivot(records, month, year)
	if len(pivot.Rows) == 0 {
		h.reply(message.Chat.ID, noDataMessage)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🧭 UTR médio por entregador × turno – %02d/%d\n\n", month, year)
	for i := range pivot.Rows {
		row := &pivot.Rows[i]
		parts := make([]string, 0, len(pivot.Periods))
		for _, p := range pivot.Periods {
			parts = append(parts, fmt.Sprintf("%s %.2f", p, row.Values[p]))
		}
		fmt.Fprintf(&b, "%d. %s – média %.2f (%s)\n", i+1, row.CourierName, row.Mean, strings.Join(parts, ", "))
		if b.Len() > 3500 {
			fmt.Fprintf(&b, "\n… lista truncada (%d entregadores). Use /utrcsv para a tabela completa.", len(pivot.Rows))
			break
		}
	}
	h.reply(message.Chat.ID, b.String())
}

func (h *Handler) sendMonthlyIndicators(message *tgbotapi.Message) {
	if !h.requireUser(message) {
		return
	}

	records, ok := h.snapshot(message.Chat.ID)
	if !ok {
		return
	}

	indicators := h.reportService.MonthlyIndicators(records)
	h.reply(message.Chat.ID, h.reportService.FormatMonthlyIndicators(indicators))
}

func (h *Handler) sendPromotions(message *tgbotapi.Message) {
	if !h.requireUser(message) {
		return
	}

	promotions, err := h.datasetService.Promotions()
	if err != nil {
		h.reply(message.Chat.ID, "❌ "+err.Error())
		return
	}

	h.reply(message.Chat.ID, h.datasetService.FormatPromotions(promotions))
}
