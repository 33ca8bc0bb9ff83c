package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CSV exports follow the Brazilian spreadsheet convention: semicolon field
// separator and comma as the decimal mark, so Excel opens them unmangled.

func decimalComma(value float64, decimals int) string {
	return strings.ReplaceAll(strconv.FormatFloat(value, 'f', decimals, 64), ".", ",")
}

func buildCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (h *Handler) sendCSV(chatID int64, name string, header []string, rows [][]string) {
	data, err := buildCSV(header, rows)
	if err != nil {
		h.reply(chatID, "❌ Erro ao gerar o CSV: "+err.Error())
		return
	}

	if err := h.client.SendDocument(chatID, name, data); err != nil {
		h.logger.WithError(err).Error("Failed to send CSV")
		h.reply(chatID, "❌ Erro ao enviar o arquivo.")
	}
}

func (h *Handler) sendUtrCSV(message *tgbotapi.Message, args string) {
	if !h.requireUser(message) {
		return
	}

	month, year, ok := parseMonthYear(args)
	if !ok {
		h.reply(message.Chat.ID, "ℹ️ Use: /utrcsv <mês> <ano>")
		return
	}

	records, okSnap := h.snapshotMonth(message.Chat.ID, month, year)
	if !okSnap {
		return
	}

	base := h.utrService.Daily(records, month, year)
	if len(base) == 0 {
		h.reply(message.Chat.ID, noDataMessage)
		return
	}

	rows := make([][]string, 0, len(base))
	for i := range base {
		rec := &base[i]
		rows = append(rows, []string{
			rec.Date.Format("02/01/2006"),
			rec.CourierName,
			rec.Period,
			rec.SupplyHoursHMS,
			strconv.Itoa(rec.RidesOffered),
			decimalComma(rec.Utr, 2),
		})
	}

	name := fmt.Sprintf("utr_%04d-%02d.csv", year, month)
	h.sendCSV(message.Chat.ID, name,
		[]string{"data", "pessoa_entregadora", "periodo", "tempo_disponivel", "corridas_ofertadas", "utr"},
		rows)
}

func (h *Handler) sendCategoriesCSV(message *tgbotapi.Message, args string) {
	if !h.requireUser(message) {
		return
	}

	month, year, _ := parseMonthYear(args)

	records, ok := h.snapshot(message.Chat.ID)
	if !ok {
		return
	}

	table := h.classifierService.ClassifyAll(records, month, year)
	if len(table) == 0 {
		h.reply(message.Chat.ID, noDataMessage)
		return
	}

	rows := make([][]string, 0, len(table))
	for i := range table {
		row := &table[i]
		rows = append(rows, []string{
			row.CourierName,
			row.Category,
			row.SupplyHoursHMS,
			decimalComma(row.SupplyHours, 1),
			decimalComma(row.AcceptancePct, 1),
			decimalComma(row.CompletionPct, 1),
			strconv.Itoa(row.RidesOffered),
			strconv.Itoa(row.RidesAccepted),
			strconv.Itoa(row.RidesCompleted),
			strconv.Itoa(row.CriteriaMet),
			row.CriteriaDesc,
		})
	}

	name := "categorias.csv"
	if month > 0 && year > 0 {
		name = fmt.Sprintf("categorias_%04d-%02d.csv", year, month)
	}
	h.sendCSV(message.Chat.ID, name,
		[]string{
			"pessoa_entregadora", "categoria", "tempo_disponivel", "supply_hours",
			"aceitacao_pct", "conclusao_pct", "ofertadas", "aceitas", "completadas",
			"criterios_atingidos", "criterios",
		},
		rows)
}
