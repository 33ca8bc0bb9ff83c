// Package loader reads the activity extract and the promotions workbook
// (xlsx) into model slices. All derived columns (normalized name, month,
// year, parsed seconds) are filled here, so downstream code only ever sees
// complete immutable records.
package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"courier-metrics-bot/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Extract column headers, exactly as the ops spreadsheet names them.
const (
	colDate          = "data_do_periodo"
	colCourier       = "pessoa_entregadora"
	colPeriod        = "periodo"
	colSubArea       = "sub_praca"
	colTimeAbsolute  = "tempo_disponivel_absoluto"
	colTimeScaledPct = "tempo_disponivel_escalado"
	colOffered       = "numero_de_corridas_ofertadas"
	colAccepted      = "numero_de_corridas_aceitas"
	colRejected      = "numero_de_corridas_rejeitadas"
	colCompleted     = "numero_de_corridas_completadas"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01-02-06",
	"1/2/06 15:04",
}

type ExtractLoader struct {
	logger *logrus.Logger
}

func NewExtractLoader() *ExtractLoader {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ExtractLoader{logger: logger}
}

// Load reads one sheet of the activity extract. Rows without a courier name
// or a parseable date are skipped (and counted in the log); missing numeric
// cells become 0, per the panel's tolerant error model.
func (l *ExtractLoader) Load(path, sheet string) ([]models.ShiftRecord, error) {
	l.logger.WithFields(logrus.Fields{
		"path":  path,
		"sheet": sheet,
	}).Info("Loading activity extract")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a planilha %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.logger.WithError(closeErr).Warn("Failed to close extract workbook")
		}
	}()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler a aba %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("aba %q está vazia", sheet)
	}

	cols := headerIndex(rows[0])
	if _, ok := cols[colCourier]; !ok {
		return nil, fmt.Errorf("coluna obrigatória %q não encontrada", colCourier)
	}
	if _, ok := cols[colDate]; !ok {
		return nil, fmt.Errorf("coluna obrigatória %q não encontrada", colDate)
	}

	records := make([]models.ShiftRecord, 0, len(rows)-1)
	skipped := 0

	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, cols, colCourier))
		date, ok := parseDate(cell(row, cols, colDate))
		if name == "" || !ok {
			skipped++
			continue
		}

		record := models.ShiftRecord{
			CourierName:            name,
			Date:                   date,
			Period:                 strings.TrimSpace(cell(row, cols, colPeriod)),
			SubArea:                strings.TrimSpace(cell(row, cols, colSubArea)),
			AvailableTimeAbs:       strings.TrimSpace(cell(row, cols, colTimeAbsolute)),
			AvailableTimeScaledPct: parseNullableFloat(cell(row, cols, colTimeScaledPct)),
			RidesOffered:           parseCount(cell(row, cols, colOffered)),
			RidesAccepted:          parseCount(cell(row, cols, colAccepted)),
			RidesRejected:          parseCount(cell(row, cols, colRejected)),
			RidesCompleted:         parseCount(cell(row, cols, colCompleted)),
		}
		record.UpdateDerivedFields()

		if !record.IsValid() {
			skipped++
			continue
		}

		records = append(records, record)
	}

	l.logger.WithFields(logrus.Fields{
		"records": len(records),
		"skipped": skipped,
	}).Info("Activity extract loaded")

	return records, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseDate accepts the known text layouts plus Excel serial numbers.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

func parseCount(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}

func parseNullableFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}
