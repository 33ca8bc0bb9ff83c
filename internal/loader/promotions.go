package loader

import (
	"fmt"
	"strconv"
	"strings"

	"courier-metrics-bot/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Promotions workbook sheets.
const (
	sheetPromotions = "promocoes"
	sheetPhases     = "fases"
	sheetHourly     = "criterios_por_hora"
	sheetBrackets   = "faixas_de_rotas"
)

type PromotionsLoader struct {
	logger *logrus.Logger
}

func NewPromotionsLoader() *PromotionsLoader {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &PromotionsLoader{logger: logger}
}

// Load reads the promotions workbook and attaches each promotion's detail
// rows (phases, hourly criteria or route brackets) by promotion id.
func (l *PromotionsLoader) Load(path string) ([]models.Promotion, error) {
	l.logger.WithField("path", path).Info("Loading promotions workbook")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a planilha de promoções: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			l.logger.WithError(closeErr).Warn("Failed to close promotions workbook")
		}
	}()

	promoRows, err := sheetAsMaps(f, sheetPromotions)
	if err != nil {
		return nil, err
	}
	phaseRows, _ := sheetAsMaps(f, sheetPhases)
	hourlyRows, _ := sheetAsMaps(f, sheetHourly)
	bracketRows, _ := sheetAsMaps(f, sheetBrackets)

	promotions := make([]models.Promotion, 0, len(promoRows))
	for _, row := range promoRows {
		id := atoi(row["id"])
		start, okStart := parseDate(row["data_inicio"])
		end, okEnd := parseDate(row["data_fim"])
		if id == 0 || !okStart || !okEnd {
			continue
		}

		promo := models.Promotion{
			ID:        id,
			Name:      strings.TrimSpace(row["nome"]),
			Type:      strings.TrimSpace(row["tipo"]),
			StartDate: start,
			EndDate:   end,
		}

		switch promo.Type {
		case models.PromotionTypePhases:
			for _, ph := range phaseRows {
				if atoi(ph["id_promocao"]) != id {
					continue
				}
				phStart, _ := parseDate(ph["data_inicio"])
				phEnd, _ := parseDate(ph["data_fim"])
				promo.Phases = append(promo.Phases, models.PromotionPhase{
					Name:      strings.TrimSpace(ph["fase_nome"]),
					StartDate: phStart,
					EndDate:   phEnd,
					MinRoutes: atoi(ph["min_rotas"]),
				})
			}
		case models.PromotionTypeHourly:
			for _, cr := range hourlyRows {
				if atoi(cr["id_promocao"]) != id {
					continue
				}
				promo.Hourly = &models.HourlyCriteria{
					MinOnlinePct:  atof(cr["min_pct_online"]),
					MinAcceptance: atof(cr["min_aceitacao"]),
					MinCompletion: atof(cr["min_conclusao"]),
				}
				break
			}
		case models.PromotionTypeRouteBracket:
			for _, br := range bracketRows {
				if atoi(br["id_promocao"]) != id {
					continue
				}
				promo.Brackets = append(promo.Brackets, models.RouteBracket{
					MinRoutes: atoi(br["faixa_min"]),
					MaxRoutes: atoi(br["faixa_max"]),
					Reward:    atof(br["valor_premio"]),
				})
			}
		}

		promotions = append(promotions, promo)
	}

	l.logger.WithField("promotions", len(promotions)).Info("Promotions workbook loaded")
	return promotions, nil
}

// sheetAsMaps reads a sheet into one header-keyed map per data row.
func sheetAsMaps(f *excelize.File, sheet string) ([]map[string]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler a aba %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := headerIndex(rows[0])
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		m := make(map[string]string, len(cols))
		for name := range cols {
			m[name] = cell(row, cols, name)
		}
		out = append(out, m)
	}
	return out, nil
}

func atoi(value string) int {
	if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return int(f)
	}
	return 0
}

func atof(value string) float64 {
	if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return f
	}
	return 0
}
