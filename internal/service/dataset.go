package service

import (
	"fmt"
	"strings"
	"time"

	"courier-metrics-bot/internal/loader"
	"courier-metrics-bot/internal/models"
	"courier-metrics-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// DatasetService owns the loaded extract: it reloads the spreadsheet into
// the cache and hands immutable snapshots to the metric services. The
// snapshot a command works on never changes under it; a reload only affects
// later queries.
type DatasetService struct {
	repo           repository.ShiftRecordRepository
	extractLoader  *loader.ExtractLoader
	promoLoader    *loader.PromotionsLoader
	extractPath    string
	extractSheet   string
	promotionsPath string
	logger         *logrus.Logger
}

func NewDatasetService(
	repo repository.ShiftRecordRepository,
	extractLoader *loader.ExtractLoader,
	promoLoader *loader.PromotionsLoader,
	extractPath, extractSheet, promotionsPath string,
) *DatasetService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &DatasetService{
		repo:           repo,
		extractLoader:  extractLoader,
		promoLoader:    promoLoader,
		extractPath:    extractPath,
		extractSheet:   extractSheet,
		promotionsPath: promotionsPath,
		logger:         logger,
	}
}

// Reload reads the extract from disk and replaces the cached records.
// Returns the number of loaded rows.
func (s *DatasetService) Reload() (int, error) {
	records, err := s.extractLoader.Load(s.extractPath, s.extractSheet)
	if err != nil {
		return 0, err
	}

	if err := s.repo.ReplaceAll(records); err != nil {
		return 0, err
	}

	return len(records), nil
}

// EnsureLoaded reloads the extract only when the cache is empty, so the bot
// comes up with data without forcing a reload on every restart.
func (s *DatasetService) EnsureLoaded() (int, error) {
	count, err := s.repo.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return int(count), nil
	}
	return s.Reload()
}

// Snapshot returns every cached record, ordered by date.
func (s *DatasetService) Snapshot() ([]models.ShiftRecord, error) {
	return s.repo.GetAll()
}

// SnapshotMonth returns one month's records.
func (s *DatasetService) SnapshotMonth(year, month int) ([]models.ShiftRecord, error) {
	return s.repo.GetByMonth(year, month)
}

// SnapshotSince returns the records dated on or after the given day.
func (s *DatasetService) SnapshotSince(date time.Time) ([]models.ShiftRecord, error) {
	return s.repo.GetSince(date)
}

// CourierNames lists the distinct courier display names, alphabetically.
func (s *DatasetService) CourierNames() ([]string, error) {
	return s.repo.CourierNames()
}

// Years lists the extract's years, newest first.
func (s *DatasetService) Years() ([]int, error) {
	return s.repo.Years()
}

// Promotions loads the promotions workbook. It is read on demand: the file
// is small and edited out-of-band, so staleness matters more than I/O cost.
func (s *DatasetService) Promotions() ([]models.Promotion, error) {
	if s.promotionsPath == "" {
		return nil, fmt.Errorf("planilha de promoções não configurada")
	}
	return s.promoLoader.Load(s.promotionsPath)
}

// FormatPromotions renders the promotion list with each promotion's detail
// rows.
func (s *DatasetService) FormatPromotions(promotions []models.Promotion) string {
	if len(promotions) == 0 {
		return "📭 Nenhuma promoção cadastrada."
	}

	var b strings.Builder
	b.WriteString("🎁 Promoções:\n\n")
	for i := range promotions {
		p := &promotions[i]
		fmt.Fprintf(&b, "%d. %s (%s) – %s a %s\n",
			p.ID, p.Name, p.Type,
			p.StartDate.Format("02/01/2006"), p.EndDate.Format("02/01/2006"))

		switch p.Type {
		case models.PromotionTypePhases:
			for j := range p.Phases {
				ph := &p.Phases[j]
				fmt.Fprintf(&b, "   • %s: %s a %s, mínimo %d rotas\n",
					ph.Name, ph.StartDate.Format("02/01"), ph.EndDate.Format("02/01"), ph.MinRoutes)
			}
		case models.PromotionTypeHourly:
			if p.Hourly != nil {
				fmt.Fprintf(&b, "   • online≥%.0f%%, aceitação≥%.0f%%, conclusão≥%.0f%%\n",
					p.Hourly.MinOnlinePct, p.Hourly.MinAcceptance, p.Hourly.MinCompletion)
			}
		case models.PromotionTypeRouteBracket:
			for j := range p.Brackets {
				br := &p.Brackets[j]
				fmt.Fprintf(&b, "   • %d a %d rotas: R$ %.2f\n", br.MinRoutes, br.MaxRoutes, br.Reward)
			}
		}
	}

	return b.String()
}
