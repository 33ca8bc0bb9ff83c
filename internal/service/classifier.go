package service

import (
	"sort"
	"strconv"
	"strings"

	"courier-metrics-bot/internal/models"
	"courier-metrics-bot/pkg/timefmt"

	"github.com/sirupsen/logrus"
)

// tierThresholds is one tier's own criteria triple. Tiers are re-tested from
// scratch: failing Premium never carries partial credit down, the courier is
// measured again against the next tier's (lower) bars.
type tierThresholds struct {
	supplyHours   float64
	completionPct float64
	acceptancePct float64
}

var (
	premiumThresholds   = tierThresholds{supplyHours: 120, completionPct: 95, acceptancePct: 65}
	conectadoThresholds = tierThresholds{supplyHours: 60, completionPct: 80, acceptancePct: 45}
	casualThresholds    = tierThresholds{supplyHours: 20, completionPct: 60, acceptancePct: 30}
)

// ClassifierService assigns the Premium/Conectado/Casual/Flutuante tier from
// supply hours, completion rate and acceptance rate.
type ClassifierService struct {
	metrics *MetricsService
	logger  *logrus.Logger
}

func NewClassifierService(metrics *MetricsService) *ClassifierService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ClassifierService{
		metrics: metrics,
		logger:  logger,
	}
}

func (t tierThresholds) hits(sh, completionPct, acceptancePct float64) [3]bool {
	return [3]bool{
		sh >= t.supplyHours,
		completionPct >= t.completionPct,
		acceptancePct >= t.acceptancePct,
	}
}

func countHits(hits [3]bool) int {
	n := 0
	for _, h := range hits {
		if h {
			n++
		}
	}
	return n
}

func describeHits(hits [3]bool, t tierThresholds) string {
	parts := make([]string, 0, 3)
	if hits[0] {
		parts = append(parts, "SH≥"+strconv.FormatFloat(t.supplyHours, 'f', -1, 64))
	}
	if hits[1] {
		parts = append(parts, "comp≥"+strconv.FormatFloat(t.completionPct, 'f', -1, 64)+"%")
	}
	if hits[2] {
		parts = append(parts, "acc≥"+strconv.FormatFloat(t.acceptancePct, 'f', -1, 64)+"%")
	}
	return strings.Join(parts, ", ")
}

// Classify evaluates the tiers in strict priority order. Premium needs all
// three of its criteria; Conectado at least two of its own; Casual at least
// one of its own; Flutuante is the fallback.
func (s *ClassifierService) Classify(sh, completionPct, acceptancePct float64) (category string, criteriaMet int, description string) {
	if hp := premiumThresholds.hits(sh, completionPct, acceptancePct); countHits(hp) == 3 {
		return models.CategoryPremium, 3, "SH≥120, comp≥95%, acc≥65%"
	}

	if hc := conectadoThresholds.hits(sh, completionPct, acceptancePct); countHits(hc) >= 2 {
		return models.CategoryConectado, countHits(hc), describeHits(hc, conectadoThresholds)
	}

	if hc := casualThresholds.hits(sh, completionPct, acceptancePct); countHits(hc) >= 1 {
		return models.CategoryCasual, countHits(hc), describeHits(hc, casualThresholds)
	}

	return models.CategoryFlutuante, 0, "nenhum critério"
}

// ClassifyAll groups the slice by courier (optionally restricted to one
// month/year when both are > 0), classifies each one, and returns rows
// sorted by tier rank, then supply hours descending. Couriers without rows
// in the period are simply absent; they are not reported as Flutuante.
func (s *ClassifierService) ClassifyAll(records []models.ShiftRecord, month, year int) []models.DriverCategory {
	if month > 0 && year > 0 {
		records = filterMonth(records, month, year)
	}
	if len(records) == 0 {
		return []models.DriverCategory{}
	}

	groups := make(map[string][]models.ShiftRecord)
	for i := range records {
		key := records[i].CourierName
		groups[key] = append(groups[key], records[i])
	}

	rows := make([]models.DriverCategory, 0, len(groups))
	for courierName, group := range groups {
		m := s.metrics.Aggregate(group)
		category, met, desc := s.Classify(m.SupplyHours, m.CompletionPct, m.AcceptancePct)
		rows = append(rows, models.DriverCategory{
			CourierName:    courierName,
			SupplyHours:    m.SupplyHours,
			SupplyHoursHMS: timefmt.HoursToHMS(m.SupplyHours),
			AcceptancePct:  m.AcceptancePct,
			CompletionPct:  m.CompletionPct,
			RidesOffered:   m.RidesOffered,
			RidesAccepted:  m.RidesAccepted,
			RidesCompleted: m.RidesCompleted,
			Category:       category,
			CriteriaMet:    met,
			CriteriaDesc:   desc,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		ri, rj := models.CategoryRank(rows[i].Category), models.CategoryRank(rows[j].Category)
		if ri != rj {
			return ri < rj
		}
		if rows[i].SupplyHours != rows[j].SupplyHours {
			return rows[i].SupplyHours > rows[j].SupplyHours
		}
		return rows[i].CourierName < rows[j].CourierName
	})

	s.logger.WithFields(logrus.Fields{
		"couriers": len(rows),
		"month":    month,
		"year":     year,
	}).Debug("Classified couriers")

	return rows
}

// CategoryCounts tallies the classification table per tier, in rank order.
func (s *ClassifierService) CategoryCounts(rows []models.DriverCategory) map[string]int {
	counts := map[string]int{
		models.CategoryPremium:   0,
		models.CategoryConectado: 0,
		models.CategoryCasual:    0,
		models.CategoryFlutuante: 0,
	}
	for i := range rows {
		counts[rows[i].Category]++
	}
	return counts
}

func filterMonth(records []models.ShiftRecord, month, year int) []models.ShiftRecord {
	out := make([]models.ShiftRecord, 0, len(records))
	for i := range records {
		if records[i].Month == month && records[i].Year == year {
			out = append(out, records[i])
		}
	}
	return out
}
