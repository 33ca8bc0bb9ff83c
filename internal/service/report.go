package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"courier-metrics-bot/internal/models"
	"courier-metrics-bot/pkg/names"
	"courier-metrics-bot/pkg/timefmt"

	"github.com/sirupsen/logrus"
)

var monthsPT = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// ReportService renders the panel's text reports over record snapshots.
// Empty filter results come back as the empty string; the handler only ever
// branches on empty vs non-empty.
type ReportService struct {
	metrics *MetricsService
	utr     *UtrService
	logger  *logrus.Logger
}

func NewReportService(metrics *MetricsService, utr *UtrService) *ReportService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ReportService{
		metrics: metrics,
		utr:     utr,
		logger:  logger,
	}
}

// FilterOptions narrows a snapshot before aggregation. Zero values mean "no
// filter"; Dates wins over the Start/End range when both are set.
type FilterOptions struct {
	CourierName string
	SubArea     string
	Period      string
	StartDate   time.Time
	EndDate     time.Time
	Dates       []time.Time
}

// Filter applies the options to a snapshot and returns a fresh slice; the
// input is never modified.
func (s *ReportService) Filter(records []models.ShiftRecord, opts FilterOptions) []models.ShiftRecord {
	nameNorm := names.Normalize(opts.CourierName)

	wantedDays := make(map[time.Time]struct{}, len(opts.Dates))
	for _, d := range opts.Dates {
		wantedDays[truncateDay(d)] = struct{}{}
	}

	out := make([]models.ShiftRecord, 0, len(records))
	for i := range records {
		rec := &records[i]
		if nameNorm != "" && rec.CourierNameNorm != nameNorm {
			continue
		}
		if opts.SubArea != "" && rec.SubArea != opts.SubArea {
			continue
		}
		if opts.Period != "" && rec.Period != opts.Period {
			continue
		}
		if len(wantedDays) > 0 {
			if _, ok := wantedDays[rec.Day()]; !ok {
				continue
			}
		} else if !opts.StartDate.IsZero() && !opts.EndDate.IsZero() {
			day := rec.Day()
			if day.Before(truncateDay(opts.StartDate)) || day.After(truncateDay(opts.EndDate)) {
				continue
			}
		}
		out = append(out, *rec)
	}
	return out
}

// Narrative builds the full per-courier report: expected days, presences,
// absences, online time, shift count, ride counts and rates. With month and
// year > 0 the slice is restricted to that month first. Returns "" when
// nothing matches.
func (s *ReportService) Narrative(records []models.ShiftRecord, courierName string, month, year int) string {
	data := s.Filter(records, FilterOptions{CourierName: courierName})
	if month > 0 && year > 0 {
		data = filterMonth(data, month, year)
	}
	if len(data) == 0 {
		return ""
	}

	m := s.metrics.Aggregate(data)
	onlinePct := s.metrics.OnlineTimePct(data)
	expected, presences, absences := s.metrics.ExpectedDays(data, month, year)

	var periodLabel string
	if month > 0 && year > 0 {
		periodLabel = fmt.Sprintf("%s/%d", monthsPT[month-1], year)
	} else {
		minDay, maxDay := s.metrics.dateSpan(data)
		periodLabel = fmt.Sprintf("%s a %s", minDay.Format("02/01/2006"), maxDay.Format("02/01/2006"))
	}

	return fmt.Sprintf(`📋 %s – %s

📆 Dias esperados: %d
✅ Presenças: %d
❌ Faltas: %d

⏱️ Tempo online: %.1f%%

🧾 Turnos realizados: %d

🚗 Corridas:
• 📦 Ofertadas: %d
• 👍 Aceitas: %d (%.1f%%)
• 👎 Rejeitadas: %d (%.1f%%)
• 🏁 Completas: %d (%.1f%%)
`,
		courierName, periodLabel,
		expected, presences, absences,
		onlinePct,
		m.Shifts,
		m.RidesOffered,
		m.RidesAccepted, m.AcceptancePct,
		m.RidesRejected, m.RejectionPct,
		m.RidesCompleted, m.CompletionPct,
	)
}

// Simplified is the short WhatsApp-style variant: month/year required, no
// attendance block. Returns "" when nothing matches.
func (s *ReportService) Simplified(records []models.ShiftRecord, courierName string, month, year int) string {
	if month < 1 || month > 12 || year <= 0 {
		return ""
	}

	data := filterMonth(s.Filter(records, FilterOptions{CourierName: courierName}), month, year)
	if len(data) == 0 {
		return ""
	}

	m := s.metrics.Aggregate(data)
	onlinePct := s.metrics.OnlineTimePct(data)

	return fmt.Sprintf(`%s – %s/%d

Tempo online: %.1f%%

Turnos realizados: %d

Corridas:
* Ofertadas: %d
* Aceitas: %d (%.1f%%)
* Rejeitadas: %d (%.1f%%)
* Completas: %d (%.1f%%)
`,
		courierName, monthsPT[month-1], year,
		onlinePct,
		m.Shifts,
		m.RidesOffered,
		m.RidesAccepted, m.AcceptancePct,
		m.RidesRejected, m.RejectionPct,
		m.RidesCompleted, m.CompletionPct,
	)
}

// FormatAbsenceAlerts renders absence alerts one per line, as pushed to the
// ops chat.
func (s *ReportService) FormatAbsenceAlerts(alerts []models.AbsenceAlert) string {
	if len(alerts) == 0 {
		return "✅ Nenhum entregador ativo com faltas consecutivas."
	}

	var b strings.Builder
	for i := range alerts {
		fmt.Fprintf(&b, "• %s – %d dias consecutivos ausente (última presença: %s)\n",
			alerts[i].CourierName, alerts[i].Streak, alerts[i].LastPresence.Format("02/01"))
	}
	return b.String()
}

// MonthlyIndicators aggregates the whole snapshot into the per-month
// indicator series: ride counts, hours, rates against offered rides, and
// the monthly UTR mean (mean of daily means, aligned with the UTR view).
func (s *ReportService) MonthlyIndicators(records []models.ShiftRecord) []models.MonthlyIndicator {
	if len(records) == 0 {
		return []models.MonthlyIndicator{}
	}

	type monthKey struct {
		year  int
		month int
	}
	byMonth := make(map[monthKey][]models.ShiftRecord)
	for i := range records {
		key := monthKey{year: records[i].Year, month: records[i].Month}
		byMonth[key] = append(byMonth[key], records[i])
	}

	utrByMonth := make(map[monthKey]float64)
	for _, avg := range s.utr.MonthlyAverages(s.utr.Daily(records, 0, 0)) {
		utrByMonth[monthKey{year: avg.Year, month: avg.Month}] = avg.Mean
	}

	out := make([]models.MonthlyIndicator, 0, len(byMonth))
	for key, group := range byMonth {
		m := s.metrics.Aggregate(group)
		ind := models.MonthlyIndicator{
			Year:           key.year,
			Month:          key.month,
			RidesOffered:   m.RidesOffered,
			RidesAccepted:  m.RidesAccepted,
			RidesRejected:  m.RidesRejected,
			RidesCompleted: m.RidesCompleted,
			SupplyHours:    m.SupplyHours,
			UtrMean:        utrByMonth[key],
		}
		if ind.RidesOffered > 0 {
			ind.AcceptancePct = round1(float64(ind.RidesAccepted) / float64(ind.RidesOffered) * 100)
			ind.RejectionPct = round1(float64(ind.RidesRejected) / float64(ind.RidesOffered) * 100)
			ind.CompletionPct = round1(float64(ind.RidesCompleted) / float64(ind.RidesOffered) * 100)
		}
		out = append(out, ind)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})

	return out
}

// FormatMonthlyIndicators renders the indicator series as a compact table.
// Hours are shown both as a decimal and as HH:MM:SS.
func (s *ReportService) FormatMonthlyIndicators(indicators []models.MonthlyIndicator) string {
	if len(indicators) == 0 {
		return "📭 Nenhum dado carregado."
	}

	var b strings.Builder
	b.WriteString("📊 Indicadores gerais por mês:\n\n")
	for i := range indicators {
		ind := &indicators[i]
		fmt.Fprintf(&b, "📆 %s/%d\n", monthsPT[ind.Month-1], ind.Year)
		fmt.Fprintf(&b, "• 📦 Ofertadas: %d (UTR médio %.2f)\n", ind.RidesOffered, ind.UtrMean)
		fmt.Fprintf(&b, "• 👍 Aceitas: %d (%.1f%%)\n", ind.RidesAccepted, ind.AcceptancePct)
		fmt.Fprintf(&b, "• 👎 Rejeitadas: %d (%.1f%%)\n", ind.RidesRejected, ind.RejectionPct)
		fmt.Fprintf(&b, "• 🏁 Completas: %d (%.1f%%)\n", ind.RidesCompleted, ind.CompletionPct)
		fmt.Fprintf(&b, "• ⏱️ Horas realizadas: %.1fh (%s)\n\n", ind.SupplyHours, timefmt.HoursToHMS(ind.SupplyHours))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
