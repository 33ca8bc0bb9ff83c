package service

import (
	"math"
	"time"

	"courier-metrics-bot/internal/models"
	"courier-metrics-bot/pkg/timefmt"

	"github.com/sirupsen/logrus"
)

// MetricsService aggregates shift records into per-courier period metrics.
// Every method is a pure function over the snapshot it receives; nothing is
// cached or mutated, so calls are idempotent and safe to repeat.
type MetricsService struct {
	logger *logrus.Logger
}

func NewMetricsService() *MetricsService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &MetricsService{logger: logger}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Aggregate sums ride counts over any filtered slice and derives the three
// rates. Rates divide by zero as 0.0, never NaN; an empty slice yields the
// zero-valued metrics.
func (s *MetricsService) Aggregate(records []models.ShiftRecord) models.DriverPeriodMetrics {
	m := models.DriverPeriodMetrics{}
	if len(records) == 0 {
		return m
	}

	m.CourierName = records[0].CourierName
	m.Shifts = len(records)

	for i := range records {
		m.RidesOffered += records[i].RidesOffered
		m.RidesAccepted += records[i].RidesAccepted
		m.RidesRejected += records[i].RidesRejected
		m.RidesCompleted += records[i].RidesCompleted
	}

	if m.RidesOffered > 0 {
		m.AcceptancePct = round1(float64(m.RidesAccepted) / float64(m.RidesOffered) * 100)
		m.RejectionPct = round1(float64(m.RidesRejected) / float64(m.RidesOffered) * 100)
	}
	if m.RidesAccepted > 0 {
		m.CompletionPct = round1(float64(m.RidesCompleted) / float64(m.RidesAccepted) * 100)
	}

	m.SupplyHours = s.SupplyHours(records)
	m.SupplyHoursHMS = timefmt.HoursToHMS(m.SupplyHours)

	return m
}

// supplyHoursRaw sums the codec-parsed availability of every record, in
// hours, without rounding.
func (s *MetricsService) supplyHoursRaw(records []models.ShiftRecord) float64 {
	seconds := 0
	for i := range records {
		seconds += records[i].AvailableTimeSec
	}
	return float64(seconds) / 3600.0
}

// SupplyHours is the monthly-classification variant: 1 decimal.
func (s *MetricsService) SupplyHours(records []models.ShiftRecord) float64 {
	return round1(s.supplyHoursRaw(records))
}

// SupplyHoursDaily is the daily-UTR variant: 2 decimals. The two precisions
// are intentionally different and must stay that way.
func (s *MetricsService) SupplyHoursDaily(records []models.ShiftRecord) float64 {
	return round2(s.supplyHoursRaw(records))
}

// OnlineTimePct is the mean of the scaled-availability percentage over rows
// that carry one, divided by 100 and rounded to 1 decimal. 0.0 when no row
// has the column.
func (s *MetricsService) OnlineTimePct(records []models.ShiftRecord) float64 {
	sum := 0.0
	n := 0
	for i := range records {
		if records[i].AvailableTimeScaledPct == nil {
			continue
		}
		sum += *records[i].AvailableTimeScaledPct
		n++
	}
	if n == 0 {
		return 0.0
	}
	return round1(sum / float64(n) / 100)
}

// Presences counts the distinct calendar days present in the slice.
func (s *MetricsService) Presences(records []models.ShiftRecord) int {
	days := make(map[time.Time]struct{}, len(records))
	for i := range records {
		days[records[i].Day()] = struct{}{}
	}
	return len(days)
}

// ExpectedDays returns the expected/present/absent day counts for a slice.
// With month and year set, expected is the month's calendar length;
// otherwise it is the span between the slice's first and last date,
// inclusive. Absences are not clamped: a negative value means the data spans
// fewer days than it has presences, which is a data-quality signal.
func (s *MetricsService) ExpectedDays(records []models.ShiftRecord, month, year int) (expected, presences, absences int) {
	presences = s.Presences(records)
	if presences == 0 {
		return 0, 0, 0
	}

	if month > 0 && year > 0 {
		expected = time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	} else {
		minDay, maxDay := s.dateSpan(records)
		expected = int(maxDay.Sub(minDay).Hours()/24) + 1
	}

	absences = expected - presences
	return expected, presences, absences
}

func (s *MetricsService) dateSpan(records []models.ShiftRecord) (minDay, maxDay time.Time) {
	for i := range records {
		d := records[i].Day()
		if minDay.IsZero() || d.Before(minDay) {
			minDay = d
		}
		if maxDay.IsZero() || d.After(maxDay) {
			maxDay = d
		}
	}
	return minDay, maxDay
}
