package service

import (
	"sort"
	"time"

	"courier-metrics-bot/internal/models"
	"courier-metrics-bot/pkg/timefmt"

	"github.com/sirupsen/logrus"
)

// UtrService computes the utilization rate: rides offered per supply hour,
// grouped by courier × shift period × calendar day.
type UtrService struct {
	metrics *MetricsService
	logger  *logrus.Logger
}

func NewUtrService(metrics *MetricsService) *UtrService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &UtrService{
		metrics: metrics,
		logger:  logger,
	}
}

type utrKey struct {
	courier string
	period  string
	day     time.Time
}

// Daily computes one UtrRecord per (courier, shift period, day), optionally
// restricted to one month/year when both are > 0. The division uses the raw
// hour total; the published SupplyHours and Utr are rounded to 2 decimals.
// Zero hours yields UTR 0.0. Output is sorted by day ascending, then UTR
// descending (display tie-break only).
func (s *UtrService) Daily(records []models.ShiftRecord, month, year int) []models.UtrRecord {
	if month > 0 && year > 0 {
		records = filterMonth(records, month, year)
	}
	if len(records) == 0 {
		return []models.UtrRecord{}
	}

	groups := make(map[utrKey][]models.ShiftRecord)
	displayName := make(map[utrKey]string)
	for i := range records {
		rec := &records[i]
		period := rec.Period
		if period == "" {
			period = models.NoPeriod
		}
		key := utrKey{courier: rec.CourierNameNorm, period: period, day: rec.Day()}
		groups[key] = append(groups[key], *rec)
		if _, ok := displayName[key]; !ok {
			displayName[key] = rec.CourierName
		}
	}

	out := make([]models.UtrRecord, 0, len(groups))
	for key, group := range groups {
		shRaw := s.metrics.supplyHoursRaw(group)
		offered := 0
		for i := range group {
			offered += group[i].RidesOffered
		}

		utr := 0.0
		if shRaw > 0 {
			utr = float64(offered) / shRaw
		}

		out = append(out, models.UtrRecord{
			Date:           key.day,
			CourierName:    displayName[key],
			Period:         key.period,
			SupplyHoursHMS: timefmt.HoursToHMS(shRaw),
			SupplyHours:    round2(shRaw),
			RidesOffered:   offered,
			Utr:            round2(utr),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Utr != out[j].Utr {
			return out[i].Utr > out[j].Utr
		}
		if out[i].CourierName != out[j].CourierName {
			return out[i].CourierName < out[j].CourierName
		}
		return out[i].Period < out[j].Period
	})

	s.logger.WithFields(logrus.Fields{
		"rows":  len(out),
		"month": month,
		"year":  year,
	}).Debug("Computed daily UTR")

	return out
}

// Pivot builds the courier × shift-period table of mean UTR from the daily
// rows. Missing combinations fill as 0.0 and count toward the row mean, as
// the panel always shows the full period grid. Rows are sorted by their
// overall mean, best first.
func (s *UtrService) Pivot(records []models.ShiftRecord, month, year int) models.UtrPivot {
	base := s.Daily(records, month, year)
	if len(base) == 0 {
		return models.UtrPivot{Periods: []string{}, Rows: []models.UtrPivotRow{}}
	}

	periodSet := make(map[string]struct{})
	type cellAgg struct {
		sum float64
		n   int
	}
	cells := make(map[string]map[string]*cellAgg)

	for i := range base {
		rec := &base[i]
		periodSet[rec.Period] = struct{}{}
		row, ok := cells[rec.CourierName]
		if !ok {
			row = make(map[string]*cellAgg)
			cells[rec.CourierName] = row
		}
		agg, ok := row[rec.Period]
		if !ok {
			agg = &cellAgg{}
			row[rec.Period] = agg
		}
		agg.sum += rec.Utr
		agg.n++
	}

	periods := make([]string, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	rows := make([]models.UtrPivotRow, 0, len(cells))
	for courierName, row := range cells {
		values := make(map[string]float64, len(periods))
		total := 0.0
		for _, p := range periods {
			v := 0.0
			if agg, ok := row[p]; ok && agg.n > 0 {
				v = round2(agg.sum / float64(agg.n))
			}
			values[p] = v
			total += v
		}
		rows = append(rows, models.UtrPivotRow{
			CourierName: courierName,
			Values:      values,
			Mean:        round2(total / float64(len(periods))),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Mean != rows[j].Mean {
			return rows[i].Mean > rows[j].Mean
		}
		return rows[i].CourierName < rows[j].CourierName
	})

	return models.UtrPivot{Periods: periods, Rows: rows}
}

// DailyAverages collapses daily UTR rows to one mean per calendar day.
func (s *UtrService) DailyAverages(base []models.UtrRecord) []models.DailyUtrAverage {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for i := range base {
		day := base[i].Date
		sums[day] += base[i].Utr
		counts[day]++
	}

	out := make([]models.DailyUtrAverage, 0, len(sums))
	for day, sum := range sums {
		out = append(out, models.DailyUtrAverage{
			Day:  day,
			Mean: round2(sum / float64(counts[day])),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})

	return out
}

// MonthlyAverages rolls daily averages up to months as the mean of the
// per-day means, NOT a ride-weighted offered/hours ratio. The indicator
// panel depends on this matching the daily UTR view exactly.
func (s *UtrService) MonthlyAverages(base []models.UtrRecord) []models.MonthlyUtrAverage {
	daily := s.DailyAverages(base)

	type monthKey struct {
		year  int
		month int
	}
	sums := make(map[monthKey]float64)
	counts := make(map[monthKey]int)
	for i := range daily {
		key := monthKey{year: daily[i].Day.Year(), month: int(daily[i].Day.Month())}
		sums[key] += daily[i].Mean
		counts[key]++
	}

	out := make([]models.MonthlyUtrAverage, 0, len(sums))
	for key, sum := range sums {
		out = append(out, models.MonthlyUtrAverage{
			Year:  key.year,
			Month: key.month,
			Mean:  round2(sum / float64(counts[key])),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})

	return out
}
