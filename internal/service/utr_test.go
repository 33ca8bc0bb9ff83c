package service

import (
	"testing"

	"courier-metrics-bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDailyUtr(t *testing.T) {
	s := NewUtrService(NewMetricsService())

	records := []models.ShiftRecord{
		// 10 offered over 2h on one day/period: UTR 5.00.
		newRecord("Ana", day(2025, 8, 1), "Almoço", "1:00:00", 4, 4, 0, 4),
		newRecord("Ana", day(2025, 8, 1), "Almoço", "1:00:00", 6, 6, 0, 6),
		// Zero hours yields UTR 0.0, not a division error.
		newRecord("Bruno", day(2025, 8, 1), "Almoço", "0:00:00", 3, 3, 0, 3),
	}

	rows := s.Daily(records, 8, 2025)

	assert.Len(t, rows, 2)
	// Day ascending, then UTR descending.
	assert.Equal(t, "Ana", rows[0].CourierName)
	assert.Equal(t, 5.0, rows[0].Utr)
	assert.Equal(t, 10, rows[0].RidesOffered)
	assert.Equal(t, "02:00:00", rows[0].SupplyHoursHMS)
	assert.Equal(t, "Bruno", rows[1].CourierName)
	assert.Equal(t, 0.0, rows[1].Utr)
}

func TestDailyUtrUsesRawHours(t *testing.T) {
	s := NewUtrService(NewMetricsService())

	// 1:07:30 = 1.125h raw. 9/1.125 = 8.00 exactly; dividing by a
	// pre-rounded 1.1 would give 8.18 instead.
	records := []models.ShiftRecord{
		newRecord("Ana", day(2025, 8, 1), "Almoço", "1:07:30", 9, 9, 0, 9),
	}

	rows := s.Daily(records, 8, 2025)
	assert.Len(t, rows, 1)
	assert.Equal(t, 8.0, rows[0].Utr)
	assert.Equal(t, 1.13, rows[0].SupplyHours)
}

func TestDailyUtrBlankPeriodSentinel(t *testing.T) {
	s := NewUtrService(NewMetricsService())

	rec := newRecord("Ana", day(2025, 8, 1), "", "1:00:00", 2, 2, 0, 2)
	rows := s.Daily([]models.ShiftRecord{rec}, 8, 2025)

	assert.Len(t, rows, 1)
	assert.Equal(t, models.NoPeriod, rows[0].Period)
}

func TestDailyUtrEmpty(t *testing.T) {
	s := NewUtrService(NewMetricsService())
	assert.Empty(t, s.Daily(nil, 8, 2025))
	assert.Empty(t, s.Daily([]models.ShiftRecord{
		newRecord("Ana", day(2025, 7, 1), "Almoço", "1:00:00", 2, 2, 0, 2),
	}, 8, 2025))
}

func TestPivot(t *testing.T) {
	s := NewUtrService(NewMetricsService())

	records := []models.ShiftRecord{
		// Ana: Almoço UTR 4.0, Jantar UTR 2.0 -> mean 3.0.
		newRecord("Ana", day(2025, 8, 1), "Almoço", "1:00:00", 4, 4, 0, 4),
		newRecord("Ana", day(2025, 8, 1), "Jantar", "1:00:00", 2, 2, 0, 2),
		// Bruno only worked Almoço: the missing Jantar cell fills as 0.0
		// and still counts toward his mean (6.0 + 0.0) / 2 = 3.0.
		newRecord("Bruno", day(2025, 8, 1), "Almoço", "1:00:00", 6, 6, 0, 6),
	}

	pivot := s.Pivot(records, 8, 2025)

	assert.Equal(t, []string{"Almoço", "Jantar"}, pivot.Periods)
	assert.Len(t, pivot.Rows, 2)

	// Equal means tie-break on name.
	assert.Equal(t, "Ana", pivot.Rows[0].CourierName)
	assert.Equal(t, 3.0, pivot.Rows[0].Mean)
	assert.Equal(t, 4.0, pivot.Rows[0].Values["Almoço"])
	assert.Equal(t, 2.0, pivot.Rows[0].Values["Jantar"])

	assert.Equal(t, "Bruno", pivot.Rows[1].CourierName)
	assert.Equal(t, 3.0, pivot.Rows[1].Mean)
	assert.Equal(t, 0.0, pivot.Rows[1].Values["Jantar"])
}

func TestDailyAverages(t *testing.T) {
	s := NewUtrService(NewMetricsService())

	records := []models.ShiftRecord{
		newRecord("Ana", day(2025, 8, 1), "Almoço", "1:00:00", 4, 4, 0, 4),
		newRecord("Bruno", day(2025, 8, 1), "Almoço", "1:00:00", 2, 2, 0, 2),
		newRecord("Ana", day(2025, 8, 2), "Almoço", "1:00:00", 6, 6, 0, 6),
	}

	daily := s.DailyAverages(s.Daily(records, 8, 2025))

	assert.Len(t, daily, 2)
	assert.Equal(t, day(2025, 8, 1), daily[0].Day)
	assert.Equal(t, 3.0, daily[0].Mean)
	assert.Equal(t, day(2025, 8, 2), daily[1].Day)
	assert.Equal(t, 6.0, daily[1].Mean)
}

// The monthly mean is the mean of the per-day means, not offered/hours over
// the month. Day 1 averages 3.0, day 2 averages 6.0: the month is 4.5 even
// though total offered / total hours would be 4.0.
func TestMonthlyAveragesMeanOfDailyMeans(t *testing.T) {
	s := NewUtrService(NewMetricsService())

	records := []models.ShiftRecord{
		newRecord("Ana", day(2025, 8, 1), "Almoço", "1:00:00", 4, 4, 0, 4),
		newRecord("Bruno", day(2025, 8, 1), "Almoço", "1:00:00", 2, 2, 0, 2),
		newRecord("Ana", day(2025, 8, 2), "Almoço", "1:00:00", 6, 6, 0, 6),
	}

	monthly := s.MonthlyAverages(s.Daily(records, 0, 0))

	assert.Len(t, monthly, 1)
	assert.Equal(t, 2025, monthly[0].Year)
	assert.Equal(t, 8, monthly[0].Month)
	assert.Equal(t, 4.5, monthly[0].Mean)
}

func TestMonthlyAveragesSorted(t *testing.T) {
	s := NewUtrService(NewMetricsService())

	records := []models.ShiftRecord{
		newRecord("Ana", day(2025, 9, 1), "Almoço", "1:00:00", 3, 3, 0, 3),
		newRecord("Ana", day(2025, 8, 1), "Almoço", "1:00:00", 4, 4, 0, 4),
		newRecord("Ana", day(2024, 12, 1), "Almoço", "1:00:00", 5, 5, 0, 5),
	}

	monthly := s.MonthlyAverages(s.Daily(records, 0, 0))

	assert.Len(t, monthly, 3)
	assert.Equal(t, 2024, monthly[0].Year)
	assert.Equal(t, 12, monthly[0].Month)
	assert.Equal(t, 8, monthly[1].Month)
	assert.Equal(t, 9, monthly[2].Month)
}
