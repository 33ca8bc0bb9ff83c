package service

import (
	"testing"
	"time"

	"courier-metrics-bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func presenceSet(days ...time.Time) map[time.Time]struct{} {
	set := make(map[time.Time]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

func TestTrailingAbsenceStreak(t *testing.T) {
	s := NewAttendanceService(NewMetricsService())
	asOf := day(2025, 8, 31)

	tests := []struct {
		name     string
		presence map[time.Time]struct{}
		want     int
	}{
		{
			name:     "never present is the whole window",
			presence: presenceSet(),
			want:     30,
		},
		{
			name:     "present yesterday resets to zero",
			presence: presenceSet(day(2025, 8, 30)),
			want:     0,
		},
		{
			name:     "present two days ago leaves one",
			presence: presenceSet(day(2025, 8, 29)),
			want:     1,
		},
		{
			name:     "only the latest run counts",
			presence: presenceSet(day(2025, 8, 10), day(2025, 8, 25)),
			want:     5,
		},
		{
			name:     "presence outside the window is invisible",
			presence: presenceSet(day(2025, 6, 1)),
			want:     30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.TrailingAbsenceStreak(tt.presence, asOf, 30))
		})
	}
}

func TestFlagConsecutiveAbsences(t *testing.T) {
	s := NewAttendanceService(NewMetricsService())
	asOf := day(2025, 8, 31)

	records := []models.ShiftRecord{
		// Ana: last present 6 days ago, inside the active window.
		newRecord("Ana", day(2025, 8, 25), "Almoço", "1:00:00", 0, 0, 0, 0),
		// Bruno: present yesterday, no streak.
		newRecord("Bruno", day(2025, 8, 30), "Almoço", "1:00:00", 0, 0, 0, 0),
		// Carla: streak of 8 but last presence predates the active window.
		newRecord("Carla", day(2025, 8, 10), "Almoço", "1:00:00", 0, 0, 0, 0),
		// Duda: 3 days absent, below the alert threshold.
		newRecord("Duda", day(2025, 8, 27), "Almoço", "1:00:00", 0, 0, 0, 0),
	}

	alerts := s.FlagConsecutiveAbsences(records, asOf)

	assert.Len(t, alerts, 1)
	assert.Equal(t, "Ana", alerts[0].CourierName)
	assert.Equal(t, 5, alerts[0].Streak)
	assert.Equal(t, day(2025, 8, 25), alerts[0].LastPresence)
}

func TestFlagConsecutiveAbsencesSortedByName(t *testing.T) {
	s := NewAttendanceService(NewMetricsService())
	asOf := day(2025, 8, 31)

	records := []models.ShiftRecord{
		newRecord("Zeca", day(2025, 8, 24), "Almoço", "1:00:00", 0, 0, 0, 0),
		newRecord("Alice", day(2025, 8, 24), "Almoço", "1:00:00", 0, 0, 0, 0),
	}

	alerts := s.FlagConsecutiveAbsences(records, asOf)

	assert.Len(t, alerts, 2)
	assert.Equal(t, "Alice", alerts[0].CourierName)
	assert.Equal(t, "Zeca", alerts[1].CourierName)
	assert.Equal(t, 6, alerts[0].Streak)
}

func TestFlagConsecutiveAbsencesEmpty(t *testing.T) {
	s := NewAttendanceService(NewMetricsService())
	assert.Empty(t, s.FlagConsecutiveAbsences(nil, day(2025, 8, 31)))
}

func TestFlagConsecutiveAbsencesGroupsNameVariants(t *testing.T) {
	s := NewAttendanceService(NewMetricsService())
	asOf := day(2025, 8, 31)

	// Same courier typed two ways: the later presence wins for both rows.
	records := []models.ShiftRecord{
		newRecord("João Silva", day(2025, 8, 20), "Almoço", "1:00:00", 0, 0, 0, 0),
		newRecord("JOÃO SILVA", day(2025, 8, 26), "Jantar", "1:00:00", 0, 0, 0, 0),
	}

	alerts := s.FlagConsecutiveAbsences(records, asOf)

	assert.Len(t, alerts, 1)
	assert.Equal(t, 4, alerts[0].Streak)
	assert.Equal(t, day(2025, 8, 26), alerts[0].LastPresence)
}
