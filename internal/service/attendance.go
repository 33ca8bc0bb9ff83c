package service

import (
	"sort"
	"time"

	"courier-metrics-bot/internal/models"

	"github.com/sirupsen/logrus"
)

const (
	// Trailing window scanned for consecutive absences, ending yesterday.
	absenceWindowDays = 30
	// A courier counts as active when present at least once in this many
	// days before the reference date.
	activeWindowDays = 15
	// Minimum streak that triggers an alert.
	alertStreakMin = 4
)

// AttendanceService detects couriers who stopped showing up: it walks a
// trailing calendar window and keeps only the most recent run of absent
// days.
type AttendanceService struct {
	metrics *MetricsService
	logger  *logrus.Logger
}

func NewAttendanceService(metrics *MetricsService) *AttendanceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AttendanceService{
		metrics: metrics,
		logger:  logger,
	}
}

// TrailingAbsenceStreak walks the windowDays calendar days ending the day
// before asOf, oldest first. Any present day resets the counter; the value
// after the last day is the streak. Only the run touching "yesterday"
// matters; an older, longer gap does not count.
func (s *AttendanceService) TrailingAbsenceStreak(presence map[time.Time]struct{}, asOf time.Time, windowDays int) int {
	day := truncateDay(asOf).AddDate(0, 0, -windowDays)
	streak := 0
	for i := 0; i < windowDays; i++ {
		if _, ok := presence[day]; ok {
			streak = 0
		} else {
			streak++
		}
		day = day.AddDate(0, 0, 1)
	}
	return streak
}

// FlagConsecutiveAbsences reports every courier active in the last 15 days
// whose trailing absence streak reached the alert threshold, with their most
// recent presence. Alerts are ordered by display name so repeated runs over
// the same snapshot produce identical output.
func (s *AttendanceService) FlagConsecutiveAbsences(records []models.ShiftRecord, asOf time.Time) []models.AbsenceAlert {
	asOf = truncateDay(asOf)
	activeSince := asOf.AddDate(0, 0, -activeWindowDays)

	type courierDates struct {
		displayName  string
		presence     map[time.Time]struct{}
		lastPresence time.Time
		active       bool
	}

	byCourier := make(map[string]*courierDates)
	for i := range records {
		rec := &records[i]
		c, ok := byCourier[rec.CourierNameNorm]
		if !ok {
			c = &courierDates{
				displayName: rec.CourierName,
				presence:    make(map[time.Time]struct{}),
			}
			byCourier[rec.CourierNameNorm] = c
		}
		day := rec.Day()
		c.presence[day] = struct{}{}
		if day.After(c.lastPresence) {
			c.lastPresence = day
		}
		if !day.Before(activeSince) {
			c.active = true
		}
	}

	alerts := make([]models.AbsenceAlert, 0)
	for _, c := range byCourier {
		if !c.active {
			continue
		}
		streak := s.TrailingAbsenceStreak(c.presence, asOf, absenceWindowDays)
		if streak < alertStreakMin {
			continue
		}
		alerts = append(alerts, models.AbsenceAlert{
			CourierName:  c.displayName,
			Streak:       streak,
			LastPresence: c.lastPresence,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].CourierName < alerts[j].CourierName
	})

	s.logger.WithFields(logrus.Fields{
		"as_of":  asOf.Format("2006-01-02"),
		"alerts": len(alerts),
	}).Debug("Computed consecutive absence alerts")

	return alerts
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
