package models

import (
	"time"

	"courier-metrics-bot/pkg/names"
	"courier-metrics-bot/pkg/timefmt"
)

// NoPeriod is the sentinel shift-period label for rows whose turn column is
// blank in the extract.
const NoPeriod = "(sem turno)"

// ShiftRecord is one row of the activity extract: one courier on one shift
// period of one calendar day. Records are written once per load and never
// mutated afterwards; every report works on filtered copies.
type ShiftRecord struct {
	ID uint `gorm:"primarykey" json:"id"`

	CourierName     string    `gorm:"not null;index" json:"courier_name"`
	CourierNameNorm string    `gorm:"not null;index" json:"courier_name_norm"`
	Date            time.Time `gorm:"type:date;not null;index" json:"date"`
	Month           int       `gorm:"not null;index;check:month >= 1 AND month <= 12" json:"month"`
	Year            int       `gorm:"not null;index" json:"year"`
	Period          string    `gorm:"not null;default:'(sem turno)'" json:"period"`
	SubArea         string    `json:"sub_area"`

	// Raw duration cell ("HH:MM:SS" or seconds) and its parsed value.
	AvailableTimeAbs string `json:"available_time_abs"`
	AvailableTimeSec int    `gorm:"not null;default:0" json:"available_time_sec"`

	// Scaled availability percentage (0-100); nil when the column is absent.
	AvailableTimeScaledPct *float64 `json:"available_time_scaled_pct"`

	RidesOffered   int `gorm:"not null;default:0" json:"rides_offered"`
	RidesAccepted  int `gorm:"not null;default:0" json:"rides_accepted"`
	RidesRejected  int `gorm:"not null;default:0" json:"rides_rejected"`
	RidesCompleted int `gorm:"not null;default:0" json:"rides_completed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ShiftRecord) TableName() string {
	return "shift_records"
}

// Day returns the record's date truncated to a calendar day key.
func (r *ShiftRecord) Day() time.Time {
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
}

// UpdateDerivedFields recomputes every column that is a pure function of the
// raw cells: normalized name, month/year, parsed seconds, period sentinel.
func (r *ShiftRecord) UpdateDerivedFields() {
	r.CourierNameNorm = names.Normalize(r.CourierName)
	r.Month = int(r.Date.Month())
	r.Year = r.Date.Year()
	r.AvailableTimeSec = timefmt.ParseDuration(r.AvailableTimeAbs)
	if r.Period == "" {
		r.Period = NoPeriod
	}
}

// IsValid rejects rows that cannot participate in any aggregation.
func (r *ShiftRecord) IsValid() bool {
	if r.CourierName == "" {
		return false
	}
	if r.Date.IsZero() {
		return false
	}
	if r.Month < 1 || r.Month > 12 {
		return false
	}
	if r.RidesOffered < 0 || r.RidesAccepted < 0 || r.RidesRejected < 0 || r.RidesCompleted < 0 {
		return false
	}
	return true
}
