package models

import "time"

// Derived report types. All of them are recomputed projections over
// ShiftRecord snapshots and live only for the duration of one query.

// DriverPeriodMetrics aggregates a filtered slice of records for one courier.
type DriverPeriodMetrics struct {
	CourierName    string  `json:"courier_name"`
	SupplyHours    float64 `json:"supply_hours"`
	SupplyHoursHMS string  `json:"supply_hours_hms"`
	Shifts         int     `json:"shifts"`
	RidesOffered   int     `json:"rides_offered"`
	RidesAccepted  int     `json:"rides_accepted"`
	RidesRejected  int     `json:"rides_rejected"`
	RidesCompleted int     `json:"rides_completed"`
	AcceptancePct  float64 `json:"acceptance_pct"`
	RejectionPct   float64 `json:"rejection_pct"`
	CompletionPct  float64 `json:"completion_pct"`
}

// Classification tiers, ordered Premium (best) to Flutuante (fallback).
const (
	CategoryPremium   = "Premium"
	CategoryConectado = "Conectado"
	CategoryCasual    = "Casual"
	CategoryFlutuante = "Flutuante"
)

// CategoryRank maps a tier to its sort position (Premium first).
func CategoryRank(category string) int {
	switch category {
	case CategoryPremium:
		return 0
	case CategoryConectado:
		return 1
	case CategoryCasual:
		return 2
	default:
		return 3
	}
}

// DriverCategory is one row of the classification table.
type DriverCategory struct {
	CourierName    string  `json:"courier_name"`
	SupplyHours    float64 `json:"supply_hours"`
	SupplyHoursHMS string  `json:"supply_hours_hms"`
	AcceptancePct  float64 `json:"acceptance_pct"`
	CompletionPct  float64 `json:"completion_pct"`
	RidesOffered   int     `json:"rides_offered"`
	RidesAccepted  int     `json:"rides_accepted"`
	RidesCompleted int     `json:"rides_completed"`
	Category       string  `json:"category"`
	CriteriaMet    int     `json:"criteria_met"`
	CriteriaDesc   string  `json:"criteria_desc"`
}

// UtrRecord is the daily utilization of one courier on one shift period:
// rides offered per supply hour.
type UtrRecord struct {
	Date           time.Time `json:"date"`
	CourierName    string    `json:"courier_name"`
	Period         string    `json:"period"`
	SupplyHoursHMS string    `json:"supply_hours_hms"`
	SupplyHours    float64   `json:"supply_hours"`
	RidesOffered   int       `json:"rides_offered"`
	Utr            float64   `json:"utr"`
}

// UtrPivotRow is one courier's mean UTR per shift period; Values carries an
// entry (0.0 when absent) for every period of the pivot.
type UtrPivotRow struct {
	CourierName string             `json:"courier_name"`
	Values      map[string]float64 `json:"values"`
	Mean        float64            `json:"mean"`
}

// UtrPivot is the courier × shift-period table of mean UTR values.
type UtrPivot struct {
	Periods []string      `json:"periods"`
	Rows    []UtrPivotRow `json:"rows"`
}

// DailyUtrAverage is the mean of all courier/period UTR values on one day.
type DailyUtrAverage struct {
	Day  time.Time `json:"day"`
	Mean float64   `json:"mean"`
}

// MonthlyUtrAverage is the mean of a month's daily averages. Two-level on
// purpose: a straight offered/hours ratio over the month would weight busy
// days heavier and disagree with the daily panel.
type MonthlyUtrAverage struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Mean  float64 `json:"mean"`
}

// AbsenceAlert flags a courier whose most recent run of absent days within
// the trailing window reached the alert threshold.
type AbsenceAlert struct {
	CourierName  string    `json:"courier_name"`
	Streak       int       `json:"streak"`
	LastPresence time.Time `json:"last_presence"`
}

// MonthlyIndicator is one month of the general indicator series.
type MonthlyIndicator struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	RidesOffered   int     `json:"rides_offered"`
	RidesAccepted  int     `json:"rides_accepted"`
	RidesRejected  int     `json:"rides_rejected"`
	RidesCompleted int     `json:"rides_completed"`
	SupplyHours    float64 `json:"supply_hours"`
	AcceptancePct  float64 `json:"acceptance_pct"`
	RejectionPct   float64 `json:"rejection_pct"`
	CompletionPct  float64 `json:"completion_pct"`
	UtrMean        float64 `json:"utr_mean"`
}
