package models

import "time"

// Promotion types as they appear in the promotions workbook.
const (
	PromotionTypePhases       = "fases"
	PromotionTypeHourly       = "por_hora"
	PromotionTypeRouteBracket = "faixa_rotas"
)

// Promotion is one campaign from the promotions workbook. Depending on Type,
// exactly one of Phases, Hourly or Brackets is populated.
type Promotion struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Type      string           `json:"type"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Phases    []PromotionPhase `json:"phases,omitempty"`
	Hourly    *HourlyCriteria  `json:"hourly,omitempty"`
	Brackets  []RouteBracket   `json:"brackets,omitempty"`
}

// PromotionPhase is one stage of a phased promotion.
type PromotionPhase struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	MinRoutes int       `json:"min_routes"`
}

// HourlyCriteria are the qualification thresholds of an hourly promotion.
type HourlyCriteria struct {
	MinOnlinePct  float64 `json:"min_online_pct"`
	MinAcceptance float64 `json:"min_acceptance"`
	MinCompletion float64 `json:"min_completion"`
}

// RouteBracket is one payout band of a route-count promotion.
type RouteBracket struct {
	MinRoutes int     `json:"min_routes"`
	MaxRoutes int     `json:"max_routes"`
	Reward    float64 `json:"reward"`
}
