package service

import (
	"testing"

	"courier-metrics-bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	s := NewClassifierService(NewMetricsService())

	tests := []struct {
		name          string
		sh            float64
		completionPct float64
		acceptancePct float64
		wantCategory  string
		wantMet       int
		wantDesc      string
	}{
		{
			name: "premium at exact thresholds",
			sh:   120, completionPct: 95, acceptancePct: 65,
			wantCategory: models.CategoryPremium, wantMet: 3,
			wantDesc: "SH≥120, comp≥95%, acc≥65%",
		},
		{
			name: "one below premium re-tests as conectado",
			sh:   119, completionPct: 95, acceptancePct: 65,
			wantCategory: models.CategoryConectado, wantMet: 3,
			wantDesc: "SH≥60, comp≥80%, acc≥45%",
		},
		{
			name: "conectado on two of three",
			sh:   60, completionPct: 80, acceptancePct: 10,
			wantCategory: models.CategoryConectado, wantMet: 2,
			wantDesc: "SH≥60, comp≥80%",
		},
		{
			name: "casual on a single criterion",
			sh:   10, completionPct: 60, acceptancePct: 20,
			wantCategory: models.CategoryCasual, wantMet: 1,
			wantDesc: "comp≥60%",
		},
		{
			name: "flutuante fallback",
			sh:   10, completionPct: 50, acceptancePct: 20,
			wantCategory: models.CategoryFlutuante, wantMet: 0,
			wantDesc: "nenhum critério",
		},
		{
			name: "zeros are flutuante",
			sh:   0, completionPct: 0, acceptancePct: 0,
			wantCategory: models.CategoryFlutuante, wantMet: 0,
			wantDesc: "nenhum critério",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, met, desc := s.Classify(tt.sh, tt.completionPct, tt.acceptancePct)
			assert.Equal(t, tt.wantCategory, category)
			assert.Equal(t, tt.wantMet, met)
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestClassifyAll(t *testing.T) {
	s := NewClassifierService(NewMetricsService())

	records := []models.ShiftRecord{
		// Premium: 130h, completion 100/100, acceptance 100/100.
		newRecord("Ana", day(2025, 8, 1), "Almoço", "130:00:00", 100, 100, 0, 100),
		// Casual via supply hours only.
		newRecord("Bruno", day(2025, 8, 1), "Almoço", "25:00:00", 0, 0, 0, 0),
		// Flutuante.
		newRecord("Carla", day(2025, 8, 1), "Almoço", "1:00:00", 10, 1, 9, 0),
	}

	rows := s.ClassifyAll(records, 8, 2025)

	assert.Len(t, rows, 3)
	assert.Equal(t, "Ana", rows[0].CourierName)
	assert.Equal(t, models.CategoryPremium, rows[0].Category)
	assert.Equal(t, "Bruno", rows[1].CourierName)
	assert.Equal(t, models.CategoryCasual, rows[1].Category)
	assert.Equal(t, "Carla", rows[2].CourierName)
	assert.Equal(t, models.CategoryFlutuante, rows[2].Category)

	assert.Equal(t, "130:00:00", rows[0].SupplyHoursHMS)
}

func TestClassifyAllMonthFilter(t *testing.T) {
	s := NewClassifierService(NewMetricsService())

	records := []models.ShiftRecord{
		newRecord("Ana", day(2025, 7, 1), "Almoço", "130:00:00", 100, 100, 0, 100),
		newRecord("Bruno", day(2025, 8, 1), "Almoço", "25:00:00", 0, 0, 0, 0),
	}

	rows := s.ClassifyAll(records, 8, 2025)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Bruno", rows[0].CourierName)

	// Month without year (or vice versa) means no filter.
	rows = s.ClassifyAll(records, 8, 0)
	assert.Len(t, rows, 2)
}

func TestClassifyAllEmpty(t *testing.T) {
	s := NewClassifierService(NewMetricsService())
	assert.Empty(t, s.ClassifyAll(nil, 8, 2025))
}

func TestCategoryCounts(t *testing.T) {
	s := NewClassifierService(NewMetricsService())

	rows := []models.DriverCategory{
		{Category: models.CategoryPremium},
		{Category: models.CategoryCasual},
		{Category: models.CategoryCasual},
	}

	counts := s.CategoryCounts(rows)
	assert.Equal(t, 1, counts[models.CategoryPremium])
	assert.Equal(t, 0, counts[models.CategoryConectado])
	assert.Equal(t, 2, counts[models.CategoryCasual])
	assert.Equal(t, 0, counts[models.CategoryFlutuante])
}
