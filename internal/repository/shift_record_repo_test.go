package repository

import (
	"testing"
	"time"

	"courier-metrics-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *GormShiftRecordRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := NewGormShiftRecordRepository(db)
	require.NoError(t, err)
	return repo
}

func testRecord(courier string, date time.Time) models.ShiftRecord {
	rec := models.ShiftRecord{
		CourierName:      courier,
		Date:             date,
		Period:           "Almoço",
		AvailableTimeAbs: "1:00:00",
		RidesOffered:     5,
		RidesAccepted:    4,
		RidesRejected:    1,
		RidesCompleted:   4,
	}
	rec.UpdateDerivedFields()
	return rec
}

func TestReplaceAllAndGetAll(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.ReplaceAll([]models.ShiftRecord{
		testRecord("Maria", time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)),
		testRecord("João", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)),
	}))

	records, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Ordered by date.
	assert.Equal(t, "João", records[0].CourierName)
	assert.Equal(t, "Maria", records[1].CourierName)
}

// A second ReplaceAll discards the previous load entirely.
func TestReplaceAllReplaces(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.ReplaceAll([]models.ShiftRecord{
		testRecord("João", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)),
		testRecord("Maria", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)),
	}))
	require.NoError(t, repo.ReplaceAll([]models.ShiftRecord{
		testRecord("Pedro", time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)),
	}))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	names, err := repo.CourierNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Pedro"}, names)
}

func TestReplaceAllEmpty(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.ReplaceAll([]models.ShiftRecord{
		testRecord("João", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)),
	}))
	require.NoError(t, repo.ReplaceAll(nil))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetByMonthAndCourier(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.ReplaceAll([]models.ShiftRecord{
		testRecord("João Silva", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)),
		testRecord("João Silva", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)),
		testRecord("Maria", time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)),
	}))

	byMonth, err := repo.GetByMonth(2025, 8)
	require.NoError(t, err)
	assert.Len(t, byMonth, 2)

	byCourier, err := repo.GetByCourier("joao silva")
	require.NoError(t, err)
	assert.Len(t, byCourier, 2)

	both, err := repo.GetByCourierAndMonth("joao silva", 2025, 8)
	require.NoError(t, err)
	assert.Len(t, both, 1)
}

func TestGetSince(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.ReplaceAll([]models.ShiftRecord{
		testRecord("João", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)),
		testRecord("João", time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)),
	}))

	records, err := repo.GetSince(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 8, records[0].Month)
}

func TestCourierNamesAndYears(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.ReplaceAll([]models.ShiftRecord{
		testRecord("Maria", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)),
		testRecord("João", time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)),
		testRecord("João", time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)),
	}))

	names, err := repo.CourierNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"João", "Maria"}, names)

	years, err := repo.Years()
	require.NoError(t, err)
	assert.Equal(t, []int{2025, 2024}, years)
}
