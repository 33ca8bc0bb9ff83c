package repository

import (
	"time"

	"courier-metrics-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ShiftRecordRepository caches the loaded activity extract. Records are
// immutable: a reload replaces the whole table, queries hand out snapshots.
type ShiftRecordRepository interface {
	ReplaceAll(records []models.ShiftRecord) error
	GetAll() ([]models.ShiftRecord, error)
	GetByMonth(year, month int) ([]models.ShiftRecord, error)
	GetByCourier(nameNorm string) ([]models.ShiftRecord, error)
	GetByCourierAndMonth(nameNorm string, year, month int) ([]models.ShiftRecord, error)
	GetSince(date time.Time) ([]models.ShiftRecord, error)
	CourierNames() ([]string, error)
	Years() ([]int, error)
	Count() (int64, error)
}

type GormShiftRecordRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftRecordRepository(db *gorm.DB) (*GormShiftRecordRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.ShiftRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift_records table")
		return nil, err
	}

	logger.Info("Shift record repository initialized")

	return &GormShiftRecordRepository{
		db:     db,
		logger: logger,
	}, nil
}

// ReplaceAll swaps the cached extract for a freshly loaded one inside a
// single transaction, so readers never observe a half-loaded table.
func (r *GormShiftRecordRepository) ReplaceAll(records []models.ShiftRecord) error {
	r.logger.WithField("count", len(records)).Info("Replacing cached shift records")

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ShiftRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 500).Error
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to replace shift records")
		return err
	}

	r.logger.WithField("count", len(records)).Info("Shift records replaced successfully")
	return nil
}

func (r *GormShiftRecordRepository) GetAll() ([]models.ShiftRecord, error) {
	var records []models.ShiftRecord
	result := r.db.Order("date ASC, courier_name_norm ASC").Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get all shift records")
		return nil, result.Error
	}
	return records, nil
}

func (r *GormShiftRecordRepository) GetByMonth(year, month int) ([]models.ShiftRecord, error) {
	var records []models.ShiftRecord
	result := r.db.Where("year = ? AND month = ?", year, month).
		Order("date ASC, courier_name_norm ASC").
		Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift records by month")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"year":  year,
		"month": month,
		"count": len(records),
	}).Debug("Retrieved shift records by month")

	return records, nil
}

func (r *GormShiftRecordRepository) GetByCourier(nameNorm string) ([]models.ShiftRecord, error) {
	var records []models.ShiftRecord
	result := r.db.Where("courier_name_norm = ?", nameNorm).
		Order("date ASC").
		Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift records by courier")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"courier": nameNorm,
		"count":   len(records),
	}).Debug("Retrieved shift records by courier")

	return records, nil
}

func (r *GormShiftRecordRepository) GetByCourierAndMonth(nameNorm string, year, month int) ([]models.ShiftRecord, error) {
	var records []models.ShiftRecord
	result := r.db.Where("courier_name_norm = ? AND year = ? AND month = ?", nameNorm, year, month).
		Order("date ASC").
		Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift records by courier and month")
		return nil, result.Error
	}
	return records, nil
}

func (r *GormShiftRecordRepository) GetSince(date time.Time) ([]models.ShiftRecord, error) {
	var records []models.ShiftRecord
	result := r.db.Where("date >= ?", date.Format("2006-01-02")).
		Order("date ASC").
		Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift records since date")
		return nil, result.Error
	}
	return records, nil
}

// CourierNames returns the distinct display names present in the extract,
// alphabetically.
func (r *GormShiftRecordRepository) CourierNames() ([]string, error) {
	var courierNames []string
	result := r.db.Model(&models.ShiftRecord{}).
		Distinct("courier_name").
		Order("courier_name ASC").
		Pluck("courier_name", &courierNames)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get courier names")
		return nil, result.Error
	}
	return courierNames, nil
}

// Years returns the distinct years present in the extract, newest first.
func (r *GormShiftRecordRepository) Years() ([]int, error) {
	var years []int
	result := r.db.Model(&models.ShiftRecord{}).
		Distinct("year").
		Order("year DESC").
		Pluck("year", &years)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get extract years")
		return nil, result.Error
	}
	return years, nil
}

func (r *GormShiftRecordRepository) Count() (int64, error) {
	var count int64
	result := r.db.Model(&models.ShiftRecord{}).Count(&count)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to count shift records")
		return 0, result.Error
	}
	return count, nil
}
