package db

import (
	"github.com/terraincognita07/rangepick/internal/models"
	"gorm.io/gorm"
)

type RangeRepository struct {
	database *gorm.DB
}

func NewRangeRepository(database *gorm.DB) *RangeRepository {
	return &RangeRepository{database: database}
}

func (repo *RangeRepository) ListBySession(sessionID uint) ([]models.CommittedRange, error) {
	ranges := make([]models.CommittedRange, 0)
	if err := repo.database.Where("session_id = ?", sessionID).Order("id ASC").Find(&ranges).Error; err != nil {
		return nil, err
	}
	return ranges, nil
}

func (repo *RangeRepository) DeleteBySession(sessionID uint) error {
	return repo.database.Where("session_id = ?", sessionID).Delete(&models.CommittedRange{}).Error
}
