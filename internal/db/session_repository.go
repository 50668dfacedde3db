package db

import (
	"time"

	"github.com/terraincognita07/rangepick/internal/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

func (repo *SessionRepository) Create(session *models.Session) error {
	return repo.database.Create(session).Error
}

func (repo *SessionRepository) FindByPublicID(publicID string) (models.Session, bool, error) {
	session := models.Session{}
	result := repo.database.Where("public_id = ?", publicID).Limit(1).Find(&session)
	if result.Error != nil {
		return models.Session{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Session{}, false, nil
	}
	return session, true, nil
}

// SaveWithRange persists the session and, when committed is set, the
// range it just committed in one transaction.
func (repo *SessionRepository) SaveWithRange(session *models.Session, committed *models.CommittedRange) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		if committed == nil {
			return nil
		}
		committed.SessionID = session.ID
		return tx.Create(committed).Error
	})
}

// DeleteIdleSince removes sessions not touched since cutoff along with
// their committed ranges.
func (repo *SessionRepository) DeleteIdleSince(cutoff time.Time) (int64, error) {
	var deleted int64
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		idle := tx.Model(&models.Session{}).Select("id").Where("updated_at < ?", cutoff)
		if err := tx.Where("session_id IN (?)", idle).Delete(&models.CommittedRange{}).Error; err != nil {
			return err
		}
		result := tx.Where("updated_at < ?", cutoff).Delete(&models.Session{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
