package repository

import (
	"errors"

	"github.com/cartsetu/CartSetu/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a setting repository backed by GORM.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &gormSettingRepository{db: db}
}

func (r *gormSettingRepository) GetValue(key string) (string, error) {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (r *gormSettingRepository) Set(key, value, settingType string) error {
	setting := models.Setting{
		Key:   key,
		Value: value,
		Type:  settingType,
	}
	if err := setting.Validate(); err != nil {
		return err
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(&setting).Error
}
