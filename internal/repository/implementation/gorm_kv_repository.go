package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rfp-console/internal/model"
	"rfp-console/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormKVRepository struct {
	db *gorm.DB
}

// NewGormKVRepository migrates kv_entries and returns a repository over it.
// Values must be valid JSON.
func NewGormKVRepository(db *gorm.DB) (contract.KVRepository, error) {
	if err := db.AutoMigrate(&model.KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &gormKVRepository{db: db}, nil
}

func (r *gormKVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry model.KVEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

func (r *gormKVRepository) Set(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("kv value for %s is not valid JSON", key)
	}
	entry := model.KVEntry{Key: key, Value: datatypes.JSON(value)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *gormKVRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.KVEntry{}).Error
}
