package model

import (
	"time"

	"gorm.io/datatypes"
)

type KVEntry struct {
	Key       string         `gorm:"type:varchar(255);primaryKey"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
