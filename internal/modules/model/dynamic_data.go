package model

import (
	"time"

	"gorm.io/datatypes"
)

// DynamicData is an arbitrary JSON document stored under a project. No schema
// is enforced on the payload; UserID and DataType are optional caller-supplied
// tags used for equality filtering.
type DynamicData struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"index;not null" json:"project_id"`
	UserID    *string        `gorm:"type:varchar(255);index" json:"user_id"`
	DataType  *string        `gorm:"type:varchar(255);index" json:"data_type"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null" swaggertype:"object" json:"data"`
	IsPublic  bool           `gorm:"not null;default:false" json:"is_public"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// DynamicData <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`
}

func (DynamicData) TableName() string { return "dynamic_data" }
