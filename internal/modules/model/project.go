package model

import (
	"time"

	"gorm.io/datatypes"
)

// Project is a tenant-scoped container. Every project has exactly one owning
// admin; deleting a project only clears IsActive, the row is retained.
type Project struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	OwnerID     uint              `gorm:"index;not null" json:"owner_id"`
	Name        string            `gorm:"type:varchar(255);not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Schema      datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"schema"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Project <-> ApiKey
	ApiKeys []ApiKey `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"api_keys,omitempty"`

	// Project <-> DynamicData
	DynamicData []DynamicData `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"dynamic_data,omitempty"`
}

func (Project) TableName() string { return "projects" }
