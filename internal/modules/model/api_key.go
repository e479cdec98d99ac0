package model

import (
	"time"

	"gorm.io/datatypes"
)

// ApiKey permissions.
const (
	PermissionRead  = "read"
	PermissionWrite = "write"
)

// ApiKey is an opaque bearer token granting external REST access to one
// project's data. The key string is unique across all projects. Revocation
// clears IsActive and never deletes the row.
type ApiKey struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	ProjectID   uint                        `gorm:"index;not null" json:"project_id"`
	Key         string                      `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"`
	Name        string                      `gorm:"type:varchar(255);not null" json:"name"`
	Permissions datatypes.JSONSlice[string] `gorm:"type:jsonb" swaggertype:"array,string" json:"permissions"`
	IsActive    bool                        `gorm:"not null;default:true" json:"is_active"`

	LastUsedAt *time.Time `json:"last_used_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// ApiKey <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`
}

func (ApiKey) TableName() string { return "api_keys" }

// Can reports whether the key carries the given permission.
func (k *ApiKey) Can(perm string) bool {
	for _, p := range k.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
