package model

import (
	"time"
)

// AdminUser is a panel operator account. Admins authenticate with email and
// password and own projects.
type AdminUser struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Name         string `gorm:"type:varchar(255)" json:"name"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	LastSignedInAt *time.Time `json:"last_signed_in_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// AdminUser <-> Project
	Projects []Project `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"projects,omitempty"`
}

func (AdminUser) TableName() string { return "admin_users" }
