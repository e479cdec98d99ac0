package model

import (
	"time"
)

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the end-user identity record kept in sync with the external auth
// provider. It is not joined to projects; project ownership belongs to
// AdminUser.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OpenID   string `gorm:"type:varchar(255);uniqueIndex;not null" json:"open_id"`
	Name     string `gorm:"type:varchar(255)" json:"name"`
	Email    string `gorm:"type:varchar(255)" json:"email"`
	Provider string `gorm:"type:varchar(64)" json:"provider"`
	Role     string `gorm:"type:varchar(16);not null;default:user" json:"role"`

	LastSignedInAt *time.Time `json:"last_signed_in_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
