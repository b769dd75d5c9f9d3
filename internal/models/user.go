package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null;index"`
	ProfileImage *string   `gorm:"type:varchar(500)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		return gorm.ErrInvalidData
	}
	if u.ProfileImage != nil && strings.TrimSpace(*u.ProfileImage) == "" {
		u.ProfileImage = nil
	}
	return nil
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
