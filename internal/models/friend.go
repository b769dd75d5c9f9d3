package models

import (
	"time"

	"gorm.io/gorm"
)

// Friendship is one undirected friendship, stored once per pair with
// UserID < FriendID.
type Friendship struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FriendID  uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Friend    User      `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// NewFriendship returns the canonical row for the pair (a, b).
func NewFriendship(a, b uint) Friendship {
	if a > b {
		a, b = b, a
	}
	return Friendship{UserID: a, FriendID: b}
}

// BeforeCreate rejects self pairs and keeps UserID < FriendID.
func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	if f.UserID == 0 || f.FriendID == 0 || f.UserID == f.FriendID {
		return gorm.ErrInvalidData
	}
	if f.UserID > f.FriendID {
		f.UserID, f.FriendID = f.FriendID, f.UserID
	}
	return nil
}

func (Friendship) TableName() string {
	return "friendships"
}
