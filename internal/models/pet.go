package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Pet struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Species   string    `gorm:"type:varchar(100);not null;index"`
	Chunky    int       `gorm:"not null;default:0"`
	Size      int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Species seen in the sample data. Species is free text; these are not enforced.
const (
	SpeciesCat  = "Cat"
	SpeciesDino = "Dino"
	SpeciesFrog = "Frog"
)

// BeforeSave hook for validation
func (p *Pet) BeforeSave(tx *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Species = strings.TrimSpace(p.Species)
	if p.Name == "" || p.Species == "" {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Pet) TableName() string {
	return "pets"
}

// UserPet records that a user owns a pet. The composite key stores each
// pairing at most once.
type UserPet struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PetID     uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Pet       Pet       `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserPet) TableName() string {
	return "user_pets"
}
