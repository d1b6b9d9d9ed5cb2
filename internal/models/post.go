package models

import "gorm.io/gorm"

// Post is a user-authored content item: a description plus an optional image.
type Post struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index"`
	Description string `gorm:"size:255"`
	ImagePath   string `gorm:"size:512"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
