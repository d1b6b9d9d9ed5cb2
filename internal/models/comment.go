package models

import "gorm.io/gorm"

// Comment belongs to exactly one post and one authoring user.
type Comment struct {
	gorm.Model
	PostID uint   `gorm:"not null;index"`
	UserID uint   `gorm:"not null"`
	Text   string `gorm:"size:200;not null"`

	Post Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
