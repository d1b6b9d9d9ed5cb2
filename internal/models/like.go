package models

import "gorm.io/gorm"

// Like records that a user liked a post. The unique index on
// (post, user) guarantees at most one like per pair even when two
// requests race, so the application-level existence check is only an
// optimization.
type Like struct {
	gorm.Model
	PostID uint `gorm:"not null;uniqueIndex:idx_likes_post_user"`
	UserID uint `gorm:"not null;uniqueIndex:idx_likes_post_user"`

	Post Post `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
