package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the editable record attached one-to-one to a User. It is
// created lazily the first time the profile page is requested.
//
// Friends is the symmetric friend set: accepting a friend request inserts
// both directions, and nothing else ever mutates it.
type Profile struct {
	gorm.Model
	UserID    uint   `gorm:"uniqueIndex;not null"`
	FirstName string `gorm:"size:200"`
	LastName  string `gorm:"size:200"`
	Email     string `gorm:"size:300"`
	DOB       *time.Time
	Bio       string

	User    User    `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Friends []*User `gorm:"many2many:profile_friends;"`
}
