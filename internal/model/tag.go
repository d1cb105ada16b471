package model

import "time"

// Tag is a user-owned label for recipes. (name, user) is the resolution key
// when tags arrive inline on a recipe write: same owner + same name reuses
// the existing row instead of creating a duplicate.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
