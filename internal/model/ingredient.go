package model

import "time"

// Ingredient mirrors Tag as a distinct record kind with the same ownership
// and name-resolution rules.
type Ingredient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
