package model

import "time"

// User is the identity principal. Every recipe, tag, and ingredient row
// carries the id of exactly one user and is invisible to everyone else.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Recipes     []Recipe     `json:"-" gorm:"foreignKey:UserID"`
	Tags        []Tag        `json:"-" gorm:"foreignKey:UserID"`
	Ingredients []Ingredient `json:"-" gorm:"foreignKey:UserID"`
}
