package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is the central catalog record. Tags and ingredients are attached
// through join tables and must belong to the same user as the recipe.
type Recipe struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"-" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	TimeMinutes uint            `json:"time_minutes" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(6,2);not null"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Link        string          `json:"link,omitempty" gorm:"size:255"`
	ImagePath   string          `json:"-" gorm:"size:512"` // storage key, URL built at the edge
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User        User         `json:"-" gorm:"foreignKey:UserID"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients"`
}
