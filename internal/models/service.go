package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_minutes"`
	Price       float64 `json:"price"`
	Category    string  `gorm:"size:50" json:"category"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
