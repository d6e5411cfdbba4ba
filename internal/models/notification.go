package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint   `gorm:"index" json:"user_id"`
	Title   string `gorm:"size:100" json:"title"`
	Message string `gorm:"size:500" json:"message"`
	Type    string `gorm:"size:50" json:"type"`

	// Data carrega o payload do evento (appointment_id, nomes, preço)
	// serializado em JSON.
	Data string `gorm:"type:text" json:"data"`

	IsRead bool `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
