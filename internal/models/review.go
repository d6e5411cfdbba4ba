package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`
	ClientID      uint `gorm:"index" json:"client_id"`
	BarberID      uint `gorm:"index" json:"barber_id"`
	ServiceID     uint `gorm:"index" json:"service_id"`

	Rating  int    `json:"rating"` // 1-5
	Comment string `gorm:"size:500" json:"comment"`

	ServiceQuality int `json:"service_quality"`
	BarberSkill    int `json:"barber_skill"`
	Cleanliness    int `json:"cleanliness"`
	ValueForMoney  int `json:"value_for_money"`

	WouldRecommend bool `gorm:"default:true" json:"would_recommend"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
