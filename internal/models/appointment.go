package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint `gorm:"index" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `json:"scheduled_at"`
	EndTime   time.Time `json:"end_time"`

	// DurationMin é o snapshot da duração do serviço no momento da criação.
	// Mudanças futuras no serviço não alteram agendamentos existentes.
	DurationMin int `json:"duration_minutes"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// TotalPrice é o snapshot do preço no momento da criação.
	TotalPrice float64 `json:"total_price"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
