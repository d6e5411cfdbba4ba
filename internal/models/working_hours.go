package models

import "time"

// WorkingHours guarda a janela de expediente de um barbeiro num dia da
// semana. A chave canônica do dia é o nome em inglês minúsculo
// ("monday" ... "sunday") — ausência de linha significa dia sem expediente.
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_barber_weekday,unique" json:"barber_id"`

	Weekday string `gorm:"size:10;index:idx_barber_weekday,unique" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5" json:"end_time"`   // HH:MM
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
