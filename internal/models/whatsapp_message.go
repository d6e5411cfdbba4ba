package models

import "time"

// WhatsAppMessage é o registro de uma mensagem entregue à ponte externa
// de WhatsApp via fila no Redis. A entrega em si é best-effort.
type WhatsAppMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MessageID string `gorm:"size:36;uniqueIndex" json:"message_id"`

	ToPhone      string `gorm:"size:20;not null" json:"to_phone"`
	Message      string `gorm:"size:1000" json:"message"`
	TemplateType string `gorm:"size:50" json:"template_type"`

	Status string `gorm:"size:20;default:'pending'" json:"status"` // pending, sent, delivered, failed

	AppointmentID *uint `json:"appointment_id"`

	SentAt      *time.Time `json:"sent_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
