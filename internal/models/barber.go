package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Specialties string `gorm:"size:255" json:"specialties"`
	Bio         string `gorm:"size:255" json:"bio"`

	// AvatarURL aponta para o objeto no S3; AvatarBase64 é o fallback
	// quando o bucket não está configurado.
	AvatarURL    string `gorm:"size:255" json:"avatar_url"`
	AvatarBase64 string `gorm:"type:text" json:"avatar_base64,omitempty"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
