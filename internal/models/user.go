package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleBarber = "barber"
	RoleClient = "client"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Phone        string `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
