package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	gorm.Model
	FullName              string    `gorm:"column:full_name;size:100;not null" json:"full_name"`
	Email                 string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash          string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Phone                 string    `gorm:"column:phone;size:15" json:"phone"`
	Role                  string    `gorm:"column:role;size:50;not null;default:member" json:"role"`
	RegistrationDate      time.Time `gorm:"column:registration_date" json:"registration_date"`
	Refresh               string    `gorm:"column:refresh_token;size:255" json:"-"`
	RefreshTokenExpiredAt time.Time `gorm:"column:refresh_token_expired_at" json:"-"`

	Appointments []Appointment `gorm:"foreignKey:MemberID" json:"appointments,omitempty"`
}

type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null"`
	Token     string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
}
