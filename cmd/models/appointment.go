package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

type Appointment struct {
	gorm.Model
	MemberID        uint      `gorm:"column:member_id;not null" json:"member_id"`
	TrainerID       uint      `gorm:"column:trainer_id;not null" json:"trainer_id"`
	ServiceID       uint      `gorm:"column:service_id;not null" json:"service_id"`
	AppointmentDate time.Time `gorm:"column:appointment_date;type:date;not null" json:"appointment_date"`
	StartTime       string    `gorm:"column:start_time;size:5;not null" json:"start_time"` // "HH:mm"
	Status          string    `gorm:"column:status;size:20;not null;default:'Pending'" json:"status"`
	Notes           string    `gorm:"column:notes;size:500" json:"notes"`

	Member  *User    `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Trainer *Trainer `gorm:"foreignKey:TrainerID;constraint:OnDelete:RESTRICT;" json:"trainer,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT;" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// CanTransition reports whether an appointment may move from one status to
// another. Pending and Confirmed can be cancelled or completed; Cancelled
// and Completed are terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled || to == StatusCompleted
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	default:
		return false
	}
}
