package models

import (
	"time"

	"gorm.io/gorm"
)

type Trainer struct {
	gorm.Model
	Name        string `gorm:"column:name;size:100;not null" json:"name"`
	Email       string `gorm:"column:email;size:255;not null" json:"email"`
	Phone       string `gorm:"column:phone;size:15" json:"phone"`
	Biography   string `gorm:"column:biography;type:text" json:"biography"`
	ImageURL    string `gorm:"column:image_url;size:200" json:"image_url"`
	IsAvailable bool   `gorm:"column:is_available;default:true" json:"is_available"`

	TrainerServices []TrainerService      `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE;" json:"trainer_services,omitempty"`
	Availabilities  []TrainerAvailability `gorm:"foreignKey:TrainerID;constraint:OnDelete:CASCADE;" json:"availabilities,omitempty"`
	Appointments    []Appointment         `gorm:"foreignKey:TrainerID" json:"appointments,omitempty"`
}

func (Trainer) TableName() string {
	return "trainers"
}

// TrainerService links a trainer to a service they offer (many-to-many).
type TrainerService struct {
	gorm.Model
	TrainerID    uint      `gorm:"column:trainer_id;not null;index:idx_trainer_service,unique" json:"trainer_id"`
	ServiceID    uint      `gorm:"column:service_id;not null;index:idx_trainer_service,unique" json:"service_id"`
	AssignedDate time.Time `gorm:"column:assigned_date" json:"assigned_date"`

	Trainer *Trainer `gorm:"foreignKey:TrainerID" json:"-"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (TrainerService) TableName() string {
	return "trainer_services"
}

// TrainerAvailability is a recurring weekly window during which a trainer
// accepts bookings. Times are zero-padded "HH:mm" strings so range checks
// can compare them lexicographically.
type TrainerAvailability struct {
	gorm.Model
	TrainerID uint   `gorm:"column:trainer_id;not null" json:"trainer_id"`
	DayOfWeek int    `gorm:"column:day_of_week;not null" json:"day_of_week"`
	StartTime string `gorm:"column:start_time;size:5;not null" json:"start_time"`
	EndTime   string `gorm:"column:end_time;size:5;not null" json:"end_time"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"is_active"`

	Trainer *Trainer `gorm:"foreignKey:TrainerID" json:"-"`
}

func (TrainerAvailability) TableName() string {
	return "trainer_availabilities"
}
