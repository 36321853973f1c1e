package models

import "gorm.io/gorm"

type Service struct {
	gorm.Model
	Name        string  `gorm:"column:name;size:100;not null" json:"name"`
	Description string  `gorm:"column:description;size:500" json:"description"`
	Duration    int     `gorm:"column:duration;not null" json:"duration"` // minutes
	Price       float64 `gorm:"column:price;not null" json:"price"`
	IsActive    bool    `gorm:"column:is_active;default:true" json:"is_active"`

	TrainerServices []TrainerService `gorm:"foreignKey:ServiceID" json:"-"`
	Appointments    []Appointment    `gorm:"foreignKey:ServiceID" json:"-"`
}

func (Service) TableName() string {
	return "services"
}
