package models

import "gorm.io/gorm"

type Gym struct {
	gorm.Model
	Name              string `gorm:"column:name;size:100;not null" json:"name"`
	Location          string `gorm:"column:location;size:200;not null" json:"location"`
	WorkingHoursStart string `gorm:"column:working_hours_start;size:50;not null;default:'08:00'" json:"working_hours_start"`
	WorkingHoursEnd   string `gorm:"column:working_hours_end;size:50;not null;default:'22:00'" json:"working_hours_end"`
	Description       string `gorm:"column:description;size:500" json:"description"`
	ContactPhone      string `gorm:"column:contact_phone;size:15" json:"contact_phone"`
}

func (Gym) TableName() string {
	return "gyms"
}
