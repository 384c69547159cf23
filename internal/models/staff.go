package models

import "time"

type Staff struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	SaloonID uint `gorm:"index;not null" json:"saloon_id"`

	Name          string `gorm:"size:100;not null" json:"name"`
	BufferMinutes int    `gorm:"default:10" json:"buffer_minutes"`
	OnHoliday     bool   `gorm:"default:false" json:"on_holiday"`
	Active        bool   `gorm:"default:true" json:"active"`

	WorkingDays []WorkingDay `gorm:"constraint:OnDelete:CASCADE;" json:"working_days,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }
