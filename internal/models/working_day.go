package models

import "time"

type WorkingDay struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"uniqueIndex:idx_staff_weekday;not null" json:"staff_id"`

	// 0 = Sunday ... 6 = Saturday
	Weekday int `gorm:"uniqueIndex:idx_staff_weekday;not null" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsWorking bool   `gorm:"default:false" json:"is_working"`

	Breaks []BreakTime `gorm:"constraint:OnDelete:CASCADE;" json:"breaks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BreakTime struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	WorkingDayID uint   `gorm:"index;not null" json:"working_day_id"`
	StartTime    string `gorm:"size:5;not null" json:"start_time"`
	EndTime      string `gorm:"size:5;not null" json:"end_time"`
}
