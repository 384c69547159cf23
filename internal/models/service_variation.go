package models

import "time"

// ServiceVariation is a bookable priced service with a duration, e.g.
// "short haircut, 30 min".
type ServiceVariation struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	SaloonID uint `gorm:"index;not null" json:"saloon_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Price       float64 `gorm:"not null" json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
