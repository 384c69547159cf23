package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	SaloonID uint `gorm:"index;not null" json:"saloon_id"`
	StaffID  uint `gorm:"index:idx_appointments_staff_start;not null" json:"staff_id"`

	// Civil date and wall-clock window as requested, in the saloon's zone.
	Date       string `gorm:"size:10;not null" json:"date"`
	LocalStart string `gorm:"size:5;not null" json:"local_start"`
	LocalEnd   string `gorm:"size:5;not null" json:"local_end"`

	StartTime time.Time `gorm:"index:idx_appointments_staff_start;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status        string `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;default:'unpaid'" json:"payment_status"`

	RequesterID *uint  `json:"requester_id,omitempty"`
	GuestName   string `gorm:"size:100" json:"guest_name,omitempty"`
	GuestPhone  string `gorm:"size:20" json:"guest_phone,omitempty"`
	GuestEmail  string `gorm:"size:150" json:"guest_email,omitempty"`

	VariationIDs []uint  `gorm:"serializer:json;type:jsonb" json:"variation_ids"`
	TotalPrice   float64 `gorm:"not null;default:0" json:"total_price"`

	PaymentMethod    string `gorm:"size:20" json:"payment_method,omitempty"`
	PaymentReference string `gorm:"size:100" json:"payment_reference,omitempty"`
	CheckoutURL      string `gorm:"size:255" json:"checkout_url,omitempty"`

	Notes       string     `gorm:"size:255" json:"notes,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		a.ID = id
	}
	return nil
}
