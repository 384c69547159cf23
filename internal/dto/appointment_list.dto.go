package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ClientName    string    `json:"client_name"`
	ClientPhone   string    `json:"client_phone,omitempty"`
	VariationIDs  []uint    `json:"variation_ids"`
	TotalPrice    float64   `json:"total_price"`
}
