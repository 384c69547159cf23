package dto

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityDTO struct {
	Date     string     `json:"date"`
	StaffID  uint       `json:"staff_id"`
	Timezone string     `json:"timezone"`
	Slots    []TimeSlot `json:"slots"`
	Reason   string     `json:"reason,omitempty"`
}
