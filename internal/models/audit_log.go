package models

import "time"

// AuditLog is one append-only row written by the audit dispatcher. Listing
// reads it newest first per saloon, which the composite index serves.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SaloonID  uint      `gorm:"not null;index:idx_audit_saloon_created,priority:1" json:"saloon_id"`
	CreatedAt time.Time `gorm:"index:idx_audit_saloon_created,priority:2,sort:desc" json:"created_at"`

	// ActorID is nil for guest bookings.
	ActorID *uint  `json:"actor_id,omitempty"`
	Action  string `gorm:"size:40;not null;index" json:"action"`

	// SubjectType and SubjectKey name what the action touched, e.g.
	// "appointment" and its UUID, or "staff" and its numeric id.
	SubjectType string `gorm:"size:20;not null" json:"subject_type"`
	SubjectKey  string `gorm:"size:36;not null" json:"subject_key"`

	Details map[string]any `gorm:"serializer:json;type:jsonb" json:"details,omitempty"`
}
