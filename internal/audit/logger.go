package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

// Logger writes audit events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	return l.db.WithContext(ctx).Create(&models.AuditLog{
		SaloonID:    ev.SaloonID,
		ActorID:     ev.UserID,
		Action:      ev.Action,
		SubjectType: ev.Entity,
		SubjectKey:  ev.EntityID,
		Details:     ev.Metadata,
	}).Error
}
