package services

import (
	"context"
	"log/slog"
	"time"

	"birthdaybook/internal/models"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

// AuditService records user actions asynchronously so handlers never
// wait on the audit table. Entries carry the client IP and a parsed
// user-agent.
type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	entries chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		entries: make(chan models.AuditLog, 100),
	}
}

func (s *AuditService) Start(ctx context.Context) {
	s.logger.Info("Audit worker starting")
	for {
		select {
		case entry := <-s.entries:
			s.enrich(&entry)
			if err := s.db.Create(&entry).Error; err != nil {
				s.logger.Error("Failed to write audit log", "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Audit worker stopping")
			return
		}
	}
}

// LogAction queues an audit entry; a full queue drops the entry rather
// than blocking the request.
func (s *AuditService) LogAction(userID *uint, action, entityID, ip, userAgent string) {
	entry := models.AuditLog{
		UserID:    userID,
		Action:    action,
		EntityID:  entityID,
		IPAddress: ip,
		Browser:   userAgent, // raw until the worker parses it
		Timestamp: time.Now(),
	}

	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Audit channel full, dropping entry", "action", action)
	}
}

func (s *AuditService) enrich(entry *models.AuditLog) {
	ua := user_agent.New(entry.Browser)
	name, version := ua.Browser()
	entry.Browser = name + " " + version
	entry.OS = ua.OS()
}
