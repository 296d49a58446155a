package handlers

import (
	"log/slog"

	"birthdaybook/internal/config"
	"birthdaybook/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Session keys. Everything the app remembers between requests lives
// under one of these.
const (
	sessionUsername        = "username"
	sessionUserID          = "user_id"
	sessionMessage         = "message"
	sessionRequestedPath   = "requested_path"
	sessionMonth           = "month"
	sessionYear            = "year"
	sessionInvalidInterest = "invalid_interest"
)

type Handler struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *gorm.DB
	rdb       *redis.Client
	users     *services.UserService
	birthdays *services.BirthdayService
	audit     *services.AuditService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	users *services.UserService,
	birthdays *services.BirthdayService,
	audit *services.AuditService,
) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		rdb:       rdb,
		users:     users,
		birthdays: birthdays,
		audit:     audit,
	}
}

// currentUser returns the authenticated session subject, or ("", 0)
// for an anonymous session.
func currentUser(c *gin.Context) (string, uint) {
	session := sessions.Default(c)
	username, _ := session.Get(sessionUsername).(string)
	userID, _ := session.Get(sessionUserID).(uint)
	return username, userID
}

// setFlash stores a one-shot message for the next rendered page.
func setFlash(c *gin.Context, msg string) {
	session := sessions.Default(c)
	session.Set(sessionMessage, msg)
	if err := session.Save(); err != nil {
		slog.Default().Error("Failed to save session", "error", err)
	}
}

// popFlash returns the pending flash message, clearing it.
func popFlash(c *gin.Context) string {
	session := sessions.Default(c)
	msg, _ := session.Get(sessionMessage).(string)
	if msg != "" {
		session.Delete(sessionMessage)
		if err := session.Save(); err != nil {
			slog.Default().Error("Failed to save session", "error", err)
		}
	}
	return msg
}
