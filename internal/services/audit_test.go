package services

import (
	"context"
	"testing"
	"time"

	"birthdaybook/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuditServiceRecordsActions(t *testing.T) {
	db := setupTestDB(t)
	audit := NewAuditService(db, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go audit.Start(ctx)

	userID := uint(1)
	audit.LogAction(&userID, "REGISTER", "alice", "192.0.2.1",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	var entry models.AuditLog
	assert.Eventually(t, func() bool {
		return db.First(&entry).Error == nil
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "REGISTER", entry.Action)
	assert.Equal(t, "alice", entry.EntityID)
	assert.Equal(t, "192.0.2.1", entry.IPAddress)
	assert.Contains(t, entry.Browser, "Chrome")
	assert.Contains(t, entry.OS, "Linux")
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2, testLogger())

	// The burst admits two immediate requests, the third is throttled.
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Separate IPs have separate buckets.
	assert.True(t, limiter.Allow("10.0.0.2"))
}
