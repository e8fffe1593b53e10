package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const unreadRetentionDays = 180

// CleanupJob handles notification retention cleanup
type CleanupJob struct {
	repo          Repository
	retentionDays int
	now           func() time.Time
}

// NewCleanupJob creates a cleanup job
func NewCleanupJob(repo Repository, retentionDays int) *CleanupJob {
	if retentionDays <= 0 {
		retentionDays = 90 // Default 90 days
	}
	return &CleanupJob{repo: repo, retentionDays: retentionDays, now: time.Now}
}

// Start runs the cleanup immediately and then on every interval until ctx is done
func (j *CleanupJob) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	j.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Notification cleanup job stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce deletes read notifications past retention and any notification
// past the unread retention. It returns the number of rows removed.
func (j *CleanupJob) RunOnce(ctx context.Context) int64 {
	now := j.now()

	read, err := j.repo.DeleteOlderThan(ctx, now.AddDate(0, 0, -j.retentionDays), true)
	if err != nil {
		log.Error().Err(err).Msg("Failed to cleanup old notifications")
		return 0
	}

	unread, err := j.repo.DeleteOlderThan(ctx, now.AddDate(0, 0, -unreadRetentionDays), false)
	if err != nil {
		log.Error().Err(err).Msg("Failed to cleanup very old notifications")
	}

	if total := read + unread; total > 0 {
		log.Info().
			Int64("deleted_read", read).
			Int64("deleted_unread", unread).
			Int("retention_days", j.retentionDays).
			Msg("Cleaned up old notifications")
	}
	return read + unread
}
