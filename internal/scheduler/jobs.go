package scheduler

import (
	"context"
	"time"

	"github.com/petalworks/gardencore/internal/goals"
	"github.com/petalworks/gardencore/internal/inventory"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/worker"
)

// Job intervals
const (
	QuestRefreshInterval  = time.Minute
	BloomReminderInterval = time.Hour
)

// Log messages
const (
	LogMsgBloomsWaiting = "Blooms waiting to be harvested"
)

// NewQuestRefreshJob returns a job that observes the active quest set so the
// midnight rollover happens even while the player is idle. Reading the
// entries is what triggers regeneration.
func NewQuestRefreshJob(quests *goals.QuestEngine) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		quests.Entries(ctx)
		return nil
	})
}

// NewBloomReminderJob returns a job that surfaces unharvested blooms; the
// notification layer tails this log line to decide on reminders.
func NewBloomReminderJob(inventorySvc inventory.Service) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		if count := inventorySvc.BloomedCount(); count > 0 {
			logger.FromContext(ctx).Info(LogMsgBloomsWaiting, "count", count)
		}
		return nil
	})
}
