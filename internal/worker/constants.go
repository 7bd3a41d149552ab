package worker

// Log messages
const (
	LogMsgJobFailed = "Background job failed"
)

// Pool sizing defaults. The engine's background jobs are few and cheap, so a
// small pool is plenty.
const (
	DefaultWorkers   = 2
	DefaultQueueSize = 16
)
