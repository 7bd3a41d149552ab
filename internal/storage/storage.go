// Package storage is the persistence gateway for the engine. Every component
// loads its state through a Store once at startup and enqueues a write on
// every mutation. Each concern owns exactly one key, so a write to one key
// can never corrupt another. Durability is last-write-wins per key.
package storage

import "context"

// Stable storage keys, one per engine concern.
// Renaming a key is a breaking change: there is no schema versioning and
// old state under the previous key becomes unreachable.
const (
	KeyLedger         = "ledger"
	KeyProgression    = "progression"
	KeyInventory      = "inventory"
	KeyAchievements   = "achievements"
	KeyQuests         = "quests"
	KeyMilestones     = "milestones"
	KeySeedRankings   = "seedRankings"
	KeyStreakRankings = "streakRankings"
)

// AllKeys lists every storage key in use
func AllKeys() []string {
	return []string{
		KeyLedger,
		KeyProgression,
		KeyInventory,
		KeyAchievements,
		KeyQuests,
		KeyMilestones,
		KeySeedRankings,
		KeyStreakRankings,
	}
}

// Store defines the interface for durable key/value persistence
type Store interface {
	// Get returns the stored bytes for key, or found=false when absent
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set durably stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes all stored keys
	Clear(ctx context.Context) error
}

// Saver accepts asynchronous state writes from the engines.
// Enqueue never blocks the caller; the in-memory state stays authoritative
// for the session and a failed write is retried on the next mutation of the
// same key.
type Saver interface {
	Enqueue(key string, value []byte)
}
