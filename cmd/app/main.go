package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/crafting"
	"github.com/petalworks/gardencore/internal/event"
	"github.com/petalworks/gardencore/internal/garden"
	"github.com/petalworks/gardencore/internal/goals"
	"github.com/petalworks/gardencore/internal/handler"
	"github.com/petalworks/gardencore/internal/inventory"
	"github.com/petalworks/gardencore/internal/leaderboard"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/progression"
	"github.com/petalworks/gardencore/internal/purchase"
	"github.com/petalworks/gardencore/internal/scheduler"
	"github.com/petalworks/gardencore/internal/server"
	"github.com/petalworks/gardencore/internal/storage"
	"github.com/petalworks/gardencore/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Engine failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false))
	handler.InitValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, checker, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	queue := storage.NewWriteQueue(store)

	cal, err := clock.NewCalendar(clock.RealClock{})
	if err != nil {
		return err
	}
	bus := event.NewMemoryBus()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	ledgerSvc, err := ledger.NewService(ctx, store, queue, cfg.Tuning)
	if err != nil {
		return err
	}
	progressionSvc, err := progression.NewService(ctx, store, queue, ledgerSvc, cal, bus, cfg.Tuning)
	if err != nil {
		return err
	}
	inventorySvc, err := inventory.NewService(ctx, store, queue)
	if err != nil {
		return err
	}
	craftingSvc := crafting.NewService(inventorySvc, ledgerSvc, bus, cal, cfg.Tuning, crafting.NewRoll(rng))

	achievements, err := goals.NewEngine(ctx, goals.KindAchievement, storage.KeyAchievements,
		event.AchievementUnlock, goals.AchievementTemplates(), store, queue, ledgerSvc, bus, cal)
	if err != nil {
		return err
	}
	milestones, err := goals.NewEngine(ctx, goals.KindMilestone, storage.KeyMilestones,
		event.MilestoneReached, goals.MilestoneTemplates(), store, queue, ledgerSvc, bus, cal)
	if err != nil {
		return err
	}
	quests, err := goals.NewQuestEngine(ctx, goals.QuestPool(), store, queue,
		ledgerSvc, bus, cal, cfg.Tuning.ActiveQuestCount, rng)
	if err != nil {
		return err
	}

	leaderboardSvc := leaderboard.NewService(ledgerSvc, progressionSvc, cal, queue,
		cfg.Tuning, leaderboard.DefaultOpponents())
	purchaseSvc := purchase.NewService(ledgerSvc, bus, cal)
	gardenSvc := garden.NewService(ledgerSvc, progressionSvc, inventorySvc, craftingSvc,
		achievements, quests, milestones, leaderboardSvc, cal, cfg.Tuning)

	pool := worker.NewPool(worker.DefaultWorkers, worker.DefaultQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(scheduler.QuestRefreshInterval, scheduler.NewQuestRefreshJob(quests))
	sched.Schedule(scheduler.BloomReminderInterval, scheduler.NewBloomReminderJob(inventorySvc))

	srv := server.NewServer(cfg.Port, gardenSvc, leaderboardSvc, purchaseSvc, checker, cfg.Version)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Stop accepting requests, then drain pending state writes
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	sched.Stop()
	pool.Stop()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	return queue.Shutdown(shutdownCtx)
}

// newStore selects the persistence backend; only postgres has a remote
// connection worth probing for readiness
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, handler.HealthChecker, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		return storage.NewMemoryStore(), nil, func() {}, nil
	case config.StorageBackendLocal:
		store, err := storage.NewGdataStore(cfg.LocalAppName)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, func() {}, nil
	case config.StorageBackendPostgres:
		store, err := storage.NewPostgresStore(ctx, cfg.GetDBConnString())
		if err != nil {
			return nil, nil, nil, err
		}
		return store, store, store.Close, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
}
