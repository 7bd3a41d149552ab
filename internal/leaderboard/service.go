// Package leaderboard ranks the local player against a fixed pool of
// synthetic opponents. Top positions are gated on lifetime spend: a high
// score alone never reaches rank one.
package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/config"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/progression"
	"github.com/petalworks/gardencore/internal/storage"
)

// Service defines the interface for leaderboard operations
type Service interface {
	// Rankings returns the current ranked view for a category, recomputing
	// when the cached view is stale
	Rankings(ctx context.Context, category domain.RankingCategory) ([]domain.RankingEntry, error)
	// PlayerRank returns the local player's final rank in a category
	PlayerRank(ctx context.Context, category domain.RankingCategory) (int, error)
	// Invalidate drops cached views after a score or spend change
	Invalidate()
}

type service struct {
	ledgerSvc      ledger.Service
	progressionSvc progression.Service
	cal            *clock.Calendar
	saver          storage.Saver
	tuning         config.Tuning
	opponents      []domain.Opponent
	cache          *rankingCache
}

// NewService builds the leaderboard over the given opponent pool
func NewService(ledgerSvc ledger.Service, progressionSvc progression.Service, cal *clock.Calendar, saver storage.Saver, tuning config.Tuning, opponents []domain.Opponent) Service {
	return &service{
		ledgerSvc:      ledgerSvc,
		progressionSvc: progressionSvc,
		cal:            cal,
		saver:          saver,
		tuning:         tuning,
		opponents:      opponents,
		cache:          newRankingCache(CacheSize, CacheTTL),
	}
}

func (s *service) Rankings(ctx context.Context, category domain.RankingCategory) ([]domain.RankingEntry, error) {
	if category != domain.CategorySeeds && category != domain.CategoryStreak {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}

	if cached, found := s.cache.Get(category); found {
		return cached, nil
	}

	entries := s.compute(ctx, category)
	s.cache.Set(category, entries, s.cal.Now())
	s.persist(ctx, category, entries)
	return entries, nil
}

func (s *service) PlayerRank(ctx context.Context, category domain.RankingCategory) (int, error) {
	entries, err := s.Rankings(ctx, category)
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		if entry.ID == domain.PlayerEntryID {
			return entry.Rank, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrUnknownEntry, domain.PlayerEntryID)
}

func (s *service) Invalidate() {
	s.cache.Invalidate()
}

// compute builds the ranked view: sort by score, walk the top positions
// against the spend gates demoting entries that cannot afford their
// provisional rank, then renumber the final order 1..N.
func (s *service) compute(ctx context.Context, category domain.RankingCategory) []domain.RankingEntry {
	log := logger.FromContext(ctx)
	entries := s.collect(category)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	// Provisional walk. A demoted entry takes the sentinel rank and the
	// position it would have held stays open for the next candidate.
	provisional := 1
	assigned := 0
	for i := range entries {
		if provisional > TopRankCount {
			entries[i].Rank = provisional
			provisional++
			continue
		}
		gate := s.tuning.RankSpendGates[provisional-1]
		if entries[i].TotalSpent >= gate {
			entries[i].Rank = provisional
			provisional++
			assigned++
		} else {
			entries[i].Rank = domain.SentinelRank
			log.Debug(LogMsgEntryDemoted,
				"entry_id", entries[i].ID, "score", entries[i].Score,
				"total_spent", entries[i].TotalSpent, "gate", gate)
		}
	}

	// Demoted entries fall to the tail, keeping score order among themselves
	sort.SliceStable(entries, func(i, j int) bool {
		if (entries[i].Rank == domain.SentinelRank) != (entries[j].Rank == domain.SentinelRank) {
			return entries[j].Rank == domain.SentinelRank
		}
		if entries[i].Rank == domain.SentinelRank {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Rank < entries[j].Rank
	})

	// Final ranks are always the dense sequence 1..N
	for i := range entries {
		entries[i].Rank = i + 1
	}

	log.Info(LogMsgRankingsComputed, "category", category,
		"entries", len(entries), "gated_ranks_filled", assigned)
	return entries
}

// collect merges the opponent pool with the local player's live scores
func (s *service) collect(category domain.RankingCategory) []domain.RankingEntry {
	entries := make([]domain.RankingEntry, 0, len(s.opponents)+1)
	for _, opp := range s.opponents {
		score := opp.SeedScore
		if category == domain.CategoryStreak {
			score = opp.StreakScore
		}
		entries = append(entries, domain.RankingEntry{
			ID:         opp.ID,
			Username:   opp.Username,
			Score:      score,
			TotalSpent: opp.TotalSpent,
		})
	}

	ledgerState := s.ledgerSvc.State()
	var playerScore int
	if category == domain.CategorySeeds {
		playerScore = ledgerState.SeedsCollected
	} else {
		playerScore = s.progressionSvc.State().Streak
	}
	entries = append(entries, domain.RankingEntry{
		ID:         domain.PlayerEntryID,
		Username:   PlayerUsername,
		Score:      playerScore,
		TotalSpent: ledgerState.TotalSpent,
	})
	return entries
}

func (s *service) persist(ctx context.Context, category domain.RankingCategory, entries []domain.RankingEntry) {
	key := storage.KeySeedRankings
	if category == domain.CategoryStreak {
		key = storage.KeyStreakRankings
	}
	data, err := json.Marshal(entries)
	if err != nil {
		logger.FromContext(ctx).Error(ErrContextFailedToMarshal, "error", err)
		return
	}
	s.saver.Enqueue(key, data)
}
