package usecase

import (
	"context"

	"github.com/dioarsa/football-oracle/internal/domain/fixture"
	"github.com/dioarsa/football-oracle/internal/domain/stats"
	"github.com/dioarsa/football-oracle/internal/platform/logging"
)

// StatsProvider fetches live match statistics from the sports data provider.
type StatsProvider interface {
	FetchMatchStats(ctx context.Context, matchID, homeTeamID, awayTeamID int64) (*stats.MatchStats, error)
}

// Stats sources reported to API consumers.
const (
	StatsSourceLive        = "live"
	StatsSourceSynthesized = "synthesized"
)

// StatsResult pairs match statistics with the fixture they describe and the
// origin of the numbers.
type StatsResult struct {
	Match  fixture.Match
	Stats  stats.MatchStats
	Source string
}

// StatsService serves per-match statistics, preferring live provider data and
// falling back to deterministic synthesis when the provider cannot deliver.
type StatsService struct {
	fixtures *FixtureService
	provider StatsProvider
	logger   *logging.Logger
}

func NewStatsService(fixtures *FixtureService, provider StatsProvider, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		fixtures: fixtures,
		provider: provider,
		logger:   logger,
	}
}

// Get returns statistics for the given match. Identical inputs always yield
// identical synthesized output, so the fallback is stable across calls.
func (s *StatsService) Get(ctx context.Context, matchID int64) (StatsResult, error) {
	match, err := s.fixtures.ResolveMatch(ctx, matchID)
	if err != nil {
		return StatsResult{}, err
	}

	live, err := s.provider.FetchMatchStats(ctx, match.ID, match.HomeTeam.ID, match.AwayTeam.ID)
	if err == nil && live != nil {
		return StatsResult{
			Match:  match,
			Stats:  *live,
			Source: StatsSourceLive,
		}, nil
	}

	s.logger.InfoContext(ctx, "serving synthesized match statistics",
		"matchID", match.ID,
		"homeTeam", match.HomeTeam.Name,
		"awayTeam", match.AwayTeam.Name,
		"error", err,
	)

	return StatsResult{
		Match:  match,
		Stats:  stats.Synthesize(match.HomeTeam, match.AwayTeam, match.ID),
		Source: StatsSourceSynthesized,
	}, nil
}
