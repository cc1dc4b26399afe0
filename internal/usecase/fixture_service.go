package usecase

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"

	"github.com/dioarsa/football-oracle/internal/domain/fixture"
	"github.com/dioarsa/football-oracle/internal/platform/logging"
)

// FixtureProvider supplies the upcoming fixture list. Implementations never
// fail; on upstream trouble they serve a built-in schedule instead.
type FixtureProvider interface {
	FetchFixtures(ctx context.Context) []fixture.Match
}

// FixtureService serves the fixture list and resolves individual matches for
// the stats and prediction flows.
type FixtureService struct {
	provider FixtureProvider
	logger   *logging.Logger

	mu   sync.RWMutex
	byID map[int64]fixture.Match
}

func NewFixtureService(provider FixtureProvider, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{
		provider: provider,
		logger:   logger,
		byID:     make(map[int64]fixture.Match),
	}
}

// ListUpcoming returns the current fixture list and remembers it so later
// per-match lookups resolve without another upstream call.
func (s *FixtureService) ListUpcoming(ctx context.Context) []fixture.Match {
	matches := s.provider.FetchFixtures(ctx)
	s.remember(matches)
	return matches
}

// ResolveMatch returns the fixture with the given id. A cold lookup refreshes
// the fixture list before giving up.
func (s *FixtureService) ResolveMatch(ctx context.Context, matchID int64) (fixture.Match, error) {
	if matchID <= 0 {
		return fixture.Match{}, crerr.Wrapf(ErrInvalidInput, "match id %d must be positive", matchID)
	}

	s.mu.RLock()
	match, ok := s.byID[matchID]
	s.mu.RUnlock()
	if ok {
		return match, nil
	}

	for _, m := range s.ListUpcoming(ctx) {
		if m.ID == matchID {
			return m, nil
		}
	}

	return fixture.Match{}, crerr.Wrapf(ErrNotFound, "match %d is not in the current fixture list", matchID)
}

// remember replaces the id index wholesale so matches dropped from the
// upstream schedule stop resolving.
func (s *FixtureService) remember(matches []fixture.Match) {
	index := make(map[int64]fixture.Match, len(matches))
	for _, m := range matches {
		index[m.ID] = m
	}

	s.mu.Lock()
	s.byID = index
	s.mu.Unlock()
}
