package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/dioarsa/football-oracle/internal/domain/prediction"
	"github.com/dioarsa/football-oracle/internal/platform/cache"
	"github.com/dioarsa/football-oracle/internal/platform/logging"
)

// Predictor produces a grounded prediction for a pairing of team names.
type Predictor interface {
	Predict(ctx context.Context, homeTeam, awayTeam string) (prediction.Prediction, error)
}

// PredictionRequest identifies the fixture to predict. Team names are
// optional; when blank the fixture's own team names are used.
type PredictionRequest struct {
	MatchID  int64
	HomeTeam string
	AwayTeam string
}

// PredictionService generates match predictions and memoizes them per
// fixture and pairing, so repeated requests do not burn provider quota.
type PredictionService struct {
	fixtures  *FixtureService
	predictor Predictor
	results   *cache.Store
	logger    *logging.Logger
}

func NewPredictionService(fixtures *FixtureService, predictor Predictor, logger *logging.Logger) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		fixtures:  fixtures,
		predictor: predictor,
		results:   cache.NewStore(0),
		logger:    logger,
	}
}

func (s *PredictionService) Predict(ctx context.Context, req PredictionRequest) (prediction.Prediction, error) {
	match, err := s.fixtures.ResolveMatch(ctx, req.MatchID)
	if err != nil {
		return prediction.Prediction{}, err
	}

	home := strings.TrimSpace(req.HomeTeam)
	if home == "" {
		home = match.HomeTeam.Name
	}
	away := strings.TrimSpace(req.AwayTeam)
	if away == "" {
		away = match.AwayTeam.Name
	}
	if home == "" || away == "" {
		return prediction.Prediction{}, crerr.Wrap(ErrInvalidInput, "home and away team names are required")
	}

	key := fmt.Sprintf("prediction:%d:%s:%s", match.ID, home, away)
	value, err := s.results.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.predictor.Predict(ctx, home, away)
	})
	if err != nil {
		return prediction.Prediction{}, err
	}

	pred, ok := value.(prediction.Prediction)
	if !ok {
		return prediction.Prediction{}, crerr.Newf("unexpected cached prediction type %T", value)
	}

	s.logger.DebugContext(ctx, "prediction served",
		"matchID", match.ID,
		"homeTeam", home,
		"awayTeam", away,
	)
	return pred, nil
}
