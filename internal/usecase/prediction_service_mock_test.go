package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/dioarsa/football-oracle/internal/domain/prediction"
	"github.com/dioarsa/football-oracle/internal/platform/logging"
)

type mockPredictor struct {
	mock.Mock
}

func (m *mockPredictor) Predict(ctx context.Context, homeTeam, awayTeam string) (prediction.Prediction, error) {
	args := m.Called(ctx, homeTeam, awayTeam)
	return args.Get(0).(prediction.Prediction), args.Error(1)
}

func TestPredictionService_PassesResolvedNamesUsingMock(t *testing.T) {
	t.Parallel()

	predictor := &mockPredictor{}
	predictor.
		On("Predict", mock.Anything, "Liverpool FC", "Manchester City FC").
		Return(prediction.Prediction{Winner: "Liverpool FC", Scoreline: "2-0"}, nil).
		Once()

	fixtures := NewFixtureService(&stubFixtureProvider{matches: testMatches()}, logging.NewNop())
	svc := NewPredictionService(fixtures, predictor, logging.NewNop())

	got, err := svc.Predict(context.Background(), PredictionRequest{MatchID: 1})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if got.Winner != "Liverpool FC" || got.Scoreline != "2-0" {
		t.Fatalf("unexpected prediction %+v", got)
	}

	// Memoized second call must not reach the model again; Once above would
	// fail the assertion if it did.
	if _, err := svc.Predict(context.Background(), PredictionRequest{MatchID: 1}); err != nil {
		t.Fatalf("memoized predict: %v", err)
	}
	predictor.AssertExpectations(t)
}
