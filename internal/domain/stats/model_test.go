package stats

import "testing"

func TestWinRateFromH2H(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                      string
		homeWins, awayWins, draws int
		wantHome, wantAway        int
	}{
		{name: "even split", homeWins: 10, awayWins: 5, draws: 5, wantHome: 50, wantAway: 25},
		{name: "no meetings", homeWins: 0, awayWins: 0, draws: 0, wantHome: 0, wantAway: 0},
		{name: "rounds half up", homeWins: 1, awayWins: 1, draws: 1, wantHome: 33, wantAway: 33},
		{name: "all home", homeWins: 4, awayWins: 0, draws: 0, wantHome: 100, wantAway: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := WinRateFromH2H(tt.homeWins, tt.awayWins, tt.draws)
			if got.Home != tt.wantHome || got.Away != tt.wantAway {
				t.Fatalf("WinRateFromH2H(%d,%d,%d) = %+v, want home=%d away=%d",
					tt.homeWins, tt.awayWins, tt.draws, got, tt.wantHome, tt.wantAway)
			}
		})
	}
}
