package stats

import (
	"strconv"
	"strings"

	"github.com/dioarsa/football-oracle/internal/domain/fixture"
)

var formCycle = [8]Outcome{
	OutcomeWin, OutcomeDraw, OutcomeLoss, OutcomeWin,
	OutcomeWin, OutcomeDraw, OutcomeWin, OutcomeLoss,
}

// Synthesize produces plausible placeholder statistics for a fixture when no
// live data exists. It is a pure function of the two teams and the match id:
// repeated calls with the same inputs yield identical output.
func Synthesize(home, away fixture.Team, matchID int64) MatchStats {
	id := strconv.FormatInt(matchID, 10)

	homeSeed := hashSeed(home.ShortName + id)
	awaySeed := hashSeed(away.ShortName + id)

	return MatchStats{
		HomeForm: synthesizeForm(home.ShortName, "home", id),
		AwayForm: synthesizeForm(away.ShortName, "away", id),
		H2H: HeadToHead{
			HomeWins:   int(homeSeed%15) + 5,
			AwayWins:   int(awaySeed%12) + 3,
			Draws:      int((homeSeed+awaySeed)%8) + 2,
			LastResult: home.TLA + " " + strconv.FormatInt(homeSeed%3, 10) + "-" + strconv.FormatInt(awaySeed%3, 10) + " " + away.TLA,
		},
		WinRate: WinRate{
			Home: 40 + int(homeSeed%45),
			Away: 30 + int(awaySeed%45),
		},
	}
}

func synthesizeForm(name, side, matchID string) []Outcome {
	// Known quirk carried over from the reference dashboard: any club whose
	// name contains "Man United" always shows this fixed sequence.
	if strings.Contains(name, "Man United") {
		return []Outcome{OutcomeWin, OutcomeWin, OutcomeWin, OutcomeWin, OutcomeDraw}
	}

	seed := hashSeed(name + side + matchID)
	out := make([]Outcome, 5)
	for i := range out {
		out[i] = formCycle[(seed+int64(i))%int64(len(formCycle))]
	}
	return out
}

// hashSeed is a 32-bit rolling string hash (h = h*31 + ch with 32-bit signed
// truncation at every step), returned as the absolute value.
func hashSeed(s string) int64 {
	var h int32
	for _, ch := range s {
		h = (h << 5) - h + int32(ch)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
