package footballdata

import (
	"strconv"

	"github.com/dioarsa/football-oracle/internal/domain/fixture"
	"github.com/dioarsa/football-oracle/internal/domain/stats"
)

type matchesEnvelope struct {
	Matches []fixture.Match `json:"matches"`
}

// fixturesEnvelope keeps the match array as a pointer so a payload without
// the key is distinguishable from a genuinely empty schedule.
type fixturesEnvelope struct {
	Matches *[]fixture.Match `json:"matches"`
}

type matchDetailEnvelope struct {
	Head2Head *headToHeadPayload `json:"head2head"`
}

type headToHeadPayload struct {
	NumberOfMatches int             `json:"numberOfMatches"`
	HomeTeam        headToHeadSide  `json:"homeTeam"`
	AwayTeam        headToHeadSide  `json:"awayTeam"`
	Draws           int             `json:"draws"`
	Matches         []fixture.Match `json:"matches"`
}

type headToHeadSide struct {
	ID   int64 `json:"id"`
	Wins int   `json:"wins"`
}

type providerError struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}

// deriveForm maps a team's recent matches to W/D/L outcomes. Matches the
// provider returns in a non-finished state are skipped; a missing or
// half-reported score counts as a draw; otherwise the side with the higher
// own score wins, accounting for which side the team played on.
func deriveForm(matches []fixture.Match, teamID int64) []stats.Outcome {
	out := make([]stats.Outcome, 0, len(matches))
	for _, m := range matches {
		if !fixture.IsFinishedStatus(m.Status) {
			continue
		}
		if m.Score == nil || m.Score.FullTime.Home == nil || m.Score.FullTime.Away == nil {
			out = append(out, stats.OutcomeDraw)
			continue
		}

		homeGoals := *m.Score.FullTime.Home
		awayGoals := *m.Score.FullTime.Away
		if homeGoals == awayGoals {
			out = append(out, stats.OutcomeDraw)
			continue
		}

		ownGoals, oppGoals := homeGoals, awayGoals
		if m.HomeTeam.ID != teamID {
			ownGoals, oppGoals = awayGoals, homeGoals
		}
		if ownGoals > oppGoals {
			out = append(out, stats.OutcomeWin)
		} else {
			out = append(out, stats.OutcomeLoss)
		}
	}
	return out
}

// lastResultDisplay renders the most recent head-to-head scoreline as
// "<home TLA> <h>-<a> <away TLA>", or "N/A" when no prior meeting exists.
func lastResultDisplay(matches []fixture.Match) string {
	if len(matches) == 0 {
		return "N/A"
	}

	last := matches[0]
	if last.Score == nil || last.Score.FullTime.Home == nil || last.Score.FullTime.Away == nil {
		return "N/A"
	}

	return last.HomeTeam.TLA + " " +
		strconv.Itoa(*last.Score.FullTime.Home) + "-" + strconv.Itoa(*last.Score.FullTime.Away) +
		" " + last.AwayTeam.TLA
}
