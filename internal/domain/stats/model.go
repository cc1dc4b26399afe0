package stats

// Outcome is one result in a team's recent form.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeDraw Outcome = "D"
	OutcomeLoss Outcome = "L"
)

// HeadToHead aggregates historical results between the two clubs.
// LastResult is a display string like "LIV 2-1 MCI", or "N/A" when the
// provider has no prior meeting on record.
type HeadToHead struct {
	HomeWins   int    `json:"homeWins"`
	AwayWins   int    `json:"awayWins"`
	Draws      int    `json:"draws"`
	LastResult string `json:"lastResult"`
}

type WinRate struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// MatchStats is the per-fixture statistics block: last-five form for both
// sides, the head-to-head summary and derived win-rate percentages.
// Computed per request, never persisted.
type MatchStats struct {
	HomeForm []Outcome  `json:"homeForm"`
	AwayForm []Outcome  `json:"awayForm"`
	H2H      HeadToHead `json:"h2h"`
	WinRate  WinRate    `json:"winRate"`
}

// WinRateFromH2H derives win-rate percentages from head-to-head win/draw
// counts, substituting 1 for a zero denominator.
func WinRateFromH2H(homeWins, awayWins, draws int) WinRate {
	total := homeWins + awayWins + draws
	if total == 0 {
		total = 1
	}
	return WinRate{
		Home: roundPct(homeWins, total),
		Away: roundPct(awayWins, total),
	}
}

func roundPct(part, total int) int {
	return int(float64(part)/float64(total)*100 + 0.5)
}
