package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusInPlay    = "IN_PLAY"
	StatusFinished  = "FINISHED"
)

// Team is a club as delivered by the sports-data provider. JSON tags follow
// the provider wire format so vendor payloads map straight onto the type.
type Team struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

// FullTime holds a final score. Nil goals mean the provider has not
// reported a result for that side.
type FullTime struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type Score struct {
	FullTime FullTime `json:"fullTime"`
}

// Match is one fixture. Immutable once fetched; a fresh fetch replaces the
// in-memory set wholesale, there are no merge semantics.
type Match struct {
	ID       int64     `json:"id"`
	UTCDate  time.Time `json:"utcDate"`
	Status   string    `json:"status"`
	Matchday int       `json:"matchday"`
	HomeTeam Team      `json:"homeTeam"`
	AwayTeam Team      `json:"awayTeam"`
	Score    *Score    `json:"score,omitempty"`
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}
