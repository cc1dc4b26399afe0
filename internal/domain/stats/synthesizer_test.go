package stats

import (
	"reflect"
	"testing"

	"github.com/dioarsa/football-oracle/internal/domain/fixture"
)

func TestSynthesize_Deterministic(t *testing.T) {
	t.Parallel()

	home := fixture.Team{ID: 64, Name: "Liverpool FC", ShortName: "Liverpool", TLA: "LIV"}
	away := fixture.Team{ID: 65, Name: "Manchester City FC", ShortName: "Man City", TLA: "MCI"}

	first := Synthesize(home, away, 1)
	second := Synthesize(home, away, 1)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs produced different output:\n%+v\n%+v", first, second)
	}

	other := Synthesize(home, away, 2)
	if reflect.DeepEqual(first, other) {
		t.Fatal("different match ids should spread into different stats")
	}
}

func TestSynthesize_ValueRanges(t *testing.T) {
	t.Parallel()

	home := fixture.Team{ShortName: "Arsenal", TLA: "ARS"}
	away := fixture.Team{ShortName: "Tottenham", TLA: "TOT"}

	for matchID := int64(1); matchID <= 50; matchID++ {
		s := Synthesize(home, away, matchID)

		if len(s.HomeForm) != 5 || len(s.AwayForm) != 5 {
			t.Fatalf("match %d: form must be five results, got %d/%d", matchID, len(s.HomeForm), len(s.AwayForm))
		}
		for _, o := range append(append([]Outcome{}, s.HomeForm...), s.AwayForm...) {
			if o != OutcomeWin && o != OutcomeDraw && o != OutcomeLoss {
				t.Fatalf("match %d: unexpected outcome %q", matchID, o)
			}
		}

		if s.H2H.HomeWins < 5 || s.H2H.HomeWins > 19 {
			t.Fatalf("match %d: home wins %d out of range", matchID, s.H2H.HomeWins)
		}
		if s.H2H.AwayWins < 3 || s.H2H.AwayWins > 14 {
			t.Fatalf("match %d: away wins %d out of range", matchID, s.H2H.AwayWins)
		}
		if s.H2H.Draws < 2 || s.H2H.Draws > 9 {
			t.Fatalf("match %d: draws %d out of range", matchID, s.H2H.Draws)
		}
		if s.WinRate.Home < 40 || s.WinRate.Home > 84 {
			t.Fatalf("match %d: home win rate %d out of range", matchID, s.WinRate.Home)
		}
		if s.WinRate.Away < 30 || s.WinRate.Away > 74 {
			t.Fatalf("match %d: away win rate %d out of range", matchID, s.WinRate.Away)
		}
	}
}

func TestSynthesize_ManUnitedFixedForm(t *testing.T) {
	t.Parallel()

	home := fixture.Team{ShortName: "Man United", TLA: "MUN"}
	away := fixture.Team{ShortName: "Chelsea", TLA: "CHE"}

	want := []Outcome{OutcomeWin, OutcomeWin, OutcomeWin, OutcomeWin, OutcomeDraw}
	for matchID := int64(1); matchID <= 10; matchID++ {
		s := Synthesize(home, away, matchID)
		if !reflect.DeepEqual(s.HomeForm, want) {
			t.Fatalf("match %d: home form %v, want %v", matchID, s.HomeForm, want)
		}
	}

	flipped := Synthesize(away, fixture.Team{ShortName: "Man United", TLA: "MUN"}, 3)
	if !reflect.DeepEqual(flipped.AwayForm, want) {
		t.Fatalf("away form %v, want %v", flipped.AwayForm, want)
	}
}

func TestSynthesize_LastResultDisplay(t *testing.T) {
	t.Parallel()

	home := fixture.Team{ShortName: "Liverpool", TLA: "LIV"}
	away := fixture.Team{ShortName: "Man City", TLA: "MCI"}

	s := Synthesize(home, away, 1)
	if len(s.H2H.LastResult) == 0 {
		t.Fatal("last result must not be empty")
	}
	if got := s.H2H.LastResult[:4]; got != "LIV " {
		t.Fatalf("last result %q must start with home TLA", s.H2H.LastResult)
	}
	if got := s.H2H.LastResult[len(s.H2H.LastResult)-4:]; got != " MCI" {
		t.Fatalf("last result %q must end with away TLA", s.H2H.LastResult)
	}
}

func TestHashSeed(t *testing.T) {
	t.Parallel()

	if got := hashSeed(""); got != 0 {
		t.Fatalf("empty string seed = %d, want 0", got)
	}
	if got := hashSeed("abc"); got != 96354 {
		t.Fatalf("seed(abc) = %d, want 96354", got)
	}
	for _, s := range []string{"Liverpoolhome1", "Man Cityaway1", "a very long club name that overflows the accumulator"} {
		if got := hashSeed(s); got < 0 {
			t.Fatalf("seed(%q) = %d, want non-negative", s, got)
		}
	}
}
