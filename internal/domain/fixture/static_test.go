package fixture

import (
	"testing"
	"time"
)

func TestStaticMatches(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	matches := StaticMatches(now)

	if len(matches) != 4 {
		t.Fatalf("got %d matches, want 4", len(matches))
	}

	for i, m := range matches {
		if m.ID != int64(i+1) {
			t.Fatalf("match %d has id %d", i, m.ID)
		}
		if m.HomeTeam.Name == "" || m.AwayTeam.Name == "" || m.HomeTeam.TLA == "" || m.AwayTeam.TLA == "" {
			t.Fatalf("match %d has incomplete teams: %+v", i, m)
		}
	}

	live := matches[2]
	if live.Status != StatusInPlay {
		t.Fatalf("third match status %q, want %q", live.Status, StatusInPlay)
	}
	if !live.UTCDate.Equal(now) {
		t.Fatalf("third match kicks off at %s, want %s", live.UTCDate, now)
	}
	if live.HomeTeam.ID != 66 || live.AwayTeam.ID != 61 {
		t.Fatalf("third match teams %d vs %d, want 66 vs 61", live.HomeTeam.ID, live.AwayTeam.ID)
	}

	if got := matches[0].UTCDate; !got.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("first match kicks off at %s, want now+24h", got)
	}
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	if got := NormalizeStatus(" in_play "); got != StatusInPlay {
		t.Fatalf("NormalizeStatus = %q, want %q", got, StatusInPlay)
	}
	if got := NormalizeStatus(""); got != StatusScheduled {
		t.Fatalf("NormalizeStatus(\"\") = %q, want %q", got, StatusScheduled)
	}
	if !IsFinishedStatus(StatusFinished) || !IsFinishedStatus("ft") {
		t.Fatal("FINISHED and FT count as finished")
	}
	if IsFinishedStatus(StatusScheduled) || IsFinishedStatus(StatusInPlay) {
		t.Fatal("SCHEDULED and IN_PLAY are not finished")
	}
}
