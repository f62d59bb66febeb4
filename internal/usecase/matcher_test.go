package usecase

import (
	"testing"

	"github.com/gridironhq/keeper-league/external/espn"
)

func matcherCandidates() map[int64]*espn.PlayerStats {
	return map[int64]*espn.PlayerStats{
		4047646: {ESPNID: 4047646, Name: "A.J. Brown", Position: "WR"},
		3139477: {ESPNID: 3139477, Name: "Patrick Mahomes", Position: "QB"},
		4241457: {ESPNID: 4241457, Name: "Breece Hall", Position: "RB"},
		2977187: {ESPNID: 2977187, Name: "Odell Beckham Jr.", Position: "WR"},
	}
}

func TestPlayerMatcher_ExactESPNID(t *testing.T) {
	t.Parallel()

	matcher := NewPlayerMatcher(matcherCandidates())
	got := matcher.Match(3139477, "Someone Else Entirely", "TE")
	if got == nil || got.ESPNID != 3139477 {
		t.Fatalf("expected id match to win, got=%+v", got)
	}
}

func TestPlayerMatcher_NormalizedNameMatch(t *testing.T) {
	t.Parallel()

	matcher := NewPlayerMatcher(matcherCandidates())

	got := matcher.Match(0, "AJ Brown", "WR")
	if got == nil || got.ESPNID != 4047646 {
		t.Fatalf("expected AJ Brown to match A.J. Brown, got=%+v", got)
	}

	got = matcher.Match(0, "odell beckham", "WR")
	if got == nil || got.ESPNID != 2977187 {
		t.Fatalf("expected suffix-stripped match, got=%+v", got)
	}
}

func TestPlayerMatcher_CrossPositionModerateSimilarityRejected(t *testing.T) {
	t.Parallel()

	matcher := NewPlayerMatcher(map[int64]*espn.PlayerStats{
		1: {ESPNID: 1, Name: "Jordan Mason", Position: "RB"},
	})

	// Similar-ish name, different position, so no bonus. Must not clear
	// the acceptance threshold.
	if got := matcher.Match(0, "Jordan Matthews", "WR"); got != nil {
		t.Fatalf("expected no match across positions, got=%+v", got)
	}
}

func TestPlayerMatcher_SubstringWithPositionBonus(t *testing.T) {
	t.Parallel()

	matcher := NewPlayerMatcher(map[int64]*espn.PlayerStats{
		9: {ESPNID: 9, Name: "Kenneth Walker III", Position: "RB"},
	})

	got := matcher.Match(0, "Kenneth Walker", "RB")
	if got == nil || got.ESPNID != 9 {
		t.Fatalf("expected substring match, got=%+v", got)
	}
}

func TestPlayerMatcher_DeterministicTieBreak(t *testing.T) {
	t.Parallel()

	candidates := map[int64]*espn.PlayerStats{
		2: {ESPNID: 2, Name: "Mike Williams", Position: "WR"},
		7: {ESPNID: 7, Name: "Mike Willians", Position: "WR"},
	}

	var first *espn.PlayerStats
	for i := 0; i < 10; i++ {
		matcher := NewPlayerMatcher(candidates)
		got := matcher.Match(0, "Mike Willia", "WR")
		if got == nil {
			t.Fatalf("expected a match")
		}
		if first == nil {
			first = got
		}
		if got.ESPNID != first.ESPNID {
			t.Fatalf("expected stable tie-break, got id=%d then id=%d", first.ESPNID, got.ESPNID)
		}
	}
	if first.ESPNID != 2 {
		t.Fatalf("expected sorted order to prefer Mike Williams (id 2), got=%d", first.ESPNID)
	}
}

func TestNormalizePlayerName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"A.J. Brown":           "aj brown",
		"Odell Beckham Jr.":    "odell beckham",
		"Kenneth Walker III":   "kenneth walker",
		"D'Andre Swift":        "dandre swift",
		"  Patrick  Mahomes  ": "patrick mahomes",
		"V":                    "v",
	}
	for input, want := range cases {
		if got := NormalizePlayerName(input); got != want {
			t.Fatalf("NormalizePlayerName(%q)=%q, want %q", input, got, want)
		}
	}
}
