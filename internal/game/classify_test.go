package game

import (
	"testing"

	"github.com/dnguyen/cardchomp/internal/deck"
)

// cards parses a space-separated card list for tests
func cards(t *testing.T, s string) []deck.Card {
	t.Helper()
	parsed, err := deck.ParseCards(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return parsed
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  PlayType
	}{
		{"single", "7d", Single},
		{"pair", "7d 7h", Pair},
		{"pair of twos", "2s 2h", Pair},
		{"triple", "Js Jc Jd", Triple},
		{"four of a kind", "9s 9c 9d 9h", FourOfAKind},
		{"three card straight", "3s 4c 5h", Straight},
		{"long straight", "6s 7c 8d 9h Tc Jd Qs", Straight},
		{"twelve card straight", "3s 4c 5h 6s 7c 8d 9h Tc Jd Qs Kc Ah", Straight},
		{"straight mixing suits", "4d 5s 6h", Straight},
		{"three consecutive pairs", "3s 3c 4d 4h 5s 5c", ConsecutivePairs},
		{"four consecutive pairs", "8s 8c 9d 9h Ts Tc Jd Jh", ConsecutivePairs},
		{"five consecutive pairs", "3s 3c 4d 4h 5s 5c 6d 6h 7s 7c", ConsecutivePairs},

		{"empty", "", PlayNone},
		{"mismatched pair", "7d 8h", PlayNone},
		{"two matching plus one", "7d 7h 8c", PlayNone},
		{"five of a kind impossible, gap run", "7d 7h 7s 7c 8d", PlayNone},
		{"straight with gap", "3s 4c 6h", PlayNone},
		{"straight containing a two", "Kc Ah 2s", PlayNone},
		{"two card run too short", "3s 4c", PlayNone},
		{"straight with duplicate rank", "3s 3c 4h 5d", PlayNone},
		{"consecutive pairs with gap", "3s 3c 4d 4h 6s 6c", PlayNone},
		{"consecutive pairs containing twos", "Ks Kc As Ac 2s 2c", PlayNone},
		{"two pairs only", "3s 3c 4d 4h", PlayNone},
		{"odd count cannot pair up", "3s 3c 4d 4h 5s", PlayNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(cards(t, tt.cards)); got != tt.want {
				t.Errorf("Classify(%s) = %v, want %v", tt.cards, got, tt.want)
			}
		})
	}
}

// Classification must be invariant under reordering of the selection
func TestClassifyOrderInsensitive(t *testing.T) {
	orderings := []string{
		"3s 4c 5h 6d",
		"6d 3s 5h 4c",
		"5h 6d 4c 3s",
	}
	for _, s := range orderings {
		if got := Classify(cards(t, s)); got != Straight {
			t.Errorf("Classify(%s) = %v, want Straight", s, got)
		}
	}

	pairs := []string{
		"5s 5c 4d 4h 3s 3c",
		"3c 4d 5s 3s 5c 4h",
	}
	for _, s := range pairs {
		if got := Classify(cards(t, s)); got != ConsecutivePairs {
			t.Errorf("Classify(%s) = %v, want ConsecutivePairs", s, got)
		}
	}
}

func TestPlayTypeString(t *testing.T) {
	tests := []struct {
		playType PlayType
		want     string
	}{
		{Single, "Single"},
		{Pair, "Pair"},
		{Triple, "Triple"},
		{FourOfAKind, "Four-of-a-kind"},
		{Straight, "Straight"},
		{ConsecutivePairs, "Consecutive-pairs"},
		{PlayNone, "None"},
	}
	for _, tt := range tests {
		if got := tt.playType.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
