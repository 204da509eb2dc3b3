package game

import (
	"github.com/dnguyen/cardchomp/internal/deck"
)

// PlayType represents the combination a set of cards forms
type PlayType int

const (
	PlayNone PlayType = iota
	Single
	Pair
	Triple
	FourOfAKind
	Straight
	ConsecutivePairs
)

// String returns the string representation of a play type
func (t PlayType) String() string {
	switch t {
	case Single:
		return "Single"
	case Pair:
		return "Pair"
	case Triple:
		return "Triple"
	case FourOfAKind:
		return "Four-of-a-kind"
	case Straight:
		return "Straight"
	case ConsecutivePairs:
		return "Consecutive-pairs"
	default:
		return "None"
	}
}

// Classify decides which play type a set of cards forms, or PlayNone if the
// set matches no recognized combination. It is a pure function of the card
// multiset: the order cards were selected in never affects the result, and
// no game state is consulted.
func Classify(cards []deck.Card) PlayType {
	switch {
	case len(cards) == 0:
		return PlayNone
	case len(cards) == 1:
		return Single
	}

	if allSameRank(cards) {
		switch len(cards) {
		case 2:
			return Pair
		case 3:
			return Triple
		case 4:
			return FourOfAKind
		}
		return PlayNone
	}

	if isStraight(cards) {
		return Straight
	}
	if isConsecutivePairs(cards) {
		return ConsecutivePairs
	}
	return PlayNone
}

func allSameRank(cards []deck.Card) bool {
	if len(cards) == 0 {
		return false
	}
	rank := cards[0].Rank
	for _, c := range cards[1:] {
		if c.Rank != rank {
			return false
		}
	}
	return true
}

// isStraight reports whether the cards form a run of 3 or more distinct,
// contiguous ranks. Rank 2 is the terminal rank and can never appear in a
// straight. Suits are irrelevant.
func isStraight(cards []deck.Card) bool {
	if len(cards) < 3 {
		return false
	}
	ranks := sortedRanks(cards)
	for i, r := range ranks {
		if r == deck.Two {
			return false
		}
		if i > 0 && r != ranks[i-1]+1 {
			return false
		}
	}
	return true
}

// isConsecutivePairs reports whether the cards group into 3 or more same-rank
// pairs whose ranks form a contiguous run (e.g. 3-3-4-4-5-5). Rank 2 is
// excluded, as with straights.
func isConsecutivePairs(cards []deck.Card) bool {
	if len(cards) < 6 || len(cards)%2 != 0 {
		return false
	}
	ranks := sortedRanks(cards)
	prev := deck.Rank(-1)
	for i := 0; i < len(ranks); i += 2 {
		if ranks[i] == deck.Two || ranks[i] != ranks[i+1] {
			return false
		}
		if prev >= 0 && ranks[i] != prev+1 {
			return false
		}
		prev = ranks[i]
	}
	return true
}

func sortedRanks(cards []deck.Card) []deck.Rank {
	ranks := make([]deck.Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	for i := 1; i < len(ranks); i++ {
		for j := i; j > 0 && ranks[j] < ranks[j-1]; j-- {
			ranks[j], ranks[j-1] = ranks[j-1], ranks[j]
		}
	}
	return ranks
}

// highestOrder returns the greatest total deck order among the cards
func highestOrder(cards []deck.Card) int {
	max := -1
	for _, c := range cards {
		if o := c.Order(); o > max {
			max = o
		}
	}
	return max
}

// highestRank returns the greatest rank among the cards
func highestRank(cards []deck.Card) deck.Rank {
	max := deck.Rank(-1)
	for _, c := range cards {
		if c.Rank > max {
			max = c.Rank
		}
	}
	return max
}
