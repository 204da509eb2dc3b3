package game

import (
	"github.com/dnguyen/cardchomp/internal/deck"
)

// CheckPlay decides whether candidate cards legally open against, follow, or
// chomp the current table play. A nil last play means the round is open and
// any classifiable candidate is accepted. The opening flag marks the very
// first play of the very first game in the session, which must include the
// 3♠. Returns nil when the play is legal, a *RuleError otherwise.
func CheckPlay(cards []deck.Card, last *Play, opening bool) error {
	if len(cards) == 0 {
		return rejectf(ErrInvalidSelection, "no cards selected")
	}
	if hasDuplicateCard(cards) {
		return rejectf(ErrInvalidSelection, "selection repeats a card")
	}

	playType := Classify(cards)
	if playType == PlayNone {
		return rejectf(ErrInvalidSelection, "cards do not form a recognized combination")
	}

	if opening && !containsOpeningCard(cards) {
		return rejectf(ErrIllegalPlay, "the first play of the session must include the 3♠")
	}

	if last == nil {
		return nil
	}

	if playType != last.Type {
		if isChomp(playType, len(cards), last) {
			return nil
		}
		return rejectf(ErrIllegalPlay, "a %s cannot follow a %s", playType, last.Type)
	}

	// Same type: the candidate's governing value must strictly exceed the
	// table play's. Runs compare by topmost rank reached, never by total
	// card order across different lengths or suits.
	switch playType {
	case Straight, ConsecutivePairs:
		if highestRank(cards) <= highestRank(last.Cards) {
			return rejectf(ErrIllegalPlay, "%s does not beat the table play", playType)
		}
	default:
		if highestOrder(cards) <= highestOrder(last.Cards) {
			return rejectf(ErrIllegalPlay, "%s does not beat the table play", playType)
		}
	}
	return nil
}

// IsLegal reports whether CheckPlay accepts the candidate
func IsLegal(cards []deck.Card, last *Play, opening bool) bool {
	return CheckPlay(cards, last, opening) == nil
}

// isChomp reports whether a candidate of the given type and cardinality
// counters a table play made entirely of rank-2 cards:
//
//	single 2   ← three consecutive pairs (6 cards)
//	pair of 2s ← four consecutive pairs (8 cards) or four-of-a-kind
//	triple 2s  ← five consecutive pairs (10 cards)
//
// Four 2s are terminal and cannot be chomped.
func isChomp(candidateType PlayType, candidateLen int, last *Play) bool {
	if !allRankTwo(last.Cards) {
		return false
	}
	switch len(last.Cards) {
	case 1:
		return candidateType == ConsecutivePairs && candidateLen == 6
	case 2:
		return (candidateType == ConsecutivePairs && candidateLen == 8) ||
			candidateType == FourOfAKind
	case 3:
		return candidateType == ConsecutivePairs && candidateLen == 10
	}
	return false
}

func allRankTwo(cards []deck.Card) bool {
	if len(cards) == 0 {
		return false
	}
	for _, c := range cards {
		if c.Rank != deck.Two {
			return false
		}
	}
	return true
}

// hasDuplicateCard reports whether the same card appears more than once in
// the selection. A hand holds each card at most once, so a repeated card can
// never form a playable set.
func hasDuplicateCard(cards []deck.Card) bool {
	for i, c := range cards {
		for _, other := range cards[i+1:] {
			if c == other {
				return true
			}
		}
	}
	return false
}

func containsOpeningCard(cards []deck.Card) bool {
	opening := deck.NewCard(deck.Spades, deck.Three)
	for _, c := range cards {
		if c == opening {
			return true
		}
	}
	return false
}
