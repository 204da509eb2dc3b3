package deck

import (
	"fmt"
	rand "math/rand/v2"
	"sort"
)

// Size is the number of cards in a full deck
const Size = 52

// HandSize is the number of cards dealt to each of the four seats
const HandSize = 13

// NumHands is the number of hands a full deck is dealt into
const NumHands = 4

// New returns the full 52-card deck in total order: one card per (rank, suit)
// pair, ascending by Order. Deterministic, no side effects.
func New() []Card {
	cards := make([]Card, 0, Size)
	for rank := Three; rank <= Two; rank++ {
		for suit := Spades; suit <= Hearts; suit++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle returns a uniformly random permutation of the given cards using a
// Fisher-Yates shuffle. The input slice is never mutated.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Sort sorts cards in place, ascending by total deck order
func Sort(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Order() < cards[j].Order()
	})
}

// Sorted returns a copy of cards sorted ascending by total deck order
func Sorted(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	Sort(out)
	return out
}

// Deal partitions a full deck into four 13-card hands by round-robin
// distribution (card i goes to hand i mod 4), each sorted ascending by order.
func Deal(cards []Card) ([][]Card, error) {
	if len(cards) != NumHands*HandSize {
		return nil, fmt.Errorf("deal requires %d cards, got %d", NumHands*HandSize, len(cards))
	}

	hands := make([][]Card, NumHands)
	for i := range hands {
		hands[i] = make([]Card, 0, HandSize)
	}
	for i, card := range cards {
		hands[i%NumHands] = append(hands[i%NumHands], card)
	}
	for _, hand := range hands {
		Sort(hand)
	}
	return hands, nil
}

// FindOpeningHand returns the index of the hand holding the 3♠, the lowest
// card in the deck and the mandatory opening card. Returns -1 if no hand
// holds it, which is impossible for hands dealt from a complete deck.
func FindOpeningHand(hands [][]Card) int {
	opening := NewCard(Spades, Three)
	for i, hand := range hands {
		for _, card := range hand {
			if card == opening {
				return i
			}
		}
	}
	return -1
}
