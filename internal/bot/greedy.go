package bot

import (
	"sort"

	"github.com/dnguyen/cardchomp/internal/deck"
	"github.com/dnguyen/cardchomp/internal/game"
)

// Greedy beats the table with the lowest legal play it can find, and opens
// rounds with its longest straight rather than breaking up pairs and
// triples. When it is down to four cards or fewer it checks for a play that
// empties the hand outright.
type Greedy struct{}

// ChooseMove implements Policy
func (Greedy) ChooseMove(state *game.State, seatID string) ([]deck.Card, bool) {
	player := state.Player(seatID)
	if player == nil || len(player.Hand) == 0 {
		return nil, false
	}

	hand := deck.Sorted(player.Hand)
	opening := state.IsOpeningPlay()

	if state.LastPlay == nil {
		return chooseLead(hand, opening)
	}

	candidates := legalFollows(hand, state.LastPlay)
	if len(candidates) == 0 {
		return nil, false
	}

	// Play to win immediately when the endgame allows it.
	if len(hand) <= 4 {
		for _, c := range candidates {
			if len(c) == len(hand) {
				return c, true
			}
		}
	}

	return candidates[0], true
}

// chooseLead picks an opening play for a fresh round: the longest straight
// if one exists, then the whole lowest-rank group, then the lowest single.
// The very first play of a session must include the 3♠.
func chooseLead(hand []deck.Card, opening bool) ([]deck.Card, bool) {
	var picks [][]deck.Card
	if s := longestStraight(hand); len(s) >= 3 {
		picks = append(picks, s)
	}
	picks = append(picks, lowestGroup(hand), hand[:1])

	for _, pick := range picks {
		if game.IsLegal(pick, nil, opening) {
			return pick, true
		}
	}

	// Unplayable opening hand; pass as a fallback.
	return nil, false
}

// legalFollows enumerates candidate plays from the hand that the validator
// accepts against the table play, sorted weakest first.
func legalFollows(hand []deck.Card, last *game.Play) [][]deck.Card {
	var candidates [][]deck.Card
	add := func(cards []deck.Card) {
		if game.IsLegal(cards, last, false) {
			candidates = append(candidates, cards)
		}
	}

	groups := groupByRank(hand)

	switch last.Type {
	case game.Single:
		for _, c := range hand {
			add([]deck.Card{c})
		}
	case game.Pair, game.Triple, game.FourOfAKind:
		size := len(last.Cards)
		for _, group := range groups {
			if len(group) >= size {
				add(group[:size])
			}
		}
	case game.Straight:
		for _, s := range allStraights(hand) {
			add(s)
		}
	case game.ConsecutivePairs:
		for _, cp := range allConsecutivePairs(hand) {
			add(cp)
		}
	}

	// Chomps come last so that ordinary follows are spent first. Same-type
	// tables already enumerated these shapes above.
	if last.Type != game.ConsecutivePairs {
		for _, cp := range allConsecutivePairs(hand) {
			add(cp)
		}
	}
	if last.Type != game.FourOfAKind {
		for _, group := range groups {
			if len(group) == 4 {
				add(group)
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return strength(candidates[i]) < strength(candidates[j])
	})
	return candidates
}

// strength orders candidate plays weakest first: fewer cards spent, then the
// lower topmost card
func strength(cards []deck.Card) int {
	max := 0
	for _, c := range cards {
		if o := c.Order(); o > max {
			max = o
		}
	}
	return len(cards)*64 + max
}

// groupByRank splits a sorted hand into same-rank groups, lowest rank first
func groupByRank(hand []deck.Card) [][]deck.Card {
	var groups [][]deck.Card
	for i := 0; i < len(hand); {
		j := i
		for j < len(hand) && hand[j].Rank == hand[i].Rank {
			j++
		}
		groups = append(groups, hand[i:j])
		i = j
	}
	return groups
}

// longestStraight returns the longest run of distinct consecutive ranks in
// the hand, one card per rank, preferring the lowest such run. Rank 2 never
// participates.
func longestStraight(hand []deck.Card) []deck.Card {
	byRank := make(map[deck.Rank]deck.Card)
	for i := len(hand) - 1; i >= 0; i-- {
		if hand[i].Rank != deck.Two {
			byRank[hand[i].Rank] = hand[i] // keep the lowest-order card per rank
		}
	}

	var best []deck.Card
	for start := deck.Three; start < deck.Two; start++ {
		var run []deck.Card
		for r := start; r < deck.Two; r++ {
			c, ok := byRank[r]
			if !ok {
				break
			}
			run = append(run, c)
		}
		if len(run) > len(best) {
			best = run
		}
	}
	return best
}

// allStraights enumerates every straight of every length in the hand, using
// the lowest card of each rank
func allStraights(hand []deck.Card) [][]deck.Card {
	var out [][]deck.Card
	longest := longestStraightPerStart(hand)
	for _, run := range longest {
		for length := 3; length <= len(run); length++ {
			s := make([]deck.Card, length)
			copy(s, run[:length])
			out = append(out, s)
		}
	}
	return out
}

func longestStraightPerStart(hand []deck.Card) [][]deck.Card {
	byRank := make(map[deck.Rank]deck.Card)
	for i := len(hand) - 1; i >= 0; i-- {
		if hand[i].Rank != deck.Two {
			byRank[hand[i].Rank] = hand[i]
		}
	}
	var runs [][]deck.Card
	for start := deck.Three; start < deck.Two; start++ {
		if _, ok := byRank[start]; !ok {
			continue
		}
		var run []deck.Card
		for r := start; r < deck.Two; r++ {
			c, ok := byRank[r]
			if !ok {
				break
			}
			run = append(run, c)
		}
		if len(run) >= 3 {
			runs = append(runs, run)
		}
	}
	return runs
}

// allConsecutivePairs enumerates runs of 3, 4, and 5 consecutive pairs
func allConsecutivePairs(hand []deck.Card) [][]deck.Card {
	pairs := make(map[deck.Rank][]deck.Card)
	for _, group := range groupByRank(hand) {
		if len(group) >= 2 && group[0].Rank != deck.Two {
			pairs[group[0].Rank] = group[:2]
		}
	}

	var out [][]deck.Card
	for start := deck.Three; start < deck.Two; start++ {
		for numPairs := 3; numPairs <= 5; numPairs++ {
			var run []deck.Card
			ok := true
			for r := start; r < start+deck.Rank(numPairs); r++ {
				pair, have := pairs[r]
				if !have || r >= deck.Two {
					ok = false
					break
				}
				run = append(run, pair...)
			}
			if ok {
				out = append(out, run)
			}
		}
	}
	return out
}

// lowestGroup returns the full same-rank group holding the lowest card
func lowestGroup(hand []deck.Card) []deck.Card {
	groups := groupByRank(hand)
	if len(groups) == 0 {
		return nil
	}
	return groups[0]
}
