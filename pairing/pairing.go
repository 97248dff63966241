/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mikeb26/badminton-courtbot/roster"
)

var (
	ErrPlayerCount     = errors.New("doubles pairing needs exactly 4 players")
	ErrUnknownStrategy = errors.New("unknown pairing strategy")
)

// Strategy selects one of the fixed ways of splitting four players, ranked
// strongest (p0) to weakest (p3), into two teams.
type Strategy int

const (
	// Balanced pairs p0+p3 against p1+p2.
	Balanced Strategy = iota
	// Stacked pairs p0+p1 against p2+p3.
	Stacked
	// Crossed pairs p0+p2 against p1+p3.
	Crossed

	NumStrategies = 3
)

// team member indexes into the level-sorted players, per strategy
var splits = [NumStrategies][2][2]int{
	Balanced: {{0, 3}, {1, 2}},
	Stacked:  {{0, 1}, {2, 3}},
	Crossed:  {{0, 2}, {1, 3}},
}

func (s Strategy) String() string {
	switch s {
	case Balanced:
		return "balanced"
	case Stacked:
		return "stacked"
	case Crossed:
		return "crossed"
	default:
		return "?"
	}
}

func (s Strategy) Valid() bool {
	return s >= 0 && s < NumStrategies
}

// Cycle returns the strategy after s, wrapping around.
func Cycle(s Strategy) Strategy {
	return (s + 1) % NumStrategies
}

type Team [2]roster.Player

// Level is the sum of the members' levels.
func (t Team) Level() int {
	return t[0].Level + t[1].Level
}

func (t Team) IDs() []roster.PlayerID {
	return []roster.PlayerID{t[0].ID, t[1].ID}
}

// Teams is one proposed split of the selected four.
type Teams struct {
	Team1    Team
	Team2    Team
	Strategy Strategy
}

// ParticipantIDs returns team1's ids followed by team2's.
func (t Teams) ParticipantIDs() []roster.PlayerID {
	return append(t.Team1.IDs(), t.Team2.IDs()...)
}

// SortByLevel returns a copy of players ordered strongest first. Players of
// equal level keep their relative order so pairings are reproducible.
func SortByLevel(players []roster.Player) []roster.Player {
	sorted := append([]roster.Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Level > sorted[j].Level
	})

	return sorted
}

// Generate splits four players, already ordered by SortByLevel, according to
// strategy. It never reorders the players itself.
func Generate(sorted []roster.Player, strategy Strategy) (Teams, error) {
	if len(sorted) != 4 {
		return Teams{}, fmt.Errorf("got %d players: %w", len(sorted),
			ErrPlayerCount)
	}
	if !strategy.Valid() {
		return Teams{}, fmt.Errorf("strategy %d: %w", int(strategy),
			ErrUnknownStrategy)
	}

	split := splits[strategy]
	return Teams{
		Team1:    Team{sorted[split[0][0]], sorted[split[0][1]]},
		Team2:    Team{sorted[split[1][0]], sorted[split[1][1]]},
		Strategy: strategy,
	}, nil
}
