/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package selection

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mikeb26/badminton-courtbot/roster"
)

// Size is the number of players a doubles match needs.
const Size = 4

var ErrInsufficientPlayers = errors.New("exactly 4 players are needed")

// Set holds the ids picked for the next match, in pick order. The zero value
// is an empty selection.
type Set struct {
	ids []roster.PlayerID
}

func Of(ids ...roster.PlayerID) Set {
	var s Set
	for _, id := range ids {
		s = s.Toggle(id)
	}
	return s
}

// Toggle removes id when it is selected and otherwise adds it. Adding to a
// full selection is silently refused.
func (s Set) Toggle(id roster.PlayerID) Set {
	if s.Contains(id) {
		return s.Remove(id)
	}
	if len(s.ids) >= Size {
		return s
	}

	return Set{ids: append(slices.Clone(s.ids), id)}
}

// AutoPick replaces the selection with the players who have the strongest
// claim to play next. Short rosters produce a short selection.
func (s Set) AutoPick(r roster.Roster) Set {
	var out Set
	for _, p := range r.SortedByRotationPriority() {
		if len(out.ids) == Size {
			break
		}
		out.ids = append(out.ids, p.ID)
	}

	return out
}

func (s Set) Remove(id roster.PlayerID) Set {
	out := Set{ids: make([]roster.PlayerID, 0, len(s.ids))}
	for _, cur := range s.ids {
		if cur != id {
			out.ids = append(out.ids, cur)
		}
	}

	return out
}

func (s Set) Clear() Set {
	return Set{}
}

func (s Set) Contains(id roster.PlayerID) bool {
	return slices.Contains(s.ids, id)
}

func (s Set) IDs() []roster.PlayerID {
	return slices.Clone(s.ids)
}

func (s Set) Len() int {
	return len(s.ids)
}

// Resolve looks up the selected players in roster order. It fails unless
// exactly Size selected ids are present in the roster.
func (s Set) Resolve(r roster.Roster) ([]roster.Player, error) {
	if len(s.ids) != Size {
		return nil, fmt.Errorf("%d selected: %w", len(s.ids),
			ErrInsufficientPlayers)
	}

	var players []roster.Player
	for _, p := range r.Players() {
		if s.Contains(p.ID) {
			players = append(players, p)
		}
	}
	if len(players) != Size {
		return nil, fmt.Errorf("%d of %d selected players on the roster: %w",
			len(players), Size, ErrInsufficientPlayers)
	}

	return players, nil
}
