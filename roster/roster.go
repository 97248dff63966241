/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mikeb26/badminton-courtbot/internal"
)

const (
	MinLevel = 1
	MaxLevel = 10
)

var (
	ErrValidation = errors.New("invalid player")
	ErrNotFound   = errors.New("player not found")
)

type PlayerID string

// Player is a single club member. The JSON field names are the persisted
// record format.
type Player struct {
	ID            PlayerID `json:"id"`
	Name          string   `json:"name"`
	Level         int      `json:"level"`
	MatchesPlayed int      `json:"matchesPlayed"`
	// IsActive is carried for compatibility with stored rosters; nothing
	// reads it.
	IsActive bool `json:"isActive"`
}

// Patch describes an edit to a player; nil fields are left unchanged.
type Patch struct {
	Name  *string
	Level *int
}

// Roster is an ordered, immutable list of players. Every mutating method
// returns a new Roster and leaves the receiver untouched.
type Roster struct {
	players []Player
}

var newID = func() PlayerID {
	return PlayerID(uuid.NewString())
}

// New builds a Roster from previously stored players, preserving order.
func New(players []Player) Roster {
	return Roster{players: append([]Player(nil), players...)}
}

// ClampLevel forces a level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	} else if level > MaxLevel {
		return MaxLevel
	}

	return level
}

func validate(name string, level int) error {
	if name == "" {
		return fmt.Errorf("name must not be empty: %w", ErrValidation)
	}
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("level %v outside %v-%v: %w", level, MinLevel,
			MaxLevel, ErrValidation)
	}

	return nil
}

// AddPlayer registers a new player with a fresh id and zero matches played.
func (r Roster) AddPlayer(name string, level int) (Roster, Player, error) {
	name = internal.CleanName(name)
	if err := validate(name, level); err != nil {
		return r, Player{}, err
	}

	p := Player{
		ID:    newID(),
		Name:  name,
		Level: level,
	}
	out := r.clone()
	out.players = append(out.players, p)

	return out, p, nil
}

func (r Roster) UpdatePlayer(id PlayerID, patch Patch) (Roster, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return r, fmt.Errorf("update %v: %w", id, ErrNotFound)
	}

	p := r.players[idx]
	if patch.Name != nil {
		p.Name = internal.CleanName(*patch.Name)
	}
	if patch.Level != nil {
		p.Level = *patch.Level
	}
	if err := validate(p.Name, p.Level); err != nil {
		return r, err
	}

	out := r.clone()
	out.players[idx] = p

	return out, nil
}

func (r Roster) RemovePlayer(id PlayerID) (Roster, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return r, fmt.Errorf("remove %v: %w", id, ErrNotFound)
	}

	out := Roster{players: make([]Player, 0, len(r.players)-1)}
	out.players = append(out.players, r.players[:idx]...)
	out.players = append(out.players, r.players[idx+1:]...)

	return out, nil
}

func (r Roster) ResetMatchCounts() Roster {
	out := r.clone()
	for idx := range out.players {
		out.players[idx].MatchesPlayed = 0
	}

	return out
}

// RecordParticipation adds one match to every listed player. Calling it twice
// for the same match counts the match twice.
func (r Roster) RecordParticipation(ids []PlayerID) Roster {
	played := make(map[PlayerID]bool, len(ids))
	for _, id := range ids {
		played[id] = true
	}

	out := r.clone()
	for idx, p := range out.players {
		if played[p.ID] {
			out.players[idx].MatchesPlayed++
		}
	}

	return out
}

// SortedByRotationPriority orders players fewest matches first, stronger
// players first among equal counts, and otherwise keeps roster order.
func (r Roster) SortedByRotationPriority() []Player {
	sorted := r.Players()
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MatchesPlayed != sorted[j].MatchesPlayed {
			return sorted[i].MatchesPlayed < sorted[j].MatchesPlayed
		}
		return sorted[i].Level > sorted[j].Level
	})

	return sorted
}

func (r Roster) Clear() Roster {
	return Roster{}
}

func (r Roster) Get(id PlayerID) (Player, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return Player{}, false
	}

	return r.players[idx], true
}

// Players returns a copy of the roster in insertion order.
func (r Roster) Players() []Player {
	return append([]Player(nil), r.players...)
}

func (r Roster) Len() int {
	return len(r.players)
}

func (r Roster) indexOf(id PlayerID) int {
	for idx, p := range r.players {
		if p.ID == id {
			return idx
		}
	}

	return -1
}

func (r Roster) clone() Roster {
	return Roster{players: append([]Player(nil), r.players...)}
}
