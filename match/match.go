/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package match implements the live scoreboard for a single game: rally
// scoring, serve assignment, serve-side alternation, win detection and
// single-step undo. State is a value; every operation returns a new State.
package match

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mikeb26/badminton-courtbot/pairing"
	"github.com/mikeb26/badminton-courtbot/roster"
)

const (
	DefaultGameTo = 21
	// PointCap ends the game regardless of the lead.
	PointCap = 30
)

var (
	ErrUnknownSide = errors.New("unknown side")
	ErrNotWon      = errors.New("match has no winner yet")
)

// Side is a half of the court. LEFT is team1, RIGHT is team2.
type Side string

const (
	SideNone  Side = ""
	SideLeft  Side = "LEFT"
	SideRight Side = "RIGHT"
)

// Position identifies one of the four on-court players.
type Position string

const (
	Player1 Position = "PLAYER_1"
	Player2 Position = "PLAYER_2"
	Player3 Position = "PLAYER_3"
	Player4 Position = "PLAYER_4"
)

type Type string

const (
	Singles Type = "Singles"
	Doubles Type = "Doubles"
)

// HistoryEntry is the scoreboard as it stood before one scoring event.
type HistoryEntry struct {
	Score1 int      `json:"score1"`
	Score2 int      `json:"score2"`
	Server Position `json:"server"`
}

type State struct {
	Score1      int            `json:"score1"`
	Score2      int            `json:"score2"`
	Server      Position       `json:"server"`
	ServingSide Side           `json:"servingSide"`
	History     []HistoryEntry `json:"history"`
	GameTo      int            `json:"gameTo"`
	Type        Type           `json:"matchType"`
	Team1       pairing.Team   `json:"team1"`
	Team2       pairing.Team   `json:"team2"`

	// Winner is kept beside the history rather than in it; undo clears it.
	Winner Side `json:"winner,omitempty"`
}

// serverSlot is the position that takes serve when a side wins a rally.
var serverSlot = map[Side]Position{
	SideLeft:  Player1,
	SideRight: Player2,
}

// Start opens a doubles game between two teams. A gameTo of zero or less
// selects DefaultGameTo.
func Start(team1, team2 pairing.Team, gameTo int) State {
	if gameTo <= 0 {
		gameTo = DefaultGameTo
	}

	return State{
		Server:      serverSlot[SideLeft],
		ServingSide: servingSideFor(0),
		GameTo:      gameTo,
		Type:        Doubles,
		Team1:       team1,
		Team2:       team2,
	}
}

// AddPoint applies amount to side's score. Negative amounts correct a
// mistaken point and never take a score below zero. Once a winner is set,
// positive amounts are ignored until Undo.
func (s State) AddPoint(side Side, amount int) (State, error) {
	if side != SideLeft && side != SideRight {
		return s, fmt.Errorf("add point for %q: %w", side, ErrUnknownSide)
	}
	if s.Winner != SideNone && amount > 0 {
		return s, nil
	}

	next := s
	next.History = append(slices.Clone(s.History), HistoryEntry{
		Score1: s.Score1,
		Score2: s.Score2,
		Server: s.Server,
	})

	if side == SideLeft {
		next.Score1 = max(0, s.Score1+amount)
	} else {
		next.Score2 = max(0, s.Score2+amount)
	}
	if amount > 0 {
		next.Server = serverSlot[side]
	}
	next.ServingSide = servingSideFor(next.Score1 + next.Score2)

	// only ever sets the winner; a correction never clears it
	if w := next.evaluateWinner(); w != SideNone {
		next.Winner = w
	}

	return next, nil
}

// Undo restores the scoreboard from before the latest scoring event and
// clears any winner. It is a no-op when there is nothing to undo.
func (s State) Undo() State {
	if len(s.History) == 0 {
		return s
	}

	last := s.History[len(s.History)-1]
	next := s
	next.History = slices.Clone(s.History[:len(s.History)-1])
	next.Score1 = last.Score1
	next.Score2 = last.Score2
	next.Server = last.Server
	next.Winner = SideNone
	next.ServingSide = servingSideFor(last.Score1 + last.Score2)

	return next
}

// Finish returns the ids of everyone who took part, team1 first, for
// crediting the match to the roster.
func (s State) Finish() ([]roster.PlayerID, error) {
	if s.Winner == SideNone {
		return nil, ErrNotWon
	}

	return append(s.Team1.IDs(), s.Team2.IDs()...), nil
}

// ServingTeam is the side whose server slot currently holds serve.
func (s State) ServingTeam() Side {
	if s.Server == serverSlot[SideRight] {
		return SideRight
	}
	return SideLeft
}

func (s State) Team(side Side) pairing.Team {
	if side == SideRight {
		return s.Team2
	}
	return s.Team1
}

// evaluateWinner applies the game rules in a fixed order: reaching GameTo
// with a two point lead, then reaching PointCap.
func (s State) evaluateWinner() Side {
	switch {
	case s.Score1 >= s.GameTo && s.Score1-s.Score2 >= 2:
		return SideLeft
	case s.Score2 >= s.GameTo && s.Score2-s.Score1 >= 2:
		return SideRight
	case s.Score1 >= PointCap:
		return SideLeft
	case s.Score2 >= PointCap:
		return SideRight
	}

	return SideNone
}

// servingSideFor returns the court side serving with total points scored:
// right on even totals, left on odd.
func servingSideFor(total int) Side {
	if total%2 == 0 {
		return SideRight
	}
	return SideLeft
}
