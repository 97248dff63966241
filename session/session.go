/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package session drives a club night: it owns the roster, the current
// selection, the proposed pairing and the live match, and moves between the
// lobby, pairing confirmation and live match phases in response to actions.
//
// Reduce is a pure function over State. Controller serializes actions from
// any number of goroutines onto a single owned State and persists the roster
// after every change.
package session

import (
	"errors"

	"github.com/mikeb26/badminton-courtbot/match"
	"github.com/mikeb26/badminton-courtbot/pairing"
	"github.com/mikeb26/badminton-courtbot/roster"
	"github.com/mikeb26/badminton-courtbot/selection"
)

var ErrWrongPhase = errors.New("action not allowed in the current phase")

type Phase int

const (
	Lobby Phase = iota
	PairingConfirmation
	LiveMatch
)

func (p Phase) String() string {
	switch p {
	case Lobby:
		return "lobby"
	case PairingConfirmation:
		return "pairing"
	case LiveMatch:
		return "live"
	default:
		return "?"
	}
}

// State is one immutable snapshot of a session. Teams is only meaningful
// outside the lobby and Match only during a live match.
type State struct {
	Phase     Phase
	Roster    roster.Roster
	Selection selection.Set
	Pairing   pairing.Strategy
	Teams     pairing.Teams
	Match     match.State
	GameTo    int

	// selected players in level order, fixed while pairings are cycled
	ranked []roster.Player
}

// New starts a session in the lobby over a previously stored roster.
func New(r roster.Roster, gameTo int) State {
	if gameTo <= 0 {
		gameTo = match.DefaultGameTo
	}

	return State{
		Phase:  Lobby,
		Roster: r,
		GameTo: gameTo,
	}
}

// View is what a presentation layer renders. Nil pointers mean the item does
// not exist in the current phase.
type View struct {
	Phase         Phase
	SortedPlayers []roster.Player
	SelectedIDs   []roster.PlayerID
	Match         *match.State
	Winner        match.Side
	AssignedTeams *pairing.Teams
	PairingIndex  pairing.Strategy
}

func (s State) View() View {
	v := View{
		Phase:         s.Phase,
		SortedPlayers: s.Roster.SortedByRotationPriority(),
		SelectedIDs:   s.Selection.IDs(),
		PairingIndex:  s.Pairing,
	}
	if s.Phase != Lobby {
		teams := s.Teams
		v.AssignedTeams = &teams
	}
	if s.Phase == LiveMatch {
		m := s.Match
		v.Match = &m
		v.Winner = m.Winner
	}

	return v
}
