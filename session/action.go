/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package session

import (
	"github.com/mikeb26/badminton-courtbot/match"
	"github.com/mikeb26/badminton-courtbot/roster"
)

// Action is a single user request applied by Reduce.
type Action interface{ isAction() }

// roster maintenance; lobby only

type AddPlayer struct {
	Name  string
	Level int
}

func (AddPlayer) isAction() {}

type UpdatePlayer struct {
	ID    roster.PlayerID
	Patch roster.Patch
}

func (UpdatePlayer) isAction() {}

type RemovePlayer struct{ ID roster.PlayerID }

func (RemovePlayer) isAction() {}

type ResetMatchCounts struct{}

func (ResetMatchCounts) isAction() {}

type ClearRoster struct{}

func (ClearRoster) isAction() {}

// ImportPlayers adds every entry or, if any is rejected, none of them.
type ImportPlayers struct{ Entries []roster.SignupEntry }

func (ImportPlayers) isAction() {}

// selection; lobby only

type ToggleSelection struct{ ID roster.PlayerID }

func (ToggleSelection) isAction() {}

type AutoPick struct{}

func (AutoPick) isAction() {}

type ClearSelection struct{}

func (ClearSelection) isAction() {}

// pairing confirmation

type PreparePairing struct{}

func (PreparePairing) isAction() {}

type CyclePairing struct{}

func (CyclePairing) isAction() {}

type CancelPairing struct{}

func (CancelPairing) isAction() {}

type StartMatch struct{}

func (StartMatch) isAction() {}

// live match

type AddPoint struct {
	Side   match.Side
	Amount int
}

func (AddPoint) isAction() {}

type Undo struct{}

func (Undo) isAction() {}

type FinishMatch struct{}

func (FinishMatch) isAction() {}

type CancelMatch struct{}

func (CancelMatch) isAction() {}

// Event reports a side effect of a successful action.
type Event interface{ isEvent() }

// RosterChanged carries the roster to persist.
type RosterChanged struct{ Roster roster.Roster }

func (RosterChanged) isEvent() {}

type MatchFinished struct {
	Winner       match.Side
	Score1       int
	Score2       int
	Participants []roster.PlayerID
}

func (MatchFinished) isEvent() {}
