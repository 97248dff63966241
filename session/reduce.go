/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package session

import (
	"errors"
	"fmt"

	"github.com/mikeb26/badminton-courtbot/match"
	"github.com/mikeb26/badminton-courtbot/pairing"
	"github.com/mikeb26/badminton-courtbot/roster"
	"github.com/mikeb26/badminton-courtbot/selection"
)

// Reduce applies a to s. On error the returned State is s itself, so a failed
// action never leaves a partial change behind. Actions naming a player that
// is not on the roster are silently ignored.
func Reduce(s State, a Action) (State, []Event, error) {
	next, events, err := apply(s, a)
	if errors.Is(err, roster.ErrNotFound) {
		return s, nil, nil
	}
	if err != nil {
		return s, nil, err
	}

	return next, events, nil
}

func apply(s State, a Action) (State, []Event, error) {
	switch act := a.(type) {
	case AddPlayer:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			r, _, err := s.Roster.AddPlayer(act.Name, roster.ClampLevel(act.Level))
			if err != nil {
				return s, nil, err
			}
			return s.withRoster(r)
		})

	case UpdatePlayer:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			patch := act.Patch
			if patch.Level != nil {
				level := roster.ClampLevel(*patch.Level)
				patch.Level = &level
			}
			r, err := s.Roster.UpdatePlayer(act.ID, patch)
			if err != nil {
				return s, nil, err
			}
			return s.withRoster(r)
		})

	case RemovePlayer:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			r, err := s.Roster.RemovePlayer(act.ID)
			if err != nil {
				return s, nil, err
			}
			s.Selection = s.Selection.Remove(act.ID)
			return s.withRoster(r)
		})

	case ResetMatchCounts:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			return s.withRoster(s.Roster.ResetMatchCounts())
		})

	case ClearRoster:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			s.Selection = s.Selection.Clear()
			return s.withRoster(s.Roster.Clear())
		})

	case ImportPlayers:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			r := s.Roster
			for _, e := range act.Entries {
				var err error
				r, _, err = r.AddPlayer(e.Name, roster.ClampLevel(e.Level))
				if err != nil {
					return s, nil, fmt.Errorf("import %q: %w", e.Name, err)
				}
			}
			return s.withRoster(r)
		})

	case ToggleSelection:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			if _, ok := s.Roster.Get(act.ID); !ok {
				return s, nil, fmt.Errorf("select %v: %w", act.ID,
					roster.ErrNotFound)
			}
			s.Selection = s.Selection.Toggle(act.ID)
			return s, nil, nil
		})

	case AutoPick:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			if s.Roster.Len() < selection.Size {
				return s, nil, fmt.Errorf("auto pick from %d players: %w",
					s.Roster.Len(), selection.ErrInsufficientPlayers)
			}
			s.Selection = s.Selection.AutoPick(s.Roster)
			return s, nil, nil
		})

	case ClearSelection:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			s.Selection = s.Selection.Clear()
			return s, nil, nil
		})

	case PreparePairing:
		return inPhase(s, Lobby, a, func() (State, []Event, error) {
			players, err := s.Selection.Resolve(s.Roster)
			if err != nil {
				return s, nil, err
			}
			s.ranked = pairing.SortByLevel(players)
			s.Pairing = pairing.Balanced
			return s.withPairing()
		})

	case CyclePairing:
		return inPhase(s, PairingConfirmation, a, func() (State, []Event, error) {
			s.Pairing = pairing.Cycle(s.Pairing)
			return s.withPairing()
		})

	case CancelPairing:
		return inPhase(s, PairingConfirmation, a, func() (State, []Event, error) {
			return s.backToLobby(), nil, nil
		})

	case StartMatch:
		return inPhase(s, PairingConfirmation, a, func() (State, []Event, error) {
			s.Match = match.Start(s.Teams.Team1, s.Teams.Team2, s.GameTo)
			s.Phase = LiveMatch
			return s, nil, nil
		})

	case AddPoint:
		return inPhase(s, LiveMatch, a, func() (State, []Event, error) {
			m, err := s.Match.AddPoint(act.Side, act.Amount)
			if err != nil {
				return s, nil, err
			}
			s.Match = m
			return s, nil, nil
		})

	case Undo:
		return inPhase(s, LiveMatch, a, func() (State, []Event, error) {
			s.Match = s.Match.Undo()
			return s, nil, nil
		})

	case FinishMatch:
		return inPhase(s, LiveMatch, a, func() (State, []Event, error) {
			ids, err := s.Match.Finish()
			if err != nil {
				return s, nil, err
			}
			done := MatchFinished{
				Winner:       s.Match.Winner,
				Score1:       s.Match.Score1,
				Score2:       s.Match.Score2,
				Participants: ids,
			}
			s = s.backToLobby()
			s.Selection = s.Selection.Clear()
			s.Roster = s.Roster.RecordParticipation(ids)
			return s, []Event{RosterChanged{Roster: s.Roster}, done}, nil
		})

	case CancelMatch:
		return inPhase(s, LiveMatch, a, func() (State, []Event, error) {
			return s.backToLobby(), nil, nil
		})
	}

	return s, nil, fmt.Errorf("unsupported action %T", a)
}

func inPhase(s State, want Phase, a Action,
	fn func() (State, []Event, error)) (State, []Event, error) {

	if s.Phase != want {
		return s, nil, fmt.Errorf("%T in %v phase: %w", a, s.Phase, ErrWrongPhase)
	}

	return fn()
}

func (s State) withRoster(r roster.Roster) (State, []Event, error) {
	s.Roster = r
	return s, []Event{RosterChanged{Roster: r}}, nil
}

func (s State) withPairing() (State, []Event, error) {
	teams, err := pairing.Generate(s.ranked, s.Pairing)
	if err != nil {
		return s, nil, err
	}
	s.Teams = teams
	s.Phase = PairingConfirmation

	return s, nil, nil
}

// backToLobby drops the proposed teams and any match but keeps the selection.
func (s State) backToLobby() State {
	s.Phase = Lobby
	s.Teams = pairing.Teams{}
	s.Match = match.State{}
	s.Pairing = pairing.Balanced
	s.ranked = nil

	return s
}
