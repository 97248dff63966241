/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package match

import (
	"fmt"
	"strings"
)

// BuildScoreboardOutput renders the live score with a marker beside the team
// holding serve, or beside the winner once the game is over.
func BuildScoreboardOutput(s State) string {
	type row struct {
		mark, team, players, score string
	}
	rows := make([]row, 0, 2)
	for _, side := range []Side{SideLeft, SideRight} {
		t := s.Team(side)
		r := row{
			team:    string(side),
			players: fmt.Sprintf("%s + %s", t[0].Name, t[1].Name),
			score:   fmt.Sprintf("%d", s.score(side)),
		}
		if s.Winner == SideNone && s.ServingTeam() == side {
			r.mark = "*"
		} else if s.Winner == side {
			r.mark = "W"
		}
		rows = append(rows, r)
	}

	maxT, maxP := len("Side"), len("Players")
	for _, r := range rows {
		if l := len(r.team); l > maxT {
			maxT = l
		}
		if l := len([]rune(r.players)); l > maxP {
			maxP = l
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v game to %d\n\n", s.Type, s.GameTo))
	sb.WriteString(fmt.Sprintf("   %-*s  %-*s  Score\n", maxT, "Side", maxP,
		"Players"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-1s  %-*s  %-*s  %v\n", r.mark, maxT,
			r.team, maxP, r.players, r.score))
	}
	sb.WriteString("\n")
	if s.Winner != SideNone {
		sb.WriteString(fmt.Sprintf("%v wins %d-%d\n", s.Winner,
			s.score(s.Winner), s.score(opposite(s.Winner))))
	} else {
		sb.WriteString(fmt.Sprintf("Server %v serving from the %v\n", s.Server,
			strings.ToLower(string(s.ServingSide))))
	}

	return sb.String()
}

func (s State) score(side Side) int {
	if side == SideRight {
		return s.Score2
	}
	return s.Score1
}

func opposite(side Side) Side {
	if side == SideRight {
		return SideLeft
	}
	return SideRight
}
