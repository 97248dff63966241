/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"strings"
)

// BuildTeamsOutput formats a proposed split with each team's level total.
func BuildTeamsOutput(t Teams) string {
	type row struct{ team, players, total string }
	rows := []row{
		{team: "Team 1", players: teamNames(t.Team1),
			total: fmt.Sprintf("%d", t.Team1.Level())},
		{team: "Team 2", players: teamNames(t.Team2),
			total: fmt.Sprintf("%d", t.Team2.Level())},
	}

	maxT, maxP, maxL := len("Team"), len("Players"), len("Total Lv")
	for _, r := range rows {
		if l := len(r.team); l > maxT {
			maxT = l
		}
		if l := len([]rune(r.players)); l > maxP {
			maxP = l
		}
		if l := len(r.total); l > maxL {
			maxL = l
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Proposed %v pairing (option %d of %d):\n\n",
		t.Strategy, int(t.Strategy)+1, NumStrategies))
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxT, "Team", maxP,
		"Players", maxL, "Total Lv"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxT, r.team, maxP,
			r.players, maxL, r.total))
	}

	return sb.String()
}

func teamNames(t Team) string {
	return fmt.Sprintf("%s(L%d) + %s(L%d)", t[0].Name, t[0].Level, t[1].Name,
		t[1].Level)
}
