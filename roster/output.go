/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
	"strings"
)

// BuildRosterOutput formats players into an aligned table, numbered in the
// order given so the numbers can be used to refer to players.
func BuildRosterOutput(players []Player) string {
	if len(players) == 0 {
		return "No players on the roster yet\n"
	}

	type row struct{ num, player, level, played string }
	var rows []row
	for idx, p := range players {
		rows = append(rows, row{
			num:    fmt.Sprintf("%d.", idx+1),
			player: p.Name,
			level:  fmt.Sprintf("L%d", p.Level),
			played: fmt.Sprintf("%d", p.MatchesPlayed),
		})
	}

	// Compute column widths
	maxN, maxP, maxL, maxM := len("#"), len("Player"), len("Level"),
		len("Played")
	for _, r := range rows {
		if l := len(r.num); l > maxN {
			maxN = l
		}
		if l := len([]rune(r.player)); l > maxP {
			maxP = l
		}
		if l := len(r.level); l > maxL {
			maxL = l
		}
		if l := len(r.played); l > maxM {
			maxM = l
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s\n", maxN, "#", maxP,
		"Player", maxL, "Level", maxM, "Played"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s\n", maxN, r.num,
			maxP, r.player, maxL, r.level, maxM, r.played))
	}

	return sb.String()
}
