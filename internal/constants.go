/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	Version   = "0.3.0"
	UserAgent = "badminton-courtbot/" + Version
	// RosterStorageKey is the fixed key the player list is persisted under.
	RosterStorageKey = "badminton_players"
	RosterBucket     = "bopmatic-badminton-courtbot-prod-roster"
	DefaultRosterDir = ".courtbot"
)
