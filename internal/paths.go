/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"os"
	"path/filepath"
)

// DefaultRosterPath is where the on-disk roster lives unless a command is
// told otherwise. Both courtbot and rosterseed must agree on it.
func DefaultRosterPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultRosterDir
	}

	return filepath.Join(home, DefaultRosterDir)
}
