/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "strings"

// CleanName trims a display name and collapses internal runs of whitespace
// to a single space. An all-whitespace name cleans to "".
func CleanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
