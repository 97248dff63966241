/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/badminton-courtbot/internal"
)

const DefaultSignupLevel = 5

// SignupEntry is one row of a club night sign-up sheet.
type SignupEntry struct {
	Name  string
	Level int
}

// LoadSignupSheet reads a sign-up sheet from an http(s) URL using client, or
// otherwise from a local file.
func LoadSignupSheet(ctx context.Context, client *http.Client,
	src string) ([]SignupEntry, error) {

	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseSignupSheet(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %v: %v", src, resp.Status)
	}

	return ParseSignupSheet(resp.Body)
}

// ParseSignupSheet extracts entries from the first HTML table whose header
// has a "Name" column. An optional "Level" column is read when present;
// missing or malformed levels become DefaultSignupLevel and out of range
// levels are clamped. Rows without a name are skipped.
func ParseSignupSheet(rdr io.Reader) ([]SignupEntry, error) {
	doc, err := goquery.NewDocumentFromReader(rdr)
	if err != nil {
		return nil, fmt.Errorf("parsing sign-up sheet: %w", err)
	}

	var entries []SignupEntry
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		nameIdx, levelIdx := -1, -1
		table.Find("tr").First().Find("th, td").Each(func(i int,
			cell *goquery.Selection) {

			switch strings.ToLower(strings.TrimSpace(cell.Text())) {
			case "name", "player":
				nameIdx = i
			case "level", "lv", "lvl":
				levelIdx = i
			}
		})
		if nameIdx < 0 {
			return true // keep looking
		}
		found = true

		table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int,
			row *goquery.Selection) {

			cells := row.Find("th, td")
			if cells.Length() <= nameIdx {
				return
			}
			name := internal.CleanName(cells.Eq(nameIdx).Text())
			if name == "" {
				return
			}
			level := DefaultSignupLevel
			if levelIdx >= 0 && cells.Length() > levelIdx {
				level = parseLevel(cells.Eq(levelIdx).Text())
			}
			entries = append(entries, SignupEntry{Name: name, Level: level})
		})

		return false
	})
	if !found {
		return nil, fmt.Errorf("no table with a name column found")
	}

	return entries, nil
}

// parseLevel accepts "7", "L7" and "Lv.7" style cells.
func parseLevel(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimLeft(s, "lv. ")
	v, err := strconv.Atoi(s)
	if err != nil {
		return DefaultSignupLevel
	}

	return ClampLevel(v)
}
