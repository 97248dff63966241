/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikeb26/badminton-courtbot/internal"
	"github.com/mikeb26/badminton-courtbot/persist"
	"github.com/mikeb26/badminton-courtbot/roster"
)

func writeSheet(t *testing.T, dir, name, rows string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	html := "<table><tr><th>Player</th><th>Lvl</th></tr>" + rows + "</table>"
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()
	monday := writeSheet(t, dir, "mon.html",
		"<tr><td>Amy</td><td>7</td></tr><tr><td>Ben</td><td>4</td></tr>")
	tuesday := writeSheet(t, dir, "tue.html",
		"<tr><td>ben</td><td>9</td></tr><tr><td>Cy</td><td>3</td></tr>")

	store := persist.NewMemory()
	store.Save(roster.New([]roster.Player{
		{ID: "x", Name: "Amy", Level: 6, MatchesPlayed: 4},
	}))

	r, added, err := seed(context.Background(), store, http.DefaultClient,
		[]string{monday, tuesday}, false)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if added != 2 || r.Len() != 3 {
		t.Errorf("added %d, roster %d; want 2 and 3", added, r.Len())
	}

	players := store.Load().Players()
	want := []struct {
		name  string
		level int
	}{{"Amy", 6}, {"Ben", 4}, {"Cy", 3}}
	if len(players) != len(want) {
		t.Fatalf("stored %+v", players)
	}
	for idx, w := range want {
		if players[idx].Name != w.name || players[idx].Level != w.level {
			t.Errorf("player %d = %+v; want %v L%d", idx, players[idx], w.name,
				w.level)
		}
	}
	if players[0].MatchesPlayed != 4 {
		t.Errorf("existing player lost their match count")
	}

	r, added, err = seed(context.Background(), store, http.DefaultClient,
		[]string{tuesday}, true)
	if err != nil {
		t.Fatalf("seed -replace: %v", err)
	}
	if added != 2 || r.Len() != 2 || store.Load().Len() != 2 {
		t.Errorf("replace: added %d roster %d", added, r.Len())
	}
}

func TestLoadSheetsFailsAsAWhole(t *testing.T) {
	boom := errors.New("boom")
	_, err := loadSheets(context.Background(), func(_ context.Context,
		src string) ([]roster.SignupEntry, error) {

		if src == "bad" {
			return nil, boom
		}
		return []roster.SignupEntry{{Name: src, Level: 5}}, nil
	}, []string{"good", "bad", "fine"})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v; want boom", err)
	}

	store := persist.NewMemory()
	_, _, err = seed(context.Background(), store, http.DefaultClient,
		[]string{"/no/such/sheet.html"}, false)
	if err == nil {
		t.Errorf("missing sheet accepted")
	}
	if store.Load().Len() != 0 {
		t.Errorf("failed seed saved a roster")
	}
}

func TestSeedDefaultDirIsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	elsewhere := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(elsewhere); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(prev)

	sheet := writeSheet(t, elsewhere, "sheet.html",
		"<tr><td>Amy</td><td>7</td></tr>")
	_, _, err = seed(context.Background(),
		persist.NewDisk(internal.DefaultRosterPath()), http.DefaultClient,
		[]string{sheet}, false)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// courtbot's -dir default
	got := persist.NewDisk(filepath.Join(home, internal.DefaultRosterDir)).Load()
	if got.Len() != 1 {
		t.Errorf("roster under home has %d players; want 1", got.Len())
	}
}
