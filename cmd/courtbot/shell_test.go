/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/badminton-courtbot/internal"
	"github.com/mikeb26/badminton-courtbot/persist"
	"github.com/mikeb26/badminton-courtbot/session"
)

const signupSheet = `<table>
<tr><th>Name</th><th>Level</th></tr>
<tr><td>Fay</td><td>6</td></tr>
<tr><td>Gus</td><td>2</td></tr>
</table>`

// runScript feeds lines to a shell over a fresh in-memory session and
// returns everything it printed along with the store it saved to.
func runScript(t *testing.T, lines ...string) (string, *persist.RosterStore) {
	t.Helper()
	store := persist.NewMemory()
	ctl := session.NewController(context.Background(), store, 0)
	var out bytes.Buffer
	sh := newShell(ctl, &out,
		internal.NewCachedHttpClient(httpcache.NewMemoryCache(), time.Minute))

	err := sh.run(context.Background(),
		strings.NewReader(strings.Join(lines, "\n")+"\n"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := ctl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return out.String(), store
}

func repeat(line string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = line
	}
	return out
}

func checkContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClubNight(t *testing.T) {
	script := []string{
		"add -level 9 Amy",
		"add -level 7 Ben",
		"add -level 5 Cy",
		"add -level 3 Dee",
		"add Eli",
		"players",
		"auto",
		"pair",
		"cycle",
		"back",
		"pair",
		"start",
	}
	script = append(script, repeat("point left", 21)...)
	script = append(script, "point right", "finish", "stats", "quit",
		"add never reached")

	out, store := runScript(t, script...)
	checkContains(t, out,
		"Added Amy",
		"Selected (4/4): Amy, Ben, Cy, Eli",
		"Proposed balanced pairing (option 1 of 3)",
		"Amy(L9) + Eli(L5)",
		"Proposed stacked pairing (option 2 of 3)",
		"Back in the lobby",
		"courtbot[live]> ",
		"LEFT wins 21-0",
		"LEFT won 21-0; match recorded for 4 players",
	)
	if strings.Contains(out, "never reached") {
		t.Errorf("commands ran after quit")
	}

	for _, p := range store.Load().Players() {
		want := 1
		if p.Name == "Dee" {
			want = 0
		}
		if p.MatchesPlayed != want {
			t.Errorf("%v played %d; want %d", p.Name, p.MatchesPlayed, want)
		}
	}
}

func TestErrorsKeepShellRunning(t *testing.T) {
	out, store := runScript(t,
		"start",
		"serve",
		"add -level 4",
		"pick 7",
		"add -level 4 Amy",
		"point left",
		"score",
	)
	checkContains(t, out,
		"error: session.StartMatch in lobby phase",
		"Unknown command: serve",
		"error: name must not be empty",
		"error: #7: no such player",
		"Added Amy",
		"error: session.AddPoint in lobby phase",
		"No match in progress",
	)
	if n := store.Load().Len(); n != 1 {
		t.Errorf("stored %d players; want 1", n)
	}
}

func TestEditAndRemoveByReference(t *testing.T) {
	out, store := runScript(t,
		"add -level 4 Amy Wong",
		"add -level 6 Ben",
		"players",
		"edit 1 -level 9",
		"edit ben -name Benjamin",
		"edit 1",
		"remove amy   wong",
		"players",
	)
	checkContains(t, out, "Player updated", "nothing to change", "Player removed")

	players := store.Load().Players()
	if len(players) != 1 {
		t.Fatalf("stored %+v; want one player", players)
	}
	if p := players[0]; p.Name != "Benjamin" || p.Level != 9 {
		t.Errorf("stored %+v; want Benjamin L9", p)
	}
}

func TestPickToggles(t *testing.T) {
	out, _ := runScript(t,
		"add Amy", "add Ben", "add Cy",
		"players",
		"pick 1 2 3",
		"pick 2",
		"pair",
		"unpick",
	)
	checkContains(t, out,
		"Selected (3/4): Amy, Ben, Cy",
		"Selected (2/4): Amy, Cy",
		"error: 2 selected: exactly 4 players are needed",
		"Selected (0/4): \n",
	)
}

func TestCorrectionAndCancel(t *testing.T) {
	script := []string{"add Amy", "add Ben", "add Cy", "add Dee", "auto", "pair",
		"start", "point right", "point right -1", "point middle", "undo",
		"cancel"}
	out, store := runScript(t, script...)
	checkContains(t, out,
		"error: add point for \"MIDDLE\": unknown side",
		"Match cancelled; nothing recorded",
		"Selected (4/4)",
	)
	for _, p := range store.Load().Players() {
		if p.MatchesPlayed != 0 {
			t.Errorf("%v credited with a cancelled match", p.Name)
		}
	}
}

func TestImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signup.html")
	if err := os.WriteFile(path, []byte(signupSheet), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
		r *http.Request) {

		fmt.Fprint(w, signupSheet)
	}))
	defer srv.Close()

	out, store := runScript(t,
		"import "+path,
		"import "+srv.URL,
		"import /no/such/file.html",
	)
	checkContains(t, out, "Imported 2 players", "error: open /no/such/file.html")
	if n := store.Load().Len(); n != 4 {
		t.Errorf("stored %d players; want 4", n)
	}
}

func TestPickWithUnknownNameChangesNothing(t *testing.T) {
	out, _ := runScript(t,
		"add Amy", "add Ben",
		"pick amy zed",
		"pick ben",
	)
	checkContains(t, out,
		"error: \"zed\": no such player",
		"Selected (1/4): Ben\n",
	)
	if strings.Contains(out, "Selected (1/4): Amy") ||
		strings.Contains(out, "Selected (2/4)") {
		t.Errorf("failed pick left a partial selection:\n%s", out)
	}
}

func TestRunReleasesReaderAfterQuit(t *testing.T) {
	ctl := session.NewController(context.Background(), persist.NewMemory(), 0)
	defer ctl.Close()
	sh := newShell(ctl, io.Discard, http.DefaultClient)

	err := sh.run(context.Background(),
		strings.NewReader("quit\nplayers\nstats\n"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	stopped := make(chan struct{})
	go func() {
		sh.reader.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Errorf("input reader still running after quit")
	}
}
