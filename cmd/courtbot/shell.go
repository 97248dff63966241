/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mikeb26/badminton-courtbot/internal"
	"github.com/mikeb26/badminton-courtbot/match"
	"github.com/mikeb26/badminton-courtbot/pairing"
	"github.com/mikeb26/badminton-courtbot/roster"
	"github.com/mikeb26/badminton-courtbot/selection"
	"github.com/mikeb26/badminton-courtbot/session"
)

var errUnknownPlayer = errors.New("no such player")

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, sh *shell, args []string) error

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":         handleHelp,
	"version":      handleVersion,
	"quit":         handleQuit,
	"exit":         handleQuit,
	"players":      handlePlayers,
	"stats":        handleStats,
	"add":          handleAdd,
	"edit":         handleEdit,
	"remove":       handleRemove,
	"reset":        handleReset,
	"clear-roster": handleClearRoster,
	"import":       handleImport,
	"pick":         handlePick,
	"auto":         handleAuto,
	"unpick":       handleUnpick,
	"pair":         handlePair,
	"cycle":        handleCycle,
	"back":         handleBack,
	"start":        handleStart,
	"point":        handlePoint,
	"undo":         handleUndo,
	"score":        handleScore,
	"finish":       handleFinish,
	"cancel":       handleCancel,
}

// shell reads one command per line and applies it to the session.
type shell struct {
	ctl    *session.Controller
	out    io.Writer
	client *http.Client

	// ids in the order of the last players listing, for numeric references
	listed []roster.PlayerID
	done   bool
	reader sync.WaitGroup
}

func newShell(ctl *session.Controller, out io.Writer, client *http.Client) *shell {
	return &shell{ctl: ctl, out: out, client: client}
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // releases the reader after quit

	lines := make(chan string)
	scanErr := make(chan error, 1)
	sh.reader.Add(1)
	go func() {
		defer sh.reader.Done()
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for !sh.done {
		sh.prompt(ctx)
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			sh.exec(ctx, line)
		}
	}

	return nil
}

func (sh *shell) prompt(ctx context.Context) {
	v, err := sh.ctl.Snapshot(ctx)
	if err != nil {
		return
	}
	fmt.Fprintf(sh.out, "courtbot[%v]> ", v.Phase)
}

func (sh *shell) exec(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	handler, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		fmt.Fprintf(sh.out, "Unknown command: %s; try 'help'\n", fields[0])
		return
	}
	if err := handler(ctx, sh, fields[1:]); err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}

func (sh *shell) dispatch(ctx context.Context,
	a session.Action) (session.View, []session.Event, error) {

	return sh.ctl.Dispatch(ctx, a)
}

func (sh *shell) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(sh.out)
	return fs
}

// resolvePlayer accepts a number from the last players listing or a full
// name, compared without regard to case or spacing.
func (sh *shell) resolvePlayer(ctx context.Context, ref string) (roster.PlayerID, error) {
	v, err := sh.ctl.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	if n, err := strconv.Atoi(ref); err == nil {
		listed := sh.listed
		if listed == nil {
			listed = playerIDs(v.SortedPlayers)
		}
		if n < 1 || n > len(listed) {
			return "", fmt.Errorf("#%d: %w", n, errUnknownPlayer)
		}
		return listed[n-1], nil
	}

	name := internal.CleanName(ref)
	for _, p := range v.SortedPlayers {
		if strings.EqualFold(p.Name, name) {
			return p.ID, nil
		}
	}

	return "", fmt.Errorf("%q: %w", name, errUnknownPlayer)
}

func playerIDs(players []roster.Player) []roster.PlayerID {
	ids := make([]roster.PlayerID, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return ids
}

func handleHelp(ctx context.Context, sh *shell, args []string) error {
	fmt.Fprint(sh.out, helpText)
	return nil
}

func handleVersion(ctx context.Context, sh *shell, args []string) error {
	fmt.Fprintf(sh.out, "courtbot %v\n", internal.Version)
	return nil
}

func handleQuit(ctx context.Context, sh *shell, args []string) error {
	sh.done = true
	return nil
}

func handlePlayers(ctx context.Context, sh *shell, args []string) error {
	v, err := sh.ctl.Snapshot(ctx)
	if err != nil {
		return err
	}
	sh.listed = playerIDs(v.SortedPlayers)
	fmt.Fprint(sh.out, roster.BuildRosterOutput(v.SortedPlayers))
	sh.printSelection(v)

	return nil
}

func handleStats(ctx context.Context, sh *shell, args []string) error {
	v, err := sh.ctl.Snapshot(ctx)
	if err != nil {
		return err
	}
	players := append([]roster.Player(nil), v.SortedPlayers...)
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].MatchesPlayed != players[j].MatchesPlayed {
			return players[i].MatchesPlayed > players[j].MatchesPlayed
		}
		return players[i].Name < players[j].Name
	})
	fmt.Fprint(sh.out, roster.BuildRosterOutput(players))

	return nil
}

func handleAdd(ctx context.Context, sh *shell, args []string) error {
	fs := sh.newFlagSet("add")
	level := fs.Int("level", roster.DefaultSignupLevel, "Skill level (1-10)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name := strings.Join(fs.Args(), " ")
	if _, _, err := sh.dispatch(ctx, session.AddPlayer{Name: name,
		Level: *level}); err != nil {

		return err
	}
	fmt.Fprintf(sh.out, "Added %v\n", internal.CleanName(name))

	return nil
}

func handleEdit(ctx context.Context, sh *shell, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: edit <player> [-name X] [-level N]")
	}
	id, err := sh.resolvePlayer(ctx, args[0])
	if err != nil {
		return err
	}

	fs := sh.newFlagSet("edit")
	name := fs.String("name", "", "New name")
	level := fs.Int("level", 0, "New skill level (1-10)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	var patch roster.Patch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "level":
			patch.Level = level
		}
	})
	if patch.Name == nil && patch.Level == nil {
		return fmt.Errorf("nothing to change; pass -name or -level")
	}

	if _, _, err := sh.dispatch(ctx, session.UpdatePlayer{ID: id,
		Patch: patch}); err != nil {

		return err
	}
	fmt.Fprintln(sh.out, "Player updated")

	return nil
}

func handleRemove(ctx context.Context, sh *shell, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: remove <player>")
	}
	id, err := sh.resolvePlayer(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if _, _, err := sh.dispatch(ctx, session.RemovePlayer{ID: id}); err != nil {
		return err
	}
	// numbering shifts once a player is gone
	sh.listed = nil
	fmt.Fprintln(sh.out, "Player removed")

	return nil
}

func handleReset(ctx context.Context, sh *shell, args []string) error {
	if _, _, err := sh.dispatch(ctx, session.ResetMatchCounts{}); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Matches played reset for every player")

	return nil
}

func handleClearRoster(ctx context.Context, sh *shell, args []string) error {
	if _, _, err := sh.dispatch(ctx, session.ClearRoster{}); err != nil {
		return err
	}
	sh.listed = nil
	fmt.Fprintln(sh.out, "Roster cleared")

	return nil
}

func handleImport(ctx context.Context, sh *shell, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: import <file|url>")
	}
	entries, err := roster.LoadSignupSheet(ctx, sh.client, args[0])
	if err != nil {
		return err
	}
	if _, _, err := sh.dispatch(ctx,
		session.ImportPlayers{Entries: entries}); err != nil {

		return err
	}
	fmt.Fprintf(sh.out, "Imported %d players\n", len(entries))

	return nil
}

func handlePick(ctx context.Context, sh *shell, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: pick <player>...")
	}
	ids := make([]roster.PlayerID, 0, len(args))
	for _, ref := range args {
		id, err := sh.resolvePlayer(ctx, ref)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	var v session.View
	for _, id := range ids {
		var err error
		v, _, err = sh.dispatch(ctx, session.ToggleSelection{ID: id})
		if err != nil {
			return err
		}
	}
	sh.printSelection(v)

	return nil
}

func handleAuto(ctx context.Context, sh *shell, args []string) error {
	v, _, err := sh.dispatch(ctx, session.AutoPick{})
	if err != nil {
		return err
	}
	sh.printSelection(v)

	return nil
}

func handleUnpick(ctx context.Context, sh *shell, args []string) error {
	v, _, err := sh.dispatch(ctx, session.ClearSelection{})
	if err != nil {
		return err
	}
	sh.printSelection(v)

	return nil
}

func (sh *shell) printSelection(v session.View) {
	names := make(map[roster.PlayerID]string, len(v.SortedPlayers))
	for _, p := range v.SortedPlayers {
		names[p.ID] = p.Name
	}
	var picked []string
	for _, id := range v.SelectedIDs {
		picked = append(picked, names[id])
	}
	fmt.Fprintf(sh.out, "Selected (%d/%d): %v\n", len(picked), selection.Size,
		strings.Join(picked, ", "))
}

func handlePair(ctx context.Context, sh *shell, args []string) error {
	return sh.pairingStep(ctx, session.PreparePairing{})
}

func handleCycle(ctx context.Context, sh *shell, args []string) error {
	return sh.pairingStep(ctx, session.CyclePairing{})
}

func (sh *shell) pairingStep(ctx context.Context, a session.Action) error {
	v, _, err := sh.dispatch(ctx, a)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, pairing.BuildTeamsOutput(*v.AssignedTeams))
	fmt.Fprintln(sh.out, "\n'start' to play, 'cycle' for another split, 'back' to the lobby")

	return nil
}

func handleBack(ctx context.Context, sh *shell, args []string) error {
	v, _, err := sh.dispatch(ctx, session.CancelPairing{})
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Back in the lobby")
	sh.printSelection(v)

	return nil
}

func handleStart(ctx context.Context, sh *shell, args []string) error {
	return sh.matchStep(ctx, session.StartMatch{})
}

func handleUndo(ctx context.Context, sh *shell, args []string) error {
	return sh.matchStep(ctx, session.Undo{})
}

func handlePoint(ctx context.Context, sh *shell, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: point left|right [amount]")
	}
	amount := 1
	if len(args) == 2 {
		var err error
		if amount, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("amount %q: %w", args[1], err)
		}
	}

	return sh.matchStep(ctx, session.AddPoint{Side: parseSide(args[0]),
		Amount: amount})
}

func parseSide(s string) match.Side {
	switch strings.ToLower(s) {
	case "left", "l", "1":
		return match.SideLeft
	case "right", "r", "2":
		return match.SideRight
	}
	return match.Side(strings.ToUpper(s))
}

func (sh *shell) matchStep(ctx context.Context, a session.Action) error {
	v, _, err := sh.dispatch(ctx, a)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, match.BuildScoreboardOutput(*v.Match))
	if v.Winner != match.SideNone {
		fmt.Fprintln(sh.out, "'finish' to record the result or 'undo' to take the point back")
	}

	return nil
}

func handleScore(ctx context.Context, sh *shell, args []string) error {
	v, err := sh.ctl.Snapshot(ctx)
	if err != nil {
		return err
	}
	if v.Match == nil {
		fmt.Fprintln(sh.out, "No match in progress")
		return nil
	}
	fmt.Fprint(sh.out, match.BuildScoreboardOutput(*v.Match))

	return nil
}

func handleFinish(ctx context.Context, sh *shell, args []string) error {
	_, events, err := sh.dispatch(ctx, session.FinishMatch{})
	if err != nil {
		return err
	}
	for _, ev := range events {
		if done, ok := ev.(session.MatchFinished); ok {
			fmt.Fprintf(sh.out, "%v won %d-%d; match recorded for %d players\n",
				done.Winner, done.Score1, done.Score2, len(done.Participants))
		}
	}

	return nil
}

func handleCancel(ctx context.Context, sh *shell, args []string) error {
	v, _, err := sh.dispatch(ctx, session.CancelMatch{})
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Match cancelled; nothing recorded")
	sh.printSelection(v)

	return nil
}
