/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mikeb26/badminton-courtbot/match"
	"github.com/mikeb26/badminton-courtbot/persist"
	"github.com/mikeb26/badminton-courtbot/roster"
	"golang.org/x/sync/errgroup"
)

// slowStore records every save and takes a while to do it so that saves
// queue up behind each other.
type slowStore struct {
	mu    sync.Mutex
	saved []roster.Roster
}

func (s *slowStore) Load() roster.Roster { return roster.Roster{} }

func (s *slowStore) Save(r roster.Roster) {
	time.Sleep(5 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, r)
}

func mustDispatch(t *testing.T, c *Controller, a Action) View {
	t.Helper()
	v, _, err := c.Dispatch(context.Background(), a)
	if err != nil {
		t.Fatalf("Dispatch(%T): %v", a, err)
	}
	return v
}

func TestControllerPersistsRoster(t *testing.T) {
	store := persist.NewMemory()
	c := NewController(context.Background(), store, 0)
	for i := 0; i < 5; i++ {
		mustDispatch(t, c, AddPlayer{Name: fmt.Sprintf("Player %d", i), Level: 5})
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := store.Load().Len(); n != 5 {
		t.Fatalf("stored %d players; want 5", n)
	}

	// a new session picks the stored roster back up
	c2 := NewController(context.Background(), store, 0)
	defer c2.Close()
	v, err := c2.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(v.SortedPlayers) != 5 || v.Phase != Lobby {
		t.Errorf("reloaded view = %+v", v)
	}
}

func TestControllerPlaysMatch(t *testing.T) {
	store := persist.NewMemory()
	c := NewController(context.Background(), store, 11)
	for i := 0; i < 4; i++ {
		mustDispatch(t, c, AddPlayer{Name: fmt.Sprintf("P%d", i), Level: i + 3})
	}
	mustDispatch(t, c, AutoPick{})
	mustDispatch(t, c, PreparePairing{})
	v := mustDispatch(t, c, StartMatch{})
	if v.Phase != LiveMatch || v.Match == nil || v.Match.GameTo != 11 {
		t.Fatalf("live view = %+v", v)
	}
	for i := 0; i < 11; i++ {
		v = mustDispatch(t, c, AddPoint{Side: match.SideLeft, Amount: 1})
	}
	if v.Winner != match.SideLeft {
		t.Fatalf("winner = %q; want LEFT", v.Winner)
	}
	_, events, err := c.Dispatch(context.Background(), FinishMatch{})
	if err != nil {
		t.Fatalf("FinishMatch: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events = %+v", events)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, p := range store.Load().Players() {
		if p.MatchesPlayed != 1 {
			t.Errorf("%v stored with %d played; want 1", p.Name, p.MatchesPlayed)
		}
	}
}

func TestControllerRejectedAction(t *testing.T) {
	c := NewController(context.Background(), persist.NewMemory(), 0)
	defer c.Close()

	_, events, err := c.Dispatch(context.Background(), StartMatch{})
	if !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("err = %v; want ErrWrongPhase", err)
	}
	if events != nil {
		t.Errorf("rejected action produced events %+v", events)
	}
	v, err := c.Snapshot(context.Background())
	if err != nil || v.Phase != Lobby {
		t.Errorf("snapshot = %+v, %v", v, err)
	}

	if _, _, err := c.Dispatch(context.Background(), nil); err == nil {
		t.Errorf("nil action accepted")
	}
}

func TestControllerSerializesConcurrentActions(t *testing.T) {
	store := persist.NewMemory()
	c := NewController(context.Background(), store, 0)

	const workers, perWorker = 8, 10
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				_, _, err := c.Dispatch(context.Background(),
					AddPlayer{Name: fmt.Sprintf("W%d-%d", w, i), Level: 5})
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	v, err := c.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(v.SortedPlayers) != workers*perWorker {
		t.Errorf("roster has %d players; want %d", len(v.SortedPlayers),
			workers*perWorker)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := store.Load().Len(); n != workers*perWorker {
		t.Errorf("stored %d players; want %d", n, workers*perWorker)
	}
}

func TestControllerSavesLatestRoster(t *testing.T) {
	store := &slowStore{}
	c := NewController(context.Background(), store, 0)
	for i := 0; i < 20; i++ {
		mustDispatch(t, c, AddPlayer{Name: fmt.Sprintf("P%d", i), Level: 5})
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.saved) == 0 {
		t.Fatalf("nothing saved")
	}
	if len(store.saved) > 20 {
		t.Errorf("saved %d times for 20 changes", len(store.saved))
	}
	if last := store.saved[len(store.saved)-1]; last.Len() != 20 {
		t.Errorf("last save has %d players; want 20", last.Len())
	}
}

func TestDispatchAfterClose(t *testing.T) {
	c := NewController(context.Background(), persist.NewMemory(), 0)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, _, err := c.Dispatch(context.Background(), AutoPick{}); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v; want ErrClosed", err)
	}
}
