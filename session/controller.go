/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package session

import (
	"context"
	"errors"
	"log"

	"github.com/mikeb26/badminton-courtbot/roster"
	"golang.org/x/sync/errgroup"
)

var ErrClosed = errors.New("session closed")

// Store persists the roster. Save must not report failures; a slow Save only
// delays persistence, never the session.
type Store interface {
	Load() roster.Roster
	Save(r roster.Roster)
}

type request struct {
	action Action // nil asks for a snapshot only
	reply  chan result
}

type result struct {
	view   View
	events []Event
	err    error
}

// Controller owns the session state. Actions are applied one at a time in
// arrival order; roster saves run on their own goroutine and only the most
// recent unsaved roster is written.
type Controller struct {
	inbox  chan request
	saves  chan roster.Roster
	store  Store
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewController loads the roster from store and starts the session. Close
// must be called to stop it and flush the final save.
func NewController(parent context.Context, store Store, gameTo int) *Controller {
	ctx, cancel := context.WithCancel(parent)
	group, gctx := errgroup.WithContext(ctx)

	c := &Controller{
		inbox:  make(chan request, 16),
		saves:  make(chan roster.Roster, 1),
		store:  store,
		ctx:    gctx,
		cancel: cancel,
		group:  group,
	}
	initial := New(store.Load(), gameTo)

	group.Go(func() error {
		c.loop(initial)
		return nil
	})
	group.Go(func() error {
		c.saveLoop()
		return nil
	})

	return c
}

// Dispatch applies a and returns the resulting view along with any events.
// A rejected action leaves the session unchanged and returns its error.
func (c *Controller) Dispatch(ctx context.Context, a Action) (View, []Event, error) {
	if a == nil {
		return View{}, nil, errors.New("session.dispatch: nil action")
	}
	res, err := c.send(ctx, a)
	if err != nil {
		return View{}, nil, err
	}

	return res.view, res.events, res.err
}

// Snapshot returns the current view without changing anything.
func (c *Controller) Snapshot(ctx context.Context) (View, error) {
	res, err := c.send(ctx, nil)
	if err != nil {
		return View{}, err
	}

	return res.view, nil
}

// Close stops the session and waits for the last roster save to finish.
func (c *Controller) Close() error {
	c.cancel()
	return c.group.Wait()
}

func (c *Controller) send(ctx context.Context, a Action) (result, error) {
	req := request{action: a, reply: make(chan result, 1)}

	select {
	case c.inbox <- req:
	case <-c.ctx.Done():
		return result{}, ErrClosed
	case <-ctx.Done():
		return result{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res, nil
	case <-c.ctx.Done():
		return result{}, ErrClosed
	case <-ctx.Done():
		return result{}, ctx.Err()
	}
}

func (c *Controller) loop(state State) {
	defer close(c.saves)

	for {
		select {
		case <-c.ctx.Done():
			return

		case req := <-c.inbox:
			if req.action == nil {
				req.reply <- result{view: state.View()}
				break
			}

			next, events, err := Reduce(state, req.action)
			if err != nil {
				log.Printf("session.loop: %T rejected: %v", req.action, err)
			}
			state = next
			for _, ev := range events {
				if rc, ok := ev.(RosterChanged); ok {
					c.queueSave(rc.Roster)
				}
			}
			req.reply <- result{view: state.View(), events: events, err: err}
		}
	}
}

// queueSave replaces any roster still waiting to be saved with r.
func (c *Controller) queueSave(r roster.Roster) {
	for {
		select {
		case c.saves <- r:
			return
		default:
		}
		select {
		case <-c.saves:
		default:
		}
	}
}

func (c *Controller) saveLoop() {
	for r := range c.saves {
		c.store.Save(r)
	}
	log.Printf("session.saveloop: roster saver stopped")
}
