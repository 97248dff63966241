/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package persist keeps the roster in a key/value blob backend as a JSON
// array of player records under a single fixed key. Any httpcache.Cache can
// serve as the backend: memory for tests and throwaway sessions, a local
// directory, or an S3 bucket.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/mikeb26/badminton-courtbot/internal"
	"github.com/mikeb26/badminton-courtbot/roster"
	"github.com/mikeb26/badminton-courtbot/s3cache"
)

type RosterStore struct {
	backend httpcache.Cache
	key     string
}

func New(backend httpcache.Cache) *RosterStore {
	return &RosterStore{
		backend: backend,
		key:     internal.RosterStorageKey,
	}
}

// NewMemory returns a store that forgets everything when the process exits.
func NewMemory() *RosterStore {
	return New(httpcache.NewMemoryCache())
}

// NewDisk returns a store rooted at dir, which is created on first save.
func NewDisk(dir string) *RosterStore {
	return New(diskcache.New(dir))
}

// NewS3 returns a store in bucket. It fails when the bucket cannot be reached
// with the default AWS credentials.
func NewS3(ctx context.Context, bucket string, gzip bool) (*RosterStore, error) {
	cache := s3cache.New(ctx, bucket, gzip)
	if err := cache.Init(); err != nil {
		return nil, fmt.Errorf("persist.news3: %w", err)
	}

	return New(cache), nil
}

// Load returns the stored roster. Absent or unreadable data yields an empty
// roster; the latter is logged.
func (s *RosterStore) Load() roster.Roster {
	data, ok := s.backend.Get(s.key)
	if !ok || len(data) == 0 {
		return roster.Roster{}
	}

	var players []roster.Player
	if err := json.Unmarshal(data, &players); err != nil {
		log.Printf("persist.load: discarding malformed roster under %v: %v",
			s.key, err)
		return roster.Roster{}
	}

	return roster.New(players)
}

// Save replaces the stored roster with r. Failures are logged and otherwise
// ignored; the in-memory roster stays authoritative.
func (s *RosterStore) Save(r roster.Roster) {
	players := r.Players()
	if players == nil {
		players = []roster.Player{}
	}

	data, err := json.Marshal(players)
	if err != nil {
		log.Printf("persist.save: failed to encode roster: %v", err)
		return
	}

	s.backend.Set(s.key, data)
}
