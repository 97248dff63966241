/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/badminton-courtbot/internal"
	"github.com/mikeb26/badminton-courtbot/persist"
	"github.com/mikeb26/badminton-courtbot/roster"
	"golang.org/x/sync/errgroup"
)

// this program exists just to seed the stored roster from sign-up sheets
// ahead of a club night

func main() {
	fs := flag.NewFlagSet("rosterseed", flag.ExitOnError)
	dir := fs.String("dir", internal.DefaultRosterPath(),
		"Roster directory; ignored with -s3")
	useS3 := fs.Bool("s3", false, "Seed the roster stored in S3")
	bucket := fs.String("bucket", internal.RosterBucket, "S3 bucket for -s3")
	gz := fs.Bool("gzip", false, "Compress the roster stored in S3")
	replace := fs.Bool("replace", false,
		"Replace the stored roster instead of adding to it")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %v [flags] <sheet file|url>...\n",
			os.Args[0])
		fs.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()
	var store *persist.RosterStore
	if *useS3 {
		var err error
		store, err = persist.NewS3(ctx, *bucket, *gz)
		if err != nil {
			log.Fatalf("rosterseed: %v", err)
		}
	} else {
		store = persist.NewDisk(*dir)
	}

	client := internal.NewCachedHttpClient(httpcache.NewMemoryCache(),
		time.Minute)
	r, added, err := seed(ctx, store, client, fs.Args(), *replace)
	if err != nil {
		log.Fatalf("rosterseed: %v", err)
	}

	fmt.Printf("seeded %v new players; roster now has %v\n", added, r.Len())
}

type sheetLoader func(ctx context.Context, src string) ([]roster.SignupEntry, error)

// seed reads every sheet concurrently and adds each name not already on the
// roster, in sheet order. Names match without regard to case or spacing.
func seed(ctx context.Context, store *persist.RosterStore, client *http.Client,
	sources []string, replace bool) (roster.Roster, int, error) {

	sheets, err := loadSheets(ctx, func(ctx context.Context,
		src string) ([]roster.SignupEntry, error) {

		return roster.LoadSignupSheet(ctx, client, src)
	}, sources)
	if err != nil {
		return roster.Roster{}, 0, err
	}

	var r roster.Roster
	if !replace {
		r = store.Load()
	}
	known := make(map[string]bool, r.Len())
	for _, p := range r.Players() {
		known[strings.ToLower(p.Name)] = true
	}

	added := 0
	for _, entries := range sheets {
		for _, e := range entries {
			if known[strings.ToLower(e.Name)] {
				continue
			}
			r, _, err = r.AddPlayer(e.Name, roster.ClampLevel(e.Level))
			if err != nil {
				return roster.Roster{}, 0, fmt.Errorf("adding %q: %w", e.Name, err)
			}
			known[strings.ToLower(e.Name)] = true
			added++
		}
	}
	store.Save(r)

	return r, added, nil
}

func loadSheets(ctx context.Context, load sheetLoader,
	sources []string) ([][]roster.SignupEntry, error) {

	sheets := make([][]roster.SignupEntry, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for idx, src := range sources {
		idx, src := idx, src
		g.Go(func() error {
			entries, err := load(gctx, src)
			if err != nil {
				return fmt.Errorf("%v: %w", src, err)
			}
			sheets[idx] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sheets, nil
}
