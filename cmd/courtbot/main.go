/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/badminton-courtbot/internal"
	"github.com/mikeb26/badminton-courtbot/persist"
	"github.com/mikeb26/badminton-courtbot/session"
)

//go:embed help.txt
var helpText string

func main() {
	fs := flag.NewFlagSet("courtbot", flag.ExitOnError)
	fs.Usage = usage
	storeKind := fs.String("store", "disk", "Roster storage: memory, disk or s3")
	dir := fs.String("dir", internal.DefaultRosterPath(),
		"Roster directory for -store disk")
	bucket := fs.String("bucket", internal.RosterBucket,
		"S3 bucket for -store s3")
	gz := fs.Bool("gzip", false, "Compress the roster stored in S3")
	gameTo := fs.Int("gameto", 21, "Points needed to win a game")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctl := session.NewController(ctx, openStore(ctx, *storeKind, *dir, *bucket,
		*gz), *gameTo)
	sh := newShell(ctl, os.Stdout,
		internal.NewCachedHttpClient(httpcache.NewMemoryCache(), 10*time.Minute))

	fmt.Printf("courtbot %v; type 'help' for commands\n", internal.Version)
	err := sh.run(ctx, os.Stdin)
	if closeErr := ctl.Close(); closeErr != nil {
		log.Printf("courtbot: failed to close session: %v", closeErr)
	}
	if err != nil {
		log.Fatalf("courtbot: %v", err)
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

func usage() {
	fmt.Printf("%v", helpText)
}

// openStore falls back to local disk when S3 is unreachable so that a club
// night can go ahead offline.
func openStore(ctx context.Context, kind string, dir string, bucket string,
	gz bool) *persist.RosterStore {

	switch kind {
	case "memory":
		return persist.NewMemory()
	case "s3":
		store, err := persist.NewS3(ctx, bucket, gz)
		if err == nil {
			return store
		}
		log.Printf("courtbot: warning failed to init S3 roster store: %v; falling back to %v",
			err, dir)
	case "disk":
	default:
		log.Printf("courtbot: unknown store %q; using %v", kind, dir)
	}

	return persist.NewDisk(dir)
}
