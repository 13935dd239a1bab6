// Command nnnctl records No Nut November check-ins from the terminal.
//
// Usage:
//
//	nnnctl status
//	nnnctl checkin in|out [--reason=...]
//	nnnctl backfill DAY in|out
//	nnnctl fail DAY
//	nnnctl timezone [set ZONE|clear|list]
//	nnnctl countdown
//	nnnctl changelog [--mark-seen]
//
// Requires API_URL and NNN_SESSION for commands that talk to the API.
// Preferences are kept in the SQLite file at SQLITE_PATH.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nonutti-ng/web/internal/cli"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:], cli.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "nnnctl: %v\n", err)
		stop()
		os.Exit(1)
	}
}
