package cli

import (
	"fmt"
	"strings"

	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/service/dashboard"
)

var tileGlyph = map[domain.TileState]string{
	domain.TileIn:           "✓",
	domain.TileOut:          "✗",
	domain.TileMissing:      "?",
	domain.TileNeedsCheckIn: "!",
	domain.TileFuture:       "·",
}

// render prints the board as a grid of six rows of five days.
func (rt *runner) render(b dashboard.Board) {
	now := rt.now()
	days := rt.dashboard.Grid(b, now)
	sum := rt.dashboard.Summarize(b, now)

	fmt.Fprintf(rt.out, "No Nut November %d (%s)\n", b.Year, b.Timezone)
	fmt.Fprintf(rt.out, "State: %s  Day: %d  Successful: %d  Progress: %.1f%%  Remaining: %d\n",
		strings.ToUpper(sum.State.String()), sum.CurrentDay, sum.SuccessfulDays, sum.Progress, sum.DaysRemaining)

	var row strings.Builder
	for i, d := range days {
		fmt.Fprintf(&row, "%2d%s ", d.Day, tileGlyph[d.State])
		if (i+1)%5 == 0 {
			fmt.Fprintln(rt.out, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}

	switch {
	case b.State == domain.StateOut:
		fmt.Fprintln(rt.out, "You're out this year. Backfill earlier days if you missed any.")
	case !b.HasCheckedInToday && sum.CurrentDay >= 1 && sum.CurrentDay <= len(days):
		fmt.Fprintln(rt.out, "You haven't checked in today: nnnctl checkin in|out")
	}
}
