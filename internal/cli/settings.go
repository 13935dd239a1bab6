package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nonutti-ng/web/internal/service/changelog"
	"github.com/nonutti-ng/web/internal/service/preferences"
	"github.com/nonutti-ng/web/internal/timezone"
)

func newTimezoneCmd(rt *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timezone",
		Short: "Show the timezone your days are counted in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tz, err := rt.prefs.Timezone(cmd.Context(), Scope)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "%s (%s)\n", tz, preferences.Label(tz))
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set ZONE",
			Short: "Use an IANA zone or a UTC offset such as +05:30",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tz, err := rt.prefs.SetTimezone(cmd.Context(), Scope, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(rt.out, "Timezone set to %s (%s).\n", tz, preferences.Label(tz))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Go back to the default timezone",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := rt.prefs.ClearTimezone(cmd.Context(), Scope); err != nil {
					return err
				}
				fmt.Fprintf(rt.out, "Timezone reset to %s.\n", preferences.DefaultTimezone)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List common timezones",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				for _, z := range preferences.CommonTimezones() {
					fmt.Fprintf(rt.out, "%-22s %s\n", z.Value, z.Label)
				}
				return nil
			},
		},
	)
	return cmd
}

func newCountdownCmd(rt *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "countdown",
		Short: "Time left until the challenge starts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tz, err := rt.prefs.Timezone(cmd.Context(), Scope)
			if err != nil {
				return err
			}
			now := rt.now()
			if timezone.InChallengeMonth(now, tz) {
				fmt.Fprintln(rt.out, "No Nut November is on. Check in with: nnnctl checkin in|out")
				return nil
			}
			c, err := timezone.UntilChallenge(now, tz)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "%dd %02dh %02dm %02ds until No Nut November (%s)\n",
				c.Days, c.Hours, c.Minutes, c.Seconds, tz)
			return nil
		},
	}
}

func newChangelogCmd(rt *runner) *cobra.Command {
	var markSeen bool

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Show what changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tz, err := rt.prefs.Timezone(ctx, Scope)
			if err != nil {
				return err
			}

			for _, e := range rt.changelog.All() {
				seen, err := rt.changelog.HasSeen(ctx, Scope, e.ID)
				if err != nil {
					return err
				}
				marker := ""
				if !seen {
					marker = " [new]"
				}
				fmt.Fprintf(rt.out, "v%s  %s  %s%s\n", e.Version, changelog.FormatDate(e.Date, tz), e.Title, marker)
				for _, c := range e.Changes {
					fmt.Fprintf(rt.out, "  - [%s] %s\n", c.Type, c.Description)
				}

				if markSeen && !seen {
					if err := rt.changelog.MarkSeen(ctx, Scope, e.ID); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&markSeen, "mark-seen", false, "acknowledge every entry shown")
	return cmd
}
