package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nonutti-ng/web/internal/confirm"
	"github.com/nonutti-ng/web/internal/domain"
	"github.com/nonutti-ng/web/internal/service/dashboard"
	"github.com/nonutti-ng/web/internal/timezone"
)

func newStatusCmd(rt *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show this year's grid and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			b, err := rt.board(ctx)
			if err != nil {
				return err
			}
			rt.render(b)
			return nil
		},
	}
}

func newCheckInCmd(rt *runner) *cobra.Command {
	var reason, other string

	cmd := &cobra.Command{
		Use:       "checkin in|out",
		Short:     "Record today's status",
		Long:      "Record today's status. Marking yourself out waits out a short countdown first.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.StatusIn), string(domain.StatusOut)},
		RunE: func(cmd *cobra.Command, args []string) error {
			status := domain.Status(args[0])
			if !status.IsValid() {
				return domain.NewValidationError("status", "must be in or out")
			}

			var survey *dashboard.OutSurvey
			if status == domain.StatusOut && reason != "" {
				survey = &dashboard.OutSurvey{Reason: domain.OutReason(reason), Other: other}
				if err := survey.Validate(); err != nil {
					return err
				}
			}

			ctx, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			b, err := rt.board(ctx)
			if err != nil {
				return err
			}

			if status == domain.StatusOut {
				if err := rt.countdown(ctx, confirm.ActionOutToday, 0, "Marking today as out"); err != nil {
					return err
				}
			}

			next, err := rt.dashboard.LogToday(ctx, b, status, survey)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Today marked %s.\n", status)
			rt.render(next)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "why you are out (edging-ruined, porn, sex, stress-relief, accident, other)")
	cmd.Flags().StringVar(&other, "other", "", "free text when --reason=other")
	return cmd
}

func newBackfillCmd(rt *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill DAY in|out",
		Short: "Record a missed past day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}
			status := domain.Status(args[1])

			ctx, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			b, err := rt.board(ctx)
			if err != nil {
				return err
			}

			next, err := rt.dashboard.LogPreviousDay(ctx, b, day, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Day %d marked %s.\n", day, status)
			rt.render(next)
			return nil
		},
	}
}

func newFailCmd(rt *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "fail DAY",
		Short: "Mark an already recorded day as out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(args[0])
			if err != nil {
				return err
			}

			ctx, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			b, err := rt.board(ctx)
			if err != nil {
				return err
			}
			if _, ok := b.CheckInForDay(day); !ok {
				return domain.NewAPIError("No entry found for this day", domain.CodeNoEntry)
			}

			if err := rt.countdown(ctx, confirm.ActionFailDay, day, fmt.Sprintf("Marking day %d as out", day)); err != nil {
				return err
			}

			next, err := rt.dashboard.FailExistingEntry(ctx, b, day)
			if err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "Day %d marked out.\n", day)
			rt.render(next)
			return nil
		},
	}
}

// countdown issues a confirmation token and waits until it becomes usable,
// printing the seconds left. Interrupting the command cancels the action.
func (rt *runner) countdown(ctx context.Context, action confirm.Action, day int, label string) error {
	tok, err := rt.confirm.Issue(action, Scope, day)
	if err != nil {
		return err
	}

	for {
		left := tok.ReadyAt.Sub(rt.now())
		if left <= 0 {
			break
		}
		secs := int((left + time.Second - 1) / time.Second)
		fmt.Fprintf(rt.out, "%s in %d... (Ctrl+C to cancel)\n", label, secs)
		if err := rt.sleep(ctx, min(left, time.Second)); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}
	}

	return rt.confirm.Verify(tok.Value, action, Scope, day)
}

func parseDay(raw string) (int, error) {
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 || day > timezone.ChallengeDays {
		return 0, domain.NewValidationError("day", fmt.Sprintf("must be a number from 1 to %d", timezone.ChallengeDays))
	}
	return day, nil
}
