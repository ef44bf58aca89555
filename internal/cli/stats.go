package cli

import (
	"context"
	"fmt"
)

type StatsCmd struct {
	User string `help:"User id." required:""`
	Date string `help:"Day to evaluate (YYYY-MM-DD or 'today')." default:"today"`
	JSON bool   `help:"Print the dashboard as JSON."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	day, err := parseDay(c.Date)
	if err != nil {
		return err
	}

	dash, err := ctx.Stats.Dashboard(context.Background(), c.User, day)
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(ctx.Out, dash)
	}

	s := dash.Summary
	fmt.Fprintf(ctx.Out, "Summary for %s:\n\n", s.Date)
	fmt.Fprintf(ctx.Out, "  habits:      %d\n", s.TotalHabits)
	fmt.Fprintf(ctx.Out, "  due today:   %d\n", s.DueToday)
	fmt.Fprintf(ctx.Out, "  completed:   %d (%d%%)\n", s.CompletedToday, s.CompletionPercentage)
	fmt.Fprintf(ctx.Out, "  max streak:  %d\n", s.MaxStreak)
	fmt.Fprintf(ctx.Out, "  avg streak:  %d\n", s.AverageStreak)

	if len(dash.Habits) == 0 {
		fmt.Fprintln(ctx.Out, "\n  No habits")
		return nil
	}

	fmt.Fprintln(ctx.Out, "\nHabits:")
	for _, h := range dash.Habits {
		fmt.Fprintf(ctx.Out, "  %s  streak %d (best %d)  rate %d%%  due %s  done %s\n",
			h.HabitID, h.CurrentStreak, h.LongestStreak, h.CompletionRate, yesNo(h.IsDueToday), yesNo(h.IsCompletedToday))
	}

	fmt.Fprintln(ctx.Out, "\nTrend:")
	for _, r := range dash.Trend {
		fmt.Fprintf(ctx.Out, "  %s  %d/%d  %d%%\n", r.Date, r.Completed, r.TotalDue, r.Rate)
	}

	return nil
}

type PreviewCmd struct {
	User string `help:"User id." required:""`
	Date string `help:"Day to evaluate (YYYY-MM-DD or 'today')." default:"today"`
	JSON bool   `help:"Print the preview as JSON."`
}

func (c *PreviewCmd) Run(ctx *Context) error {
	day, err := parseDay(c.Date)
	if err != nil {
		return err
	}

	preview, err := ctx.Stats.Preview(context.Background(), c.User, day)
	if err != nil {
		return err
	}

	if c.JSON {
		return writeJSON(ctx.Out, preview)
	}

	if !preview.ShouldSend {
		fmt.Fprintf(ctx.Out, "Nothing to send for %s\n", preview.Date)
		return nil
	}

	fmt.Fprintf(ctx.Out, "Reminder for %s: %d/%d done\n\n",
		preview.Date, preview.Summary.CompletedToday, preview.Summary.DueToday)
	for _, item := range preview.Habits {
		mark := " "
		switch {
		case item.IsCompleted:
			mark = "x"
		case item.NeedsAction:
			mark = "!"
		}
		fmt.Fprintf(ctx.Out, "  [%s] %s (streak %d)\n", mark, item.Name, item.CurrentStreak)
	}

	return nil
}
