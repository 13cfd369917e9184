package cli

import (
	"fmt"
	"time"

	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/dateutil"
)

type StatsCmd struct {
	Days  int    `help:"Number of trailing days for the daily breakdown." default:"7"`
	Start string `help:"Range start (YYYY-MM-DD); overrides --days."`
	End   string `help:"Range end (YYYY-MM-DD); defaults to today."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	now := time.Now()
	today := dateutil.Truncate(now)

	end := c.End
	if end == "" {
		end = dateutil.ISODate(today)
	}
	start := c.Start
	if start == "" {
		start = dateutil.ISODate(today.AddDate(0, 0, -(c.Days - 1)))
	}

	daily, err := ctx.Tracker.DailyStats(start, end)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Daily stats %s .. %s", start, end)))
	fmt.Println()
	fmt.Printf("%-12s %9s %10s %6s\n", "Date", "Scheduled", "Completed", "Rate")
	for _, d := range daily {
		fmt.Printf("%-12s %9d %10d %5.0f%%\n", d.Date, d.TotalHabits, d.CompletedHabits, d.CompletionRate)
	}

	habits, err := ctx.Tracker.HabitsWithStats(now)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Habits (%d-day completion rate)", constants.RateWindowDays)))
	fmt.Println()
	for _, h := range habits {
		fmt.Printf("%-20s %5.0f%%   %s\n", h.Name, h.CompletionRate,
			streakStyle.Render(fmt.Sprintf("streak %d (best %d)", h.Streak.CurrentStreak, h.Streak.LongestStreak)))
	}
	return nil
}
