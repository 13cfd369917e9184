package cli

import (
	"fmt"
	"time"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	now := time.Now()
	habits, err := ctx.Tracker.HabitsWithStats(now)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Habits for %s", now.Format("Mon Jan 2"))))
	fmt.Println()

	scheduled, done := 0, 0
	for _, h := range habits {
		if !h.ScheduledToday {
			if h.CompletedToday {
				// Completed on an off day; show it but don't count it as due.
				fmt.Printf("%s %s %s\n", doneStyle.Render("[x]"), h.Name, faintStyle.Render("(not scheduled)"))
			}
			continue
		}
		scheduled++
		status := missedStyle.Render("[ ]")
		if h.CompletedToday {
			status = doneStyle.Render("[x]")
			done++
		}
		extra := ""
		if h.Streak.CurrentStreak > 0 {
			extra = "  " + streakStyle.Render(fmt.Sprintf("%d day streak", h.Streak.CurrentStreak))
		}
		fmt.Printf("%s %s%s\n", status, h.Name, extra)
	}

	fmt.Printf("\nCompleted: %d/%d\n", done, scheduled)
	return nil
}
