package cli

import (
	"fmt"
	"time"

	"github.com/stridehq/stride/internal/constants"
)

type MarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Note string `help:"Optional note for this completion." default:""`
}

func (c *MarkCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name, false)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = time.Now().Format(constants.DateFormat)
	}

	if _, err := ctx.Tracker.AddCompletion(habit.ID, day, c.Note); err != nil {
		return err
	}

	st, err := ctx.Tracker.GetStreak(habit.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Marked habit %q for %s  %s\n", c.Name, day,
		streakStyle.Render(fmt.Sprintf("streak: %d", st.CurrentStreak)))
	return nil
}

type UnmarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *UnmarkCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name, false)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = time.Now().Format(constants.DateFormat)
	}

	if err := ctx.Tracker.RemoveCompletion(habit.ID, day); err != nil {
		return err
	}
	fmt.Printf("Unmarked habit %q for %s\n", c.Name, day)
	return nil
}
