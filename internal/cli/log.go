package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/models"
)

type LogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *LogCmd) Run(ctx *Context) error {
	habits, err := ctx.Tracker.ListHabits(false)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	var selected []models.Habit
	if c.Habit != "" {
		for _, h := range habits {
			if h.Name == c.Habit {
				selected = []models.Habit{h}
				break
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
	} else {
		selected = habits
	}

	endDay := time.Now()
	startDay := endDay.AddDate(0, 0, -(c.Days - 1))

	fmt.Printf("Habit log (last %d days):\n\n", c.Days)

	const maxNameLen = 20
	fmt.Print(strings.Repeat(" ", maxNameLen))
	for i := 0; i < c.Days; i++ {
		day := startDay.AddDate(0, 0, i)
		fmt.Printf(" %5s", day.Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", maxNameLen+6*c.Days))

	for _, habit := range selected {
		name := habit.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		} else {
			name = name + strings.Repeat(" ", maxNameLen-len(name))
		}
		fmt.Print(name)

		completions, err := ctx.Tracker.Completions(
			habit.ID,
			startDay.Format(constants.DateFormat),
			endDay.Format(constants.DateFormat),
		)
		if err != nil {
			return err
		}
		byDay := make(map[string]bool, len(completions))
		for _, comp := range completions {
			byDay[comp.Date] = true
		}

		for i := 0; i < c.Days; i++ {
			day := startDay.AddDate(0, 0, i)
			if byDay[day.Format(constants.DateFormat)] {
				fmt.Print(doneStyle.Render("  x   "))
			} else {
				fmt.Print(missedStyle.Render("  .   "))
			}
		}
		fmt.Println()
	}

	return nil
}
