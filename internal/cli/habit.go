package cli

import (
	"encoding/json"
	"fmt"

	"github.com/stridehq/stride/internal/models"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit an existing habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Frequency string `help:"Recurrence: daily, alternate, weekly, or custom." default:"daily"`
	Category  string `help:"Free-form category label." default:"general"`
	Schedule  string `help:"Custom schedule payload (JSON), for --frequency=custom."`
	Reminder  string `help:"Reminder time in HH:MM format."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit := models.Habit{
		Name:         c.Name,
		Category:     c.Category,
		Frequency:    models.Frequency(c.Frequency),
		ReminderTime: c.Reminder,
	}
	if c.Schedule != "" {
		habit.CustomSchedule = json.RawMessage(c.Schedule)
	}

	created, err := ctx.Tracker.CreateHabit(habit)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s (%s)\n", created.Name, created.Frequency)
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Tracker.ListHabits(c.All)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if !habit.IsActive {
			status = faintStyle.Render(" [DELETED]")
		}
		fmt.Printf("%s  %s%s\n", habit.Name, faintStyle.Render(string(habit.Frequency)), status)
	}
	return nil
}

type HabitEditCmd struct {
	Name      string `arg:"" help:"Habit name to edit."`
	Rename    string `help:"New name."`
	Frequency string `help:"New recurrence: daily, alternate, weekly, or custom."`
	Category  string `help:"New category label."`
	Schedule  string `help:"New custom schedule payload (JSON)."`
	Reminder  string `help:"New reminder time in HH:MM format."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name, false)
	if err != nil {
		return err
	}

	var patch models.HabitPatch
	if c.Rename != "" {
		patch.Name = &c.Rename
	}
	if c.Frequency != "" {
		f := models.Frequency(c.Frequency)
		patch.Frequency = &f
	}
	if c.Category != "" {
		patch.Category = &c.Category
	}
	if c.Schedule != "" {
		raw := json.RawMessage(c.Schedule)
		patch.CustomSchedule = &raw
	}
	if c.Reminder != "" {
		patch.ReminderTime = &c.Reminder
	}

	updated, err := ctx.Tracker.UpdateHabit(habit.ID, patch)
	if err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name, false)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", c.Name)
	fmt.Println("(This is a soft delete. Use 'stride habit restore' to undo)")
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Habit name to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	habit, err := findHabitByName(ctx, c.Name, true)
	if err != nil {
		return err
	}
	if habit.IsActive {
		return fmt.Errorf("habit %q is not deleted", c.Name)
	}
	if err := ctx.Tracker.RestoreHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Restored habit: %s\n", c.Name)
	return nil
}

func findHabitByName(ctx *Context, name string, includeInactive bool) (models.Habit, error) {
	habits, err := ctx.Tracker.ListHabits(includeInactive)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.Name == name {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", name)
}
