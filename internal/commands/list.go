package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omarbek/taskflow/internal/account"
	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/session"
	"github.com/omarbek/taskflow/internal/views"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks with optional search and category/status/date filters",
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, _ *account.Service, s *session.Session) {
		search, _ := cmd.Flags().GetString("search")
		category, _ := cmd.Flags().GetString("category")
		status, _ := cmd.Flags().GetString("status")
		date, _ := cmd.Flags().GetString("date")

		filter := views.DefaultFilter()
		filter.Search = search
		if category != "" {
			filter.Category = category
		}
		if status != "" {
			filter.Status = status
		}
		filter.Date = date
		s.Views.SetFilter(filter)

		tasks := s.Views.Tasks()
		if s.Store.Degraded() {
			fmt.Println("⚠️  Connection degraded, showing last known tasks")
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'taskflow add \"task title\"' to create your first task.")
			return
		}

		// Print table header
		fmt.Printf("%-10s %-9s %-40s %-15s %-14s %-8s %s\n", "ID", "STATUS", "TITLE", "PROJECT", "CATEGORY", "PRIORITY", "TAGS")
		fmt.Println(strings.Repeat("-", 104))

		for _, task := range tasks {
			title := task.Title
			if len(title) > 38 {
				title = title[:35] + "..."
			}
			project := task.Project
			if len(project) > 13 {
				project = project[:10] + "..."
			}

			fmt.Printf("%-10s %-9s %-40s %-15s %-14s %-8s %s\n",
				shortID(task.ID),
				task.Status,
				title,
				project,
				task.Category,
				task.Priority,
				strings.Join(task.Tags, ","))
		}
	}),
}

// shortID abbreviates a record id for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveTask finds a task by full id or unique prefix
func resolveTask(s *session.Session, arg string) (models.Task, error) {
	var match models.Task
	found := 0
	for _, t := range s.Store.CurrentTasks() {
		if t.ID == arg {
			return t, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			match = t
			found++
		}
	}
	switch found {
	case 0:
		return models.Task{}, fmt.Errorf("no task matches '%s'", arg)
	case 1:
		return match, nil
	default:
		return models.Task{}, fmt.Errorf("'%s' matches %d tasks, use a longer prefix", arg, found)
	}
}

func init() {
	listCmd.Flags().StringP("search", "q", "", "Search term (title, description, tags, project)")
	listCmd.Flags().StringP("category", "c", "", "Filter by category")
	listCmd.Flags().StringP("status", "s", "", "Filter by status: pending, completed")
	listCmd.Flags().String("date", "", "Filter by exact date (YYYY-MM-DD)")
}
