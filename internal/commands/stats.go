package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omarbek/taskflow/internal/account"
	"github.com/omarbek/taskflow/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, _ *account.Service, s *session.Session) {
		stats := s.Views.Stats()

		fmt.Println("📊 Task statistics")
		fmt.Println(strings.Repeat("-", 30))
		fmt.Printf("Total tasks:      %d\n", stats.TotalTasks)
		fmt.Printf("Completed:        %d\n", stats.CompletedTasks)
		fmt.Printf("Pending:          %d\n", stats.PendingTasks)
		fmt.Printf("Today:            %d\n", stats.TasksToday)
		fmt.Printf("Completed today:  %d\n", stats.CompletedToday)
		fmt.Printf("Hours today:      %.1f\n", stats.HoursToday)
	}),
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List distinct project names",
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, _ *account.Service, s *session.Session) {
		projects := s.Views.Projects()
		if len(projects) == 0 {
			fmt.Println("No projects yet")
			return
		}
		for _, p := range projects {
			fmt.Println(p)
		}
	}),
}
