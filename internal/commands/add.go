package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omarbek/taskflow/internal/account"
	"github.com/omarbek/taskflow/internal/attach"
	"github.com/omarbek/taskflow/internal/models"
	"github.com/omarbek/taskflow/internal/parser"
	"github.com/omarbek/taskflow/internal/session"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task with optional metadata.

Smart parsing syntax:
  #tag1,tag2  - Tags (comma-separated or individual)
  @project    - Project name
  +priority   - Priority (low/medium/high/urgent)

Examples:
  taskflow add "Fix login bug #auth @website +high"
  taskflow add "Sprint review" --category meeting --start 10:00 --end 11:30
  taskflow add "Write report" --file ./report.pdf`,
	Args: cobra.MinimumNArgs(1),
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, _ *account.Service, s *session.Session) {
		parsed := parser.ParseTitle(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			fmt.Printf("Error: %s\n", strings.Join(parsed.Errors, ", "))
			return
		}

		category, _ := cmd.Flags().GetString("category")
		description, _ := cmd.Flags().GetString("description")
		date, _ := cmd.Flags().GetString("date")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		filePath, _ := cmd.Flags().GetString("file")

		task := models.Task{
			Title:       parsed.Title,
			Description: description,
			Category:    models.Category(category),
			Priority:    parsed.Priority,
			Project:     parsed.Project,
			Tags:        parsed.Tags,
			Date:        date,
			StartTime:   start,
			EndTime:     end,
		}

		var file *attach.File
		if filePath != "" {
			data, err := os.ReadFile(filePath)
			if err != nil {
				fmt.Printf("Error: cannot read %s: %v\n", filePath, err)
				return
			}
			file = &attach.File{Name: filepath.Base(filePath), Data: data}
		}

		id, err := s.Store.Add(ctx, task, file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ Added task %s: %s\n", shortID(id), task.Title)
		if file != nil {
			fmt.Printf("📎 Attached: %s\n", file.Name)
		}
	}),
}

func init() {
	addCmd.Flags().StringP("category", "c", string(models.CategoryOther), "Task category")
	addCmd.Flags().StringP("description", "d", "", "Longer description")
	addCmd.Flags().String("date", "", "Calendar date (YYYY-MM-DD, default today)")
	addCmd.Flags().String("start", "", "Start time (HH:MM)")
	addCmd.Flags().String("end", "", "End time (HH:MM)")
	addCmd.Flags().StringP("file", "f", "", "File to attach")
}
