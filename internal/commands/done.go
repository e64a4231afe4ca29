package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omarbek/taskflow/internal/account"
	"github.com/omarbek/taskflow/internal/session"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task between pending and completed",
	Args:  cobra.ExactArgs(1),
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, _ *account.Service, s *session.Session) {
		task, err := resolveTask(s, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := s.Store.ToggleStatus(ctx, task.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if task.Completed() {
			fmt.Printf("↩️  Marked task %s back to pending: %s\n", shortID(task.ID), task.Title)
		} else {
			fmt.Printf("✅ Marked task %s as completed: %s\n", shortID(task.ID), task.Title)
		}
	}),
}

var removeCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"remove"},
	Short:   "Delete a task",
	Long:    "Delete a task permanently. Asks for confirmation unless --yes is given.",
	Args:    cobra.ExactArgs(1),
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, _ *account.Service, s *session.Session) {
		task, err := resolveTask(s, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(fmt.Sprintf("Delete task %s: %s?", shortID(task.ID), task.Title)) {
			fmt.Println("Cancelled")
			return
		}

		if err := s.Store.Remove(ctx, task.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🗑️  Deleted task %s: %s\n", shortID(task.ID), task.Title)
	}),
}

// confirm asks a y/N question on stdin
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	removeCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
