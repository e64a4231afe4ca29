package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/omarbek/taskflow/internal/account"
	"github.com/omarbek/taskflow/internal/remote"
	"github.com/omarbek/taskflow/internal/session"
	"github.com/omarbek/taskflow/internal/timer"
)

var trackCmd = &cobra.Command{
	Use:   "track [task-id]",
	Short: "Track a time session against a task",
	Long: `Track a time session against a task. The timer starts immediately.

Controls:
  p - pause        r - resume
  s - save (while paused)
  x - reset        q - quit without saving`,
	Args: cobra.ExactArgs(1),
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, _ *account.Service, s *session.Session) {
		task, err := resolveTask(s, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := s.Timer.Select(task.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		s.Timer.SetOnTick(func(elapsed time.Duration) {
			fmt.Printf("\r⏱️  %s  [%s] ", formatElapsed(elapsed), s.Timer.State())
		})

		if err := s.Timer.Start(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏱️  Tracking %s: %s\n", shortID(task.ID), task.Title)

		reader := bufio.NewReader(os.Stdin)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				s.Timer.Reset()
				return
			}

			switch strings.ToLower(strings.TrimSpace(line)) {
			case "p":
				s.Timer.Pause()
				fmt.Printf("\n⏸️  Paused at %s\n", formatElapsed(s.Timer.Elapsed()))
			case "r":
				if err := s.Timer.Start(); err != nil {
					fmt.Printf("Error: %v\n", err)
				}
			case "s":
				log, err := s.Timer.Save(ctx)
				switch {
				case errors.Is(err, timer.ErrRunning):
					fmt.Println("Pause the timer before saving (press 'p' first)")
				case errors.Is(err, remote.ErrSessionTooShort):
					fmt.Println("Session too short to save, keep it running a bit longer")
				case err != nil:
					fmt.Printf("Error: %v\n", err)
				default:
					fmt.Printf("💾 Saved %s against %s\n", formatElapsed(log.Duration()), log.TaskTitle)
					return
				}
			case "x":
				s.Timer.Reset()
				fmt.Println("↺ Timer reset")
			case "q":
				s.Timer.Reset()
				fmt.Println("Exited without saving")
				return
			}
		}
	}),
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent time logs",
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, _ *account.Service, s *session.Session) {
		logs, err := s.RecentLogs(ctx)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(logs) == 0 {
			fmt.Println("No time logs yet")
			return
		}

		for _, log := range logs {
			fmt.Printf("%-20s %-40s %s\n",
				log.SavedAt.Format("2006-01-02 15:04"),
				log.TaskTitle,
				formatElapsed(log.Duration()))
		}
	}),
}

// formatElapsed renders a duration as HH:MM:SS
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
