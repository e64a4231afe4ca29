package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/omarbek/taskflow/internal/account"
	"github.com/omarbek/taskflow/internal/attach"
	"github.com/omarbek/taskflow/internal/backend"
	"github.com/omarbek/taskflow/internal/config"
	"github.com/omarbek/taskflow/internal/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "A work-logging and time-tracking tool",
	Long: `taskflow records the tasks you worked on, keeps a live view of them
with filters and statistics, and tracks time sessions against them.`,
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the application logger from config
func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Env == config.EnvLocal {
		level = zerolog.WarnLevel // keep CLI output clean locally
	}
	if cfg.LogLevel != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
			level = parsed
		}
	}

	w := zerolog.NewConsoleWriter()
	w.Out = os.Stderr
	w.TimeFormat = time.DateTime
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// withSession wires config, backend, account and session around a
// command, tearing everything down afterwards.
func withSession(fn func(ctx context.Context, cmd *cobra.Command, args []string, svc *account.Service, s *session.Session)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		log := newLogger(cfg)

		be, err := backend.Open(cfg.DatabasePath(), log)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer be.Close()

		svc := account.NewService(be)
		user, err := svc.EnsureUser(ctx, cfg.UserID, cfg.UserEmail)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		sess, err := session.Open(ctx, user, session.Backends{
			Tasks:   be,
			Logs:    be.Logs(),
			Storage: attach.NewDiskStorage(cfg.DataDir),
		}, log)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer sess.Close()

		fn(ctx, cmd, args, svc, sess)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskflow %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}
