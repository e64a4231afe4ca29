package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/omarbek/taskflow/internal/account"
	"github.com/omarbek/taskflow/internal/session"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "List team members or invite a new one",
	Long: `List team members, or invite someone by email:

  taskflow team
  taskflow team --invite colleague@example.com`,
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, svc *account.Service, s *session.Session) {
		invite, _ := cmd.Flags().GetString("invite")
		if invite != "" {
			member, err := svc.Invite(ctx, invite)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("✉️  Invitation recorded for %s (role %s)\n", member.Email, member.Role)
			return
		}

		members, err := svc.Team(ctx)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("%-24s %-30s %-8s %s\n", "NAME", "EMAIL", "ROLE", "STATUS")
		fmt.Println(strings.Repeat("-", 72))
		for _, m := range members {
			status := "active"
			if m.Placeholder {
				status = "invited"
			}
			fmt.Printf("%-24s %-30s %-8s %s\n", m.DisplayName, m.Email, m.Role, status)
		}
	}),
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your profile and settings as JSON",
	Run: withSession(func(ctx context.Context, cmd *cobra.Command, args []string, svc *account.Service, s *session.Session) {
		if err := svc.Export(ctx, s.User().ID, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

func init() {
	teamCmd.Flags().String("invite", "", "Email address to invite")
}
