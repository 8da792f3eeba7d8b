// ABOUTME: Sessions command group for listing, inspecting, and completing sessions
// ABOUTME: Read-side of the training session store

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brezcode/coach/internal/models"
)

var (
	sessionsUser   string
	sessionsAvatar string
	sessionsLimit  int
)

// NewSessionsCmd creates the sessions command group
func NewSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage training sessions",
		Long:  `List, inspect, and complete training sessions.`,
	}

	cmd.AddCommand(newSessionsListCmd())
	cmd.AddCommand(newSessionsShowCmd())
	cmd.AddCommand(newSessionsCompleteCmd())
	cmd.AddCommand(newSessionsDeleteCmd())

	return cmd
}

func newSessionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's sessions",
		Example: `  coach sessions list --user user_1
  coach sessions list --user user_1 --avatar dr_sakura --limit 5`,
		RunE: runSessionsList,
	}

	cmd.Flags().StringVar(&sessionsUser, "user", "", "User whose sessions to list")
	cmd.Flags().StringVar(&sessionsAvatar, "avatar", "", "Only sessions with this avatar")
	cmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Maximum sessions to show")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	sessions, err := svc.ListSessions(sessionsUser, sessionsAvatar, sessionsLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return json.NewEncoder(out).Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions found.")
		return nil
	}

	for _, sess := range sessions {
		fmt.Fprintf(out, "%s  %-12s %-10s %2d msgs  avg %3.0f  %s\n",
			sess.SessionID, sess.AvatarID, string(sess.Status),
			sess.Metrics.MessageCount, sess.Metrics.AvgQualityScore,
			formatTime(sess.StartedAt))
	}
	return nil
}

func newSessionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session's transcript",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionsShow,
	}
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	sess, err := svc.GetSession(args[0])
	if err != nil {
		return err
	}
	transcript, err := svc.Transcript(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return json.NewEncoder(out).Encode(map[string]interface{}{
			"session":  sess,
			"messages": transcript,
		})
	}

	fmt.Fprintf(out, "Session %s (%s, %s)\n", sess.SessionID, sess.AvatarID, string(sess.Status))
	fmt.Fprintf(out, "Scenario: %s\n", sess.Scenario.Name)
	if sess.Summary != "" {
		fmt.Fprintf(out, "Summary: %s\n", sess.Summary)
	}
	fmt.Fprintln(out)

	for _, msg := range transcript {
		label := roleLabel(msg.Role)
		fmt.Fprintf(out, "%2d %-9s %s\n", msg.SequenceNumber, label, truncate(msg.Content, 100))
		if msg.ImprovedResponse != "" {
			fmt.Fprintf(out, "   improved  %s (rated %d: %s)\n",
				truncate(msg.ImprovedResponse, 90), msg.FeedbackRating, truncate(msg.FeedbackComment, 40))
		}
	}
	return nil
}

func newSessionsCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <session-id>",
		Short: "Complete a session",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionsComplete,
	}
}

func runSessionsComplete(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	sess, err := svc.CompleteSession(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", sess.Summary)
	}
	return nil
}

func newSessionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session and its transcript",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionsDelete,
	}
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.DeleteSession(args[0]); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
	}
	return nil
}

func roleLabel(role models.MessageRole) string {
	switch role {
	case models.RoleCustomer:
		return "customer"
	case models.RoleAvatar:
		return "avatar"
	default:
		return "system"
	}
}
