// ABOUTME: Chat command runs a training conversation with an avatar
// ABOUTME: Supports one-shot messages and an interactive loop

package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brezcode/coach/internal/coach"
	"github.com/brezcode/coach/internal/models"
)

var (
	chatUser     string
	chatAvatar   string
	chatSession  string
	chatScenario string
	chatMood     string
	chatComplete bool
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk with a coaching avatar",
		Long: `Talk with a coaching avatar in a training session.

With a message argument, posts one message and prints the reply.
Without arguments, starts an interactive loop (type "exit" to leave).
A new session is started unless --session continues an existing one.

Examples:
  coach chat --user user_1 --avatar dr_sakura "I found a lump"
  coach chat --user user_1 --avatar dr_sakura --scenario lump_concern
  coach chat --session sess_20260901_120000_ab12cd34 "tell me more"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatUser, "user", "", "User ID the session belongs to")
	cmd.Flags().StringVar(&chatAvatar, "avatar", "dr_sakura", "Avatar persona to talk with")
	cmd.Flags().StringVar(&chatSession, "session", "", "Continue an existing session")
	cmd.Flags().StringVar(&chatScenario, "scenario", "", "Scenario name for a new session")
	cmd.Flags().StringVar(&chatMood, "mood", "", "Customer mood for a new session")
	cmd.Flags().BoolVar(&chatComplete, "complete", false, "Complete the session when done")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	sessionID := chatSession
	if sessionID == "" {
		if chatUser == "" {
			return fmt.Errorf("--user is required when starting a new session")
		}
		sess, err := svc.StartSession(ctx, chatUser, chatAvatar, models.Scenario{
			Name:         chatScenario,
			CustomerMood: chatMood,
		})
		if err != nil {
			return err
		}
		sessionID = sess.SessionID
		if !quiet {
			fmt.Fprintf(out, "Session %s started with %s\n", sessionID, sess.AvatarID)
		}
	}

	// One-shot mode
	if len(args) > 0 {
		if err := postMessage(cmd, svc, sessionID, args[0]); err != nil {
			return err
		}
		return finishChat(cmd, svc, sessionID)
	}

	// Interactive mode
	if !quiet {
		fmt.Fprintln(out, `Type your messages; "exit" leaves the conversation.`)
	}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if err := postMessage(cmd, svc, sessionID, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return finishChat(cmd, svc, sessionID)
}

func postMessage(cmd *cobra.Command, svc *coach.Service, sessionID, message string) error {
	turn, err := svc.SendMessage(cmd.Context(), sessionID, message)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", turn.Avatar.Content)
	if verbose {
		fmt.Fprintf(out, "[%s  quality=%d empathy=%d accuracy=%d]\n",
			turn.Avatar.MessageID, turn.Avatar.QualityScore,
			turn.Avatar.EmpathyScore, turn.Avatar.AccuracyScore)
	}
	return nil
}

func finishChat(cmd *cobra.Command, svc *coach.Service, sessionID string) error {
	out := cmd.OutOrStdout()
	if chatComplete {
		sess, err := svc.CompleteSession(cmd.Context(), sessionID)
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(out, "\n%s\n", sess.Summary)
		}
		return nil
	}
	if !quiet {
		fmt.Fprintf(out, "\nSession %s is still active. Continue with:\n  coach chat --session %s\n", sessionID, sessionID)
	}
	return nil
}
