// ABOUTME: Feedback command runs the revision loop on an avatar response
// ABOUTME: Attaches an improved response without touching the original

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	feedbackRating  int
	feedbackComment string
)

// NewFeedbackCmd creates the feedback command
func NewFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback <message-id>",
		Short: "Rate an avatar response and request an improved one",
		Long: `Rate an avatar response 1-5 with a comment. The avatar generates an
improved response, stored alongside the original. The original response
is never changed, and a message can be revised any number of times.`,
		Example: `  coach feedback msg_1b2c3d4e --rating 2 --comment "too clinical, show empathy first"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runFeedback,
	}

	cmd.Flags().IntVar(&feedbackRating, "rating", 0, "Rating from 1 (poor) to 5 (excellent)")
	cmd.Flags().StringVar(&feedbackComment, "comment", "", "What should change in the response")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("comment")

	return cmd
}

func runFeedback(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	msg, err := svc.ReviseMessage(cmd.Context(), args[0], feedbackRating, feedbackComment)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintf(out, "Original:\n%s\n\n", msg.Content)
	}
	fmt.Fprintf(out, "Improved:\n%s\n", msg.ImprovedResponse)
	if verbose {
		fmt.Fprintf(out, "\n[quality %d -> %d]\n", msg.QualityScore, msg.ImprovedQualityScore)
	}
	return nil
}
