// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all coach subcommands

package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	format  string
)

const banner = `
 ██████╗ ██████╗  █████╗  ██████╗██╗  ██╗
██╔════╝██╔═══██╗██╔══██╗██╔════╝██║  ██║
██║     ██║   ██║███████║██║     ███████║
██║     ██║   ██║██╔══██║██║     ██╔══██║
╚██████╗╚██████╔╝██║  ██║╚██████╗██║  ██║
 ╚═════╝ ╚═════╝ ╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Health coaching avatar training platform",
		Long: banner + `
Coach runs training conversations between users and AI coaching avatars.
Sessions are persisted with transcripts, heuristic quality scores, and a
feedback loop that generates improved responses.

Avatars answer using the user's health profile, past session memory, and
uploaded knowledge documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	cmd.PersistentFlags().StringVar(&format, "format", "auto", "Output format (auto, json, text)")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewSessionsCmd())
	cmd.AddCommand(NewFeedbackCmd())
	cmd.AddCommand(NewKnowledgeCmd())
	cmd.AddCommand(NewAssessCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
