// ABOUTME: Assess command records a health assessment for a user
// ABOUTME: The latest assessment feeds the avatar's prompt context

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brezcode/coach/internal/config"
	"github.com/brezcode/coach/internal/models"
	"github.com/brezcode/coach/internal/storage/sqlite"
)

var (
	assessEmail   string
	assessName    string
	assessAge     int
	assessScore   float64
	assessAnswers []string
)

// NewAssessCmd creates the assess command
func NewAssessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Record a health assessment",
		Long: `Record a health assessment for a user. The risk score is bucketed
into a category (low, moderate, elevated, high), and the latest
assessment is woven into the avatar's prompts for that user.`,
		Example: `  coach assess --email jane@example.com --age 42 --score 35 \
    --answer family_history=yes --answer last_screening=2024`,
		RunE: runAssess,
	}

	cmd.Flags().StringVar(&assessEmail, "email", "", "User email (account is created if missing)")
	cmd.Flags().StringVar(&assessName, "name", "", "User display name")
	cmd.Flags().IntVar(&assessAge, "age", 0, "User age")
	cmd.Flags().Float64Var(&assessScore, "score", 0, "Risk score, 0-100")
	cmd.Flags().StringArrayVar(&assessAnswers, "answer", nil, "Quiz answer as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("age")

	return cmd
}

func runAssess(cmd *cobra.Command, args []string) error {
	// Assessments never touch the LLM, so open storage directly.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	var store *sqlite.Storage
	if cfg.DBPath != "" {
		store, err = sqlite.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = sqlite.NewStorage()
	}
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := store.Profiles().EnsureUser(assessEmail, assessName)
	if err != nil {
		return err
	}

	answers := make(map[string]string, len(assessAnswers))
	for _, raw := range assessAnswers {
		key, value, found := strings.Cut(raw, "=")
		if !found {
			return fmt.Errorf("invalid --answer %q, want key=value", raw)
		}
		answers[key] = value
	}

	assessment, err := models.NewHealthAssessment(user.UserID, assessAge, assessScore, "", answers)
	if err != nil {
		return err
	}
	if err := store.Profiles().SaveAssessment(assessment); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded assessment for %s: %s risk (score %.1f)\n",
			user.Email, assessment.RiskCategory, assessment.RiskScore)
	}
	return nil
}
