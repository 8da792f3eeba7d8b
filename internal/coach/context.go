// ABOUTME: ContextBuilder assembles the full avatar prompt for one turn
// ABOUTME: Merges persona, health profile, scenario, memory, knowledge, and history under a token budget

package coach

import (
	"fmt"
	"strings"

	"github.com/brezcode/coach/internal/models"
	"github.com/brezcode/coach/internal/storage/sqlite"
)

// DefaultMaxPromptTokens bounds the assembled prompt. Token count is
// approximated as 4 characters per token.
const DefaultMaxPromptTokens = 3000

// knowledgeResults is how many chunks a single turn pulls in.
const knowledgeResults = 3

// ContextBuilder merges everything the avatar knows into one prompt.
type ContextBuilder struct {
	storage   *sqlite.Storage
	memory    *MemoryBank
	maxTokens int
}

// NewContextBuilder creates a builder over the given storage and memory bank.
func NewContextBuilder(store *sqlite.Storage, memory *MemoryBank, maxTokens int) *ContextBuilder {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxPromptTokens
	}
	return &ContextBuilder{storage: store, memory: memory, maxTokens: maxTokens}
}

// promptSection is one block of the assembled prompt. Optional sections
// are dropped lowest-priority-first when the prompt exceeds its budget.
type promptSection struct {
	text     string
	optional bool
	priority int // higher survives longer
}

// Build assembles the prompt for one customer message in a session.
// The persona system prompt, conversation history, and the current
// message always survive trimming; knowledge, memory, profile, and
// scenario sections are dropped in that order when over budget.
func (cb *ContextBuilder) Build(persona models.Persona, sess *models.TrainingSession, history []*models.TrainingMessage, userMessage string) (string, error) {
	var sections []promptSection

	sections = append(sections, promptSection{
		text: formatPersona(persona),
	})

	if profile := cb.healthProfile(sess.UserID); profile != "" {
		sections = append(sections, promptSection{text: profile, optional: true, priority: 2})
	}

	if scenario := formatScenario(sess.Scenario); scenario != "" {
		sections = append(sections, promptSection{text: scenario, optional: true, priority: 3})
	}

	exchanges, err := cb.memory.Recall(sess.UserID, sess.AvatarID)
	if err != nil {
		return "", fmt.Errorf("recalling training memory: %w", err)
	}
	if len(exchanges) > 0 {
		sections = append(sections, promptSection{text: formatMemory(exchanges), optional: true, priority: 1})
	}

	chunks, err := cb.storage.Knowledge().Search(sess.AvatarID, userMessage, knowledgeResults)
	if err != nil {
		return "", fmt.Errorf("searching knowledge: %w", err)
	}
	if len(chunks) > 0 {
		sections = append(sections, promptSection{text: formatKnowledge(chunks), optional: true, priority: 0})
	}

	if hist := formatHistory(history); hist != "" {
		sections = append(sections, promptSection{text: hist})
	}

	sections = append(sections, promptSection{
		text: "CURRENT CUSTOMER MESSAGE:\n" + userMessage + "\n",
	})

	return assemble(sections, cb.maxTokens*4), nil
}

// assemble joins sections, dropping optional sections lowest priority
// first until the prompt fits maxChars.
func assemble(sections []promptSection, maxChars int) string {
	join := func() string {
		parts := make([]string, 0, len(sections))
		for _, s := range sections {
			if s.text != "" {
				parts = append(parts, s.text)
			}
		}
		return strings.Join(parts, "\n")
	}

	prompt := join()
	for len(prompt) > maxChars {
		dropIdx := -1
		for i, s := range sections {
			if s.text == "" || !s.optional {
				continue
			}
			if dropIdx == -1 || s.priority < sections[dropIdx].priority {
				dropIdx = i
			}
		}
		if dropIdx == -1 {
			break
		}
		sections[dropIdx].text = ""
		prompt = join()
	}
	return prompt
}

// healthProfile renders the user's latest assessment, or "" when absent.
func (cb *ContextBuilder) healthProfile(userID string) string {
	assessment, err := cb.storage.Profiles().LatestAssessment(userID)
	if err != nil || assessment == nil {
		return ""
	}
	return "USER HEALTH PROFILE:\n" + assessment.Prose() + "\n"
}

func formatPersona(p models.Persona) string {
	var sb strings.Builder
	sb.WriteString("SYSTEM:\n")
	sb.WriteString(p.SystemPrompt)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Tone: %s\n", p.Tone))
	if len(p.Expertise) > 0 {
		sb.WriteString(fmt.Sprintf("Expertise: %s\n", strings.Join(p.Expertise, ", ")))
	}
	return sb.String()
}

func formatScenario(s models.Scenario) string {
	if s.Name == "" && s.Description == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("SCENARIO:\n")
	sb.WriteString(fmt.Sprintf("Name: %s\n", s.Name))
	if s.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", s.Description))
	}
	if s.CustomerMood != "" {
		sb.WriteString(fmt.Sprintf("Customer mood: %s\n", s.CustomerMood))
	}
	return sb.String()
}

func formatMemory(exchanges []Exchange) string {
	var sb strings.Builder
	sb.WriteString("PAST COACHING EXCHANGES (from earlier sessions):\n")
	for _, ex := range exchanges {
		sb.WriteString(fmt.Sprintf("Customer: %s\n", ex.Customer))
		sb.WriteString(fmt.Sprintf("Coach: %s\n\n", ex.Avatar))
	}
	return sb.String()
}

func formatKnowledge(chunks []models.KnowledgeChunk) string {
	var sb strings.Builder
	sb.WriteString("RELEVANT KNOWLEDGE:\n")
	for i, ch := range chunks {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, ch.Content))
	}
	return sb.String()
}

func formatHistory(history []*models.TrainingMessage) string {
	var lines []string
	for _, msg := range history {
		switch msg.Role {
		case models.RoleCustomer:
			lines = append(lines, "Customer: "+msg.Content)
		case models.RoleAvatar:
			lines = append(lines, "Coach: "+msg.Content)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "CONVERSATION SO FAR:\n" + strings.Join(lines, "\n") + "\n"
}
