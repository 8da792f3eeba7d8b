// ABOUTME: Scorer rates avatar responses with heuristic 0-100 scores
// ABOUTME: KeywordScorer counts empathy and medical terms; swappable via the interface

package coach

import (
	"strings"
)

// ScoreSet holds the heuristic scores attached to one avatar response.
// These are deterministic surface-level measures, not calibrated metrics.
type ScoreSet struct {
	Quality  int
	Empathy  int
	Accuracy int
}

// Scorer rates an avatar response. Implementations must be deterministic
// for the same input.
type Scorer interface {
	Score(response string) ScoreSet
}

// KeywordScorer scores by counting occurrences of fixed term lists.
type KeywordScorer struct {
	empathyTerms []string
	medicalTerms []string
}

// NewKeywordScorer creates a scorer with the default term lists.
func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{
		empathyTerms: []string{
			"understand", "hear you", "i'm sorry", "it's okay", "it's normal",
			"you're not alone", "support", "together", "brave", "feel",
			"concern", "here for you", "take your time",
		},
		medicalTerms: []string{
			"screening", "mammogram", "self-exam", "doctor", "healthcare",
			"clinical", "ultrasound", "symptom", "evidence", "risk",
			"specialist", "appointment",
		},
	}
}

// Score counts term occurrences and folds them into 0-100 scores.
func (k *KeywordScorer) Score(response string) ScoreSet {
	lower := strings.ToLower(response)

	empathyHits := countHits(lower, k.empathyTerms)
	medicalHits := countHits(lower, k.medicalTerms)

	empathy := clampScore(25 * empathyHits)
	accuracy := clampScore(25 * medicalHits)

	quality := (empathy + accuracy) / 2
	if len(response) >= 100 {
		quality += 10
	}

	return ScoreSet{
		Quality:  clampScore(quality),
		Empathy:  empathy,
		Accuracy: accuracy,
	}
}

func countHits(lower string, terms []string) int {
	hits := 0
	for _, term := range terms {
		hits += strings.Count(lower, term)
	}
	return hits
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
