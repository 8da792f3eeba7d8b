// ABOUTME: Chunker splits uploaded documents into sentence-bounded chunks
// ABOUTME: Tags each chunk with stopword-filtered keywords and topic buckets

package knowledge

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/brezcode/coach/internal/models"
)

const (
	// TargetChunkSize is the chunk size the splitter aims for. A chunk may
	// run slightly over to finish its last sentence.
	TargetChunkSize = 500

	// MaxChunkSize caps a single chunk; sentences longer than this are
	// hard-split.
	MaxChunkSize = 550

	// MaxKeywords limits how many keywords get attached to each chunk.
	MaxKeywords = 8
)

// topicPatterns maps topic buckets to the patterns that place a chunk in
// them. A chunk can belong to several buckets; chunks matching none are
// tagged "general".
var topicPatterns = map[string]*regexp.Regexp{
	"pricing":   regexp.MustCompile(`(?i)\b(price|pricing|cost|fee|plan|subscription|billing|refund)\b`),
	"technical": regexp.MustCompile(`(?i)\b(api|setup|install|configure|integration|error|bug|login)\b`),
	"health":    regexp.MustCompile(`(?i)\b(symptom|diagnosis|screening|mammogram|lump|breast|cancer|risk|doctor|exam|treatment)\b`),
	"emotional": regexp.MustCompile(`(?i)\b(anxious|anxiety|scared|worry|worried|fear|afraid|stress|overwhelmed)\b`),
}

// stopwords are excluded from keyword extraction.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "he": true, "her": true, "his": true,
	"if": true, "in": true, "is": true, "it": true, "its": true,
	"of": true, "on": true, "or": true, "our": true, "she": true,
	"that": true, "the": true, "their": true, "they": true, "this": true,
	"to": true, "was": true, "we": true, "were": true, "will": true,
	"with": true, "you": true, "your": true,
}

// Chunker splits document text into searchable chunks.
type Chunker struct{}

// NewChunker creates a new Chunker instance.
func NewChunker() *Chunker {
	return &Chunker{}
}

// ChunkDocument splits text into sentence-bounded chunks for the given
// document, tagging each with keywords and topics.
func (c *Chunker) ChunkDocument(doc *models.KnowledgeDocument, text string) ([]models.KnowledgeChunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("cannot chunk empty text")
	}

	sentences := splitSentences(text)

	var chunks []models.KnowledgeChunk
	var current strings.Builder

	flush := func() {
		content := strings.TrimSpace(current.String())
		current.Reset()
		if content == "" {
			return
		}
		chunks = append(chunks, models.KnowledgeChunk{
			ChunkID:    models.GenerateChunkID(),
			DocumentID: doc.DocumentID,
			AvatarID:   doc.AvatarID,
			Index:      len(chunks),
			Content:    content,
			Keywords:   extractKeywords(content),
			Topics:     classifyTopics(content),
		})
	}

	for _, sent := range sentences {
		// A single oversized sentence gets hard-split on its own. The cut
		// backs up to a rune boundary so multi-byte text stays valid.
		for len(sent) > MaxChunkSize {
			cut := MaxChunkSize
			for cut > 0 && !utf8.RuneStart(sent[cut]) {
				cut--
			}
			flush()
			current.WriteString(sent[:cut])
			flush()
			sent = sent[cut:]
		}
		if sent == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+len(sent)+1 > TargetChunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
	}
	flush()

	return chunks, nil
}

// splitSentences splits text into sentences on terminal punctuation,
// treating paragraph breaks as boundaries too.
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n\n", ". ")
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Only break when followed by whitespace or end of text.
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				sent := strings.TrimSpace(current.String())
				if sent != "" && sent != "." {
					sentences = append(sentences, sent)
				}
				current.Reset()
			}
		}
	}

	if sent := strings.TrimSpace(current.String()); sent != "" && sent != "." {
		sentences = append(sentences, sent)
	}

	return sentences
}

// extractKeywords returns the most frequent non-stopword terms in the
// content, longest-first on ties for stable output.
func extractKeywords(content string) []string {
	counts := make(map[string]int)

	for _, word := range strings.Fields(strings.ToLower(content)) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if len(word) < 3 || stopwords[word] {
			continue
		}
		counts[word]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > MaxKeywords {
		words = words[:MaxKeywords]
	}
	return words
}

// TopicsOf returns the topic buckets a piece of text matches. Exposed so
// session tracking can tag conversation turns with the same buckets.
func TopicsOf(text string) []string {
	return classifyTopics(text)
}

// classifyTopics returns the topic buckets the content matches, sorted
// alphabetically, or ["general"] when none match.
func classifyTopics(content string) []string {
	var topics []string
	for topic, pattern := range topicPatterns {
		if pattern.MatchString(content) {
			topics = append(topics, topic)
		}
	}
	if len(topics) == 0 {
		return []string{"general"}
	}
	sort.Strings(topics)
	return topics
}
