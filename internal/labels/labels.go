// Package labels suggests category labels for a message and resolves the
// user's label choice against suggestions and existing labels.
package labels

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/mailvox/mailvox/internal/compose"
)

// Categories is the fixed vocabulary offered to the completion service.
var Categories = []string{
	"Work", "Personal", "Finance", "Travel", "Social",
	"Updates", "Important", "Family", "Shopping", "Promotions",
}

// DefaultCategory is applied when no rule matches.
const DefaultCategory = "General"

const suggestSystemRole = "You are a helpful assistant that labels emails."

// contentLimit bounds how much body text is sent for classification.
const contentLimit = 500

// Suggester proposes labels for a message.
type Suggester struct {
	gen compose.Generator
}

// NewSuggester creates a Suggester.
func NewSuggester(gen compose.Generator) *Suggester {
	return &Suggester{gen: gen}
}

// Suggest returns one to three label names for the message, most fitting
// first. Service failures and unparseable responses degrade to the
// keyword classifier, so the result is never empty.
func (s *Suggester) Suggest(ctx context.Context, subject, content string) []string {
	if len(content) > contentLimit {
		content = content[:contentLimit]
	}

	prompt := `Analyze the following email and determine the most appropriate 2-3 category labels for it.
Choose from these common categories: ` + strings.Join(Categories, ", ") + `.
If none of these fit well, suggest concise category names that best describe the email's purpose.

Email subject: ` + subject + `

Email content:
` + content + `

Return only a JSON array of 2-3 category names without any explanation or additional text.`

	text, err := s.gen.Generate(ctx, compose.GenerateRequest{
		System:      suggestSystemRole,
		Prompt:      prompt,
		MaxTokens:   100,
		Temperature: 0.3,
	})
	if err != nil {
		log.Println("label suggestion failed, using keyword rules:", err)
		return Classify(subject, content)
	}

	if parsed := parseSuggestions(text); len(parsed) > 0 {
		return parsed
	}

	return Classify(subject, content)
}

// parseSuggestions reads the service response as a JSON string array,
// falling back to comma splitting.
func parseSuggestions(text string) []string {
	text = strings.TrimSpace(text)

	var arr []string
	if err := json.Unmarshal([]byte(text), &arr); err == nil {
		out := make([]string, 0, 3)
		for _, label := range arr {
			if label = strings.TrimSpace(label); label != "" {
				out = append(out, label)
			}
			if len(out) == 3 {
				break
			}
		}
		return out
	}

	out := make([]string, 0, 3)
	for _, part := range strings.Split(text, ",") {
		if label := strings.Trim(part, " \"'[]\n"); label != "" {
			out = append(out, label)
		}
		if len(out) == 3 {
			break
		}
	}

	return out
}

var keywordRules = []struct {
	category string
	keywords []string
}{
	{"Work", []string{"meeting", "project", "deadline", "report"}},
	{"Finance", []string{"invoice", "payment", "receipt", "transaction"}},
	{"Important", []string{"urgent", "important", "immediately", "asap"}},
	{"Travel", []string{"flight", "hotel", "booking", "reservation"}},
	{"Updates", []string{"newsletter", "update", "news"}},
}

// Classify is the deterministic keyword classifier: each rule group adds
// its category on the first keyword hit, and DefaultCategory stands in
// when nothing matches.
func Classify(subject, content string) []string {
	combined := strings.ToLower(subject + " " + content)

	var out []string
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(combined, kw) {
				out = append(out, rule.category)
				break
			}
		}
	}

	if len(out) == 0 {
		out = append(out, DefaultCategory)
	}

	return out
}

var recommendationPhrases = []string{
	"use recommendation", "use suggested", "use suggestion", "apply recommendation",
}

// ResolveChoice maps the user's label utterance to the label to apply:
// a recommendation phrase takes the first suggestion, a number within the
// existing-labels bounds takes that label, anything else is a literal
// new-or-existing label name. The second return is false when there is
// nothing to apply (recommendation requested with no suggestions).
func ResolveChoice(choice string, existing, suggested []string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(choice))
	if v == "" {
		return "", false
	}

	for _, phrase := range recommendationPhrases {
		if v == phrase {
			if len(suggested) == 0 {
				return "", false
			}
			return suggested[0], true
		}
	}

	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(existing) {
		return existing[n-1], true
	}

	return strings.TrimSpace(choice), true
}
