package reply

import (
	"regexp"
	"strings"

	"github.com/mailvox/mailvox/internal/compose"
)

// NormalizeStyle maps a free-form style utterance to a reply style.
// Numbered choices follow the order the options are offered in:
// own words, professional, casual, custom. Anything unrecognized becomes
// a custom style with the utterance as its label.
func NormalizeStyle(value string) (compose.Style, string) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", ""
	}

	switch v {
	case "1", "one", "first", "option 1", "first option", string(compose.StyleVerbatim):
		return compose.StyleVerbatim, ""
	case "2", "two", "second", "option 2", "second option", string(compose.StyleProfessional):
		return compose.StyleProfessional, ""
	case "3", "three", "third", "option 3", "third option", string(compose.StyleCasual):
		return compose.StyleCasual, ""
	case "4", "four", "fourth", "option 4", "fourth option", string(compose.StyleCustom):
		return compose.StyleCustom, ""
	}

	if containsAny(v, "own words", "my words", "write", "myself") {
		return compose.StyleVerbatim, ""
	}
	if containsAny(v, "professional", "formal", "business") {
		return compose.StyleProfessional, ""
	}
	if containsAny(v, "casual", "friendly", "informal") {
		return compose.StyleCasual, ""
	}

	return compose.StyleCustom, strings.TrimSpace(value)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ReviewOption is the user's decision after reviewing a draft.
type ReviewOption string

const (
	ReviewSend      ReviewOption = "send"
	ReviewEdit      ReviewOption = "edit"
	ReviewStartOver ReviewOption = "start_over"
	ReviewCancel    ReviewOption = "cancel"
)

var reviewPatterns = []struct {
	option   ReviewOption
	patterns []*regexp.Regexp
}{
	{ReviewStartOver, compilePatterns(`start over\b`, `redo\b`, `rewrite\b`, `scratch\b`)},
	{ReviewCancel, compilePatterns(`cancel\b`, `discard\b`, `never mind\b`, `don't send\b`)},
	{ReviewEdit, compilePatterns(`edit\b`, `change\b`, `modify\b`, `revise\b`, `fix\b`, `correction\b`, `update\b`)},
	{ReviewSend, compilePatterns(
		`send\b`, `looks good\b`, `good\b`, `proceed\b`, `go ahead\b`,
		`approved\b`, `that's good\b`, `that looks\b`)},
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// NormalizeReviewOption maps free-form review phrasing ("looks good",
// "don't send", "fix the greeting") to a canonical option. Negated and
// corrective phrasings are checked before the send phrasings so "don't
// send" never reads as send.
func NormalizeReviewOption(utterance string) (ReviewOption, bool) {
	v := strings.ToLower(strings.TrimSpace(utterance))

	switch ReviewOption(v) {
	case ReviewSend, ReviewEdit, ReviewStartOver, ReviewCancel:
		return ReviewOption(v), true
	}

	for _, group := range reviewPatterns {
		for _, p := range group.patterns {
			if p.MatchString(v) {
				return group.option, true
			}
		}
	}

	return "", false
}
