package mailbox

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NoMatchError means a selection utterance matched nothing in the list.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no email matches %q", e.Query)
}

// OutOfRangeError means a numeric selection fell outside the list bounds.
type OutOfRangeError struct {
	Index  int
	Length int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("email %d is out of range, have %d", e.Index, e.Length)
}

// Confidence grades how a selection was resolved.
type Confidence string

const (
	// HighConfidence: resolved from an explicit number.
	HighConfidence Confidence = "high"
	// LowConfidence: resolved from a keyword match.
	LowConfidence Confidence = "low"
)

// ordinalWords maps spoken ordinals to digit strings. Order matters
// twice: only the first word found in the utterance is substituted, so an
// utterance with two ordinals ("the third one, not the first") resolves
// on whichever entry appears first here; and the true ordinals must come
// before the bare number words so "the second one" reads as 2, not 1.
var ordinalWords = []struct{ word, digit string }{
	{"first", "1"}, {"second", "2"}, {"third", "3"}, {"fourth", "4"}, {"fifth", "5"},
	{"1st", "1"}, {"2nd", "2"}, {"3rd", "3"}, {"4th", "4"}, {"5th", "5"},
	{"one", "1"}, {"two", "2"}, {"three", "3"}, {"four", "4"}, {"five", "5"},
}

var numberToken = regexp.MustCompile(`\b(\d+)\b`)

// ResolveSelection maps a free-form utterance to a 1-based position in the
// snapshot. Resolution order, first hit wins:
//
//  1. ordinal words are translated to digits ("the second one" -> "the 2 one"),
//  2. the first run of digits anywhere in the utterance is taken as the
//     position; a number outside [1, len] fails with OutOfRangeError without
//     falling through,
//  3. remaining tokens longer than two characters are matched as substrings
//     against sender name, sender address and subject, in list order.
//
// Anything else fails with NoMatchError.
func (s Snapshot) ResolveSelection(query string) (int, Confidence, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))

	for _, ord := range ordinalWords {
		if strings.Contains(normalized, ord.word) {
			normalized = strings.ReplaceAll(normalized, ord.word, ord.digit)
			break
		}
	}

	if m := numberToken.FindString(normalized); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > len(s.Messages) {
			return 0, "", &OutOfRangeError{Index: n, Length: len(s.Messages)}
		}
		return n, HighConfidence, nil
	}

	tokens := strings.Fields(normalized)
	for i, msg := range s.Messages {
		name := strings.ToLower(msg.SenderName)
		addr := strings.ToLower(msg.SenderAddr)
		subject := strings.ToLower(msg.Subject)

		for _, tok := range tokens {
			if len(tok) <= 2 {
				continue
			}
			if strings.Contains(name, tok) || strings.Contains(addr, tok) || strings.Contains(subject, tok) {
				return i + 1, LowConfidence, nil
			}
		}
	}

	return 0, "", &NoMatchError{Query: query}
}
