// Package postprocess strips chat-model artifacts from translation output.
// The translation prompt asks for the translated text and nothing else, but
// models still occasionally prepend an introduction or wrap the answer in
// quotes.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean returns text with instruction echoes and quote wrapping removed.
func Clean(text string) string {
	text = removeInstructionEchoes(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// echoPatterns match introductory phrases anchored to the start of the
// string. Each requires a colon to avoid eating legitimate content.
var echoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:translated )?(?:translation|text)\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:translation|translated text)\s*:`),
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.]? here(?:'s| is)(?: the)? (?:translated )?(?:translation|text)\s*:`),
}

func removeInstructionEchoes(text string) string {
	trimmed := strings.TrimSpace(text)
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(trimmed); loc != nil {
			return strings.TrimSpace(trimmed[loc[1]:])
		}
	}
	return trimmed
}

// removeQuoteWrapping unwraps a reply that is one fully quoted string. Quotes
// inside the text are left alone.
func removeQuoteWrapping(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 {
		return trimmed
	}

	pairs := [][2]string{{`"`, `"`}, {"'", "'"}, {"«", "»"}, {"“", "”"}}
	for _, p := range pairs {
		if strings.HasPrefix(trimmed, p[0]) && strings.HasSuffix(trimmed, p[1]) {
			inner := trimmed[len(p[0]) : len(trimmed)-len(p[1])]
			// Only unwrap when the outer pair is the sole occurrence.
			if !strings.Contains(inner, p[0]) && !strings.Contains(inner, p[1]) {
				return strings.TrimSpace(inner)
			}
		}
	}
	return trimmed
}
