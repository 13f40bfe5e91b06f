package invoker

import (
	"regexp"
	"strings"
)

// MaxSuggestions caps the follow-up chips sent to a client.
const MaxSuggestions = 6

var reSuggestion = regexp.MustCompile(`(?m)^\s*\[Suggestion\]\s*(.+)$`)

// ExtractSuggestions pulls [Suggestion] lines out of a model answer and
// returns the answer with those lines removed plus up to MaxSuggestions
// deduplicated chips.
func ExtractSuggestions(text string) (string, []string) {
	var suggestions []string
	seen := map[string]bool{}

	for _, m := range reSuggestion.FindAllStringSubmatch(text, -1) {
		chip := strings.TrimSpace(m[1])
		if chip == "" || seen[strings.ToLower(chip)] {
			continue
		}
		seen[strings.ToLower(chip)] = true
		suggestions = append(suggestions, chip)
		if len(suggestions) >= MaxSuggestions {
			break
		}
	}

	answer := reSuggestion.ReplaceAllString(text, "")
	return strings.TrimSpace(answer), suggestions
}

// defaultSuggestions is the chip set used when the model proposed none, and
// for fallback answers.
func defaultSuggestions() []string {
	return []string{
		"Show me available apartments",
		"What are current rental prices?",
		"Find roommate matches for me",
		"What's the neighborhood like?",
	}
}
