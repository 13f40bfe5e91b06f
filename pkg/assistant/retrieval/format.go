package retrieval

import (
	"fmt"
	"strings"

	"nestquest-be/pkg/store"
)

// section renders a titled fragment, or "" when there is nothing to say.
func section(title string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return title + ":\n" + strings.Join(lines, "\n")
}

// clip shortens free text for context lines.
func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// preferenceColumns maps user_preferences columns to context labels, in
// render order.
var preferenceColumns = []struct {
	column string
	label  string
}{
	{"preferred_city", "preferred city"},
	{"budget_min", "budget min"},
	{"budget_max", "budget max"},
	{"bedrooms", "bedrooms"},
	{"commute_destination", "commutes to"},
	{"move_in_date", "move-in date"},
	{"pets", "pets"},
	{"lifestyle", "lifestyle"},
}

// formatUserPreferences renders one user_preferences row as the profile
// fragment of the context block.
func formatUserPreferences(row store.Row) string {
	return section("USER PROFILE", preferenceLines(row))
}

func preferenceLines(row store.Row) []string {
	lines := make([]string, 0, len(preferenceColumns))
	for _, pc := range preferenceColumns {
		if !row.Has(pc.column) {
			continue
		}
		switch pc.column {
		case "budget_min", "budget_max":
			if v := row.Float(pc.column); v > 0 {
				lines = append(lines, fmt.Sprintf("- %s: $%.0f/mo", pc.label, v))
			}
		case "bedrooms":
			if v := row.Int(pc.column); v > 0 {
				lines = append(lines, fmt.Sprintf("- %s: %d", pc.label, v))
			}
		default:
			if v := row.Str(pc.column); v != "" {
				lines = append(lines, fmt.Sprintf("- %s: %s", pc.label, v))
			}
		}
	}
	return lines
}
