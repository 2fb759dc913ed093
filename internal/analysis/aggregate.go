package analysis

const maxHighlights = 5

// Aggregate computes summary stats and the highlight list for a finding
// sequence, preserving extraction order throughout.
func Aggregate(findings []ClauseFinding) (Stats, []string) {
	stats := Stats{Total: len(findings)}
	for _, f := range findings {
		if f.HasType(TypeMain) {
			stats.Main++
		}
		if f.HasType(TypeToxin) {
			stats.Toxin++
		}
		if f.HasType(TypeAmbi) {
			stats.Ambi++
		}
		switch f.Risk {
		case RiskHigh:
			stats.RiskHigh++
		case RiskMid:
			stats.RiskMid++
		default:
			stats.RiskLow++
		}
	}
	return stats, selectHighlights(findings)
}

// selectHighlights picks at most five "[title] description" entries:
// toxin findings at high risk first, backfilled with toxin findings at mid
// risk, each tier in original finding order. No other type/risk combination
// ever contributes.
func selectHighlights(findings []ClauseFinding) []string {
	highlights := make([]string, 0, maxHighlights)
	for _, f := range findings {
		if len(highlights) == maxHighlights {
			return highlights
		}
		if f.HasType(TypeToxin) && f.Risk == RiskHigh {
			highlights = append(highlights, formatHighlight(f))
		}
	}
	for _, f := range findings {
		if len(highlights) == maxHighlights {
			return highlights
		}
		if f.HasType(TypeToxin) && f.Risk == RiskMid {
			highlights = append(highlights, formatHighlight(f))
		}
	}
	return highlights
}

func formatHighlight(f ClauseFinding) string {
	return "[" + f.Title + "] " + f.Description
}
