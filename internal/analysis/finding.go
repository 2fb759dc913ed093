package analysis

// Clause type tags assigned by the model.
const (
	TypeMain  = "main"  // 주요 조항
	TypeToxin = "toxin" // 독소 조항
	TypeAmbi  = "ambi"  // 모호한 표현
)

// RiskLevel is the normalized severity of a finding from the reader's perspective.
type RiskLevel string

const (
	RiskLow  RiskLevel = "low"
	RiskMid  RiskLevel = "mid"
	RiskHigh RiskLevel = "high"
)

// ClauseFinding is one structured risk item extracted from a contract.
// Findings are produced only by the response validator and never mutated.
type ClauseFinding struct {
	Sentence    string    `json:"sentence"`
	Types       []string  `json:"types"`
	Law         string    `json:"law"`
	Description string    `json:"description"`
	Recommend   string    `json:"recommend"`
	Title       string    `json:"title"`
	Risk        RiskLevel `json:"risk"`
	Category    string    `json:"category"`
}

// HasType reports whether the finding carries the given clause type tag.
func (f ClauseFinding) HasType(tag string) bool {
	for _, t := range f.Types {
		if t == tag {
			return true
		}
	}
	return false
}

// Stats summarizes one analysis run.
type Stats struct {
	Total    int `json:"total"`
	Main     int `json:"main"`
	Toxin    int `json:"toxin"`
	Ambi     int `json:"ambi"`
	RiskHigh int `json:"risk_high"`
	RiskMid  int `json:"risk_mid"`
	RiskLow  int `json:"risk_low"`
}

// Result is the outcome of one analysis: findings in extraction order, the
// derived stats, and the bounded highlight list. It is computed once per
// upload and not persisted on its own; only the rendered report artifact and
// the source document survive.
type Result struct {
	Findings   []ClauseFinding `json:"findings"`
	Stats      Stats           `json:"stats"`
	Highlights []string        `json:"highlights"`
}
