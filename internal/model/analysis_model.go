package model

// Severity grades an audit issue.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
	SeverityInfo   Severity = "INFO"
)

// Penalty is the number of points an issue of this severity takes off a
// section score.
func (s Severity) Penalty() int {
	switch s {
	case SeverityHigh:
		return 30
	case SeverityMedium:
		return 20
	case SeverityLow:
		return 10
	default:
		return 5
	}
}

// Issue is a single finding of an analyzer.
type Issue struct {
	Severity Severity `json:"severity" example:"MEDIUM"`
	Message  string   `json:"message" example:"Missing meta description"`
}

// SectionResult is the outcome of one analyzer for one page.
type SectionResult struct {
	Score           int      `json:"score" example:"80"`
	Issues          []Issue  `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// NewSectionResult scores issues and returns a result with non-nil slices.
func NewSectionResult(issues []Issue, recommendations []string) SectionResult {
	if issues == nil {
		issues = []Issue{}
	}
	if recommendations == nil {
		recommendations = []string{}
	}
	return SectionResult{
		Score:           Score(issues),
		Issues:          issues,
		Recommendations: recommendations,
	}
}

// Score returns 100 minus the penalties of issues, floored at 0.
func Score(issues []Issue) int {
	score := 100
	for _, i := range issues {
		score -= i.Severity.Penalty()
	}
	if score < 0 {
		return 0
	}
	return score
}
