package models

// AnalysisResult is the structured outcome of one resume analysis. A new
// analysis replaces it wholesale; fields are never merged.
type AnalysisResult struct {
	Score                  int            `json:"score"`
	OverallFeedback        string         `json:"overallFeedback"`
	KeywordMatches         []KeywordMatch `json:"keywordMatches"`
	ImprovementSuggestions []string       `json:"improvementSuggestions"`
}

type KeywordMatch struct {
	Keyword       string `json:"keyword"`
	FoundInResume bool   `json:"foundInResume"`
}

// Clone returns a deep copy so snapshots never alias session state.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	out := *r
	out.KeywordMatches = append([]KeywordMatch(nil), r.KeywordMatches...)
	out.ImprovementSuggestions = append([]string(nil), r.ImprovementSuggestions...)
	return &out
}

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
