package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var (
	ErrInvalidJSON    = errors.New("invalid JSON")
	ErrSchemaMismatch = errors.New("analysis does not match schema")
)

const analysisSchema = `{
  "type": "object",
  "required": ["score", "overallFeedback", "keywordMatches", "improvementSuggestions"],
  "properties": {
    "score": {"type": "number", "minimum": 0, "maximum": 100},
    "overallFeedback": {"type": "string"},
    "keywordMatches": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["keyword", "foundInResume"],
        "properties": {
          "keyword": {"type": "string"},
          "foundInResume": {"type": "boolean"}
        }
      }
    },
    "improvementSuggestions": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

// AnalysisParser turns the raw AI reply into a validated AnalysisResult.
type AnalysisParser interface {
	Parse(reply string) (*models.AnalysisResult, error)
}

type analysisParser struct {
	schema *gojsonschema.Schema
}

func NewAnalysisParser() (AnalysisParser, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(analysisSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile analysis schema: %w", err)
	}
	return &analysisParser{schema: schema}, nil
}

type analysisReply struct {
	Score                  float64               `json:"score"`
	OverallFeedback        string                `json:"overallFeedback"`
	KeywordMatches         []models.KeywordMatch `json:"keywordMatches"`
	ImprovementSuggestions []string              `json:"improvementSuggestions"`
}

// Parse implements AnalysisParser. Nothing partially typed is ever returned:
// the reply is either fully valid or rejected.
func (p *analysisParser) Parse(reply string) (*models.AnalysisResult, error) {
	jsonStr := ExtractJSON(reply)
	if !json.Valid([]byte(jsonStr)) {
		return nil, ErrInvalidJSON
	}

	res, err := p.schema.Validate(gojsonschema.NewStringLoader(jsonStr))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if !res.Valid() {
		var msgs []string
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(msgs, "; "))
	}

	var decoded analysisReply
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	result := &models.AnalysisResult{
		Score:                  int(math.Round(decoded.Score)),
		OverallFeedback:        decoded.OverallFeedback,
		KeywordMatches:         decoded.KeywordMatches,
		ImprovementSuggestions: decoded.ImprovementSuggestions,
	}
	if result.KeywordMatches == nil {
		result.KeywordMatches = []models.KeywordMatch{}
	}
	if result.ImprovementSuggestions == nil {
		result.ImprovementSuggestions = []string{}
	}

	return result, nil
}

// ExtractJSON strips markdown fences the model may wrap around a JSON object
// and trims to the outermost braces.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
