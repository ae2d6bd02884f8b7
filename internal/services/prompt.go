package services

import (
	"fmt"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the scoring prompt. The reply shape it asks for
// is the one AnalysisParser validates.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an AI resume analysis tool.
Return ONLY valid JSON, no text or markdown.
JSON must have:
{
  "score": number (0-100),
  "overallFeedback": string,
  "keywordMatches": [{"keyword": string, "foundInResume": boolean}],
  "improvementSuggestions": [string]
}
All strings must be properly escaped (\n, \", \\). No extra explanation.

Resume:
"""%s"""

Job Description:
"""%s"""
`, resumeText, jobDescription)
}

// BuildChatContext restates the resume and job description for a chat turn.
func (pb *PromptBuilder) BuildChatContext(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an AI resume assistant.
Here is the resume and job description you should always use as context:

Resume:
"""%s"""

Job Description:
"""%s"""

Now answer the user's question below based on this context:`, resumeText, jobDescription)
}

// BuildChatTurns returns the outbound conversation: the context message
// followed by every history entry in its original order.
func (pb *PromptBuilder) BuildChatTurns(resumeText, jobDescription string, history []models.ChatMessage) []models.ChatMessage {
	turns := make([]models.ChatMessage, 0, len(history)+1)
	turns = append(turns, models.ChatMessage{
		Role: models.RoleUser,
		Text: pb.BuildChatContext(resumeText, jobDescription),
	})
	return append(turns, history...)
}
