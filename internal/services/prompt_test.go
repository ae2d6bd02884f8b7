package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
)

func TestBuildAnalysisPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildAnalysisPrompt("RESUME BODY", "JOB BODY")

	assert.Contains(t, prompt, "Return ONLY valid JSON")
	assert.Contains(t, prompt, `"keywordMatches": [{"keyword": string, "foundInResume": boolean}]`)
	assert.Contains(t, prompt, "Resume:\n\"\"\"RESUME BODY\"\"\"")
	assert.Contains(t, prompt, "Job Description:\n\"\"\"JOB BODY\"\"\"")
}

func TestBuildChatTurns(t *testing.T) {
	pb := NewPromptBuilder()
	history := []models.ChatMessage{
		{Role: models.RoleUser, Text: "What skills should I add?"},
		{Role: models.RoleModel, Text: "Add SQL"},
		{Role: models.RoleUser, Text: "Why?"},
	}

	turns := pb.BuildChatTurns("my resume", "the job", history)

	require.Len(t, turns, 4)
	assert.Equal(t, models.RoleUser, turns[0].Role)
	assert.Contains(t, turns[0].Text, "\"\"\"my resume\"\"\"")
	assert.Contains(t, turns[0].Text, "\"\"\"the job\"\"\"")
	assert.Equal(t, history, turns[1:])

	turns[1].Text = "mutated"
	assert.Equal(t, "What skills should I add?", history[0].Text)
}
