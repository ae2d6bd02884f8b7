package cli

import (
	"fmt"
	"io"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	NoKeywordsHint    = "No specific keywords identified for matching. Try providing a more detailed job description."
	NoSuggestionsHint = "No specific improvement suggestions generated. Your resume might already be well-optimized!"
	EmptyChatHint     = "Start a conversation to get resume improvement suggestions!"
)

// RenderResult writes an analysis result in the same order the results page
// shows it: score, feedback, keywords, suggestions.
func RenderResult(w io.Writer, result *models.AnalysisResult) {
	if result == nil {
		fmt.Fprintln(w, "No analysis yet. Run /analyze first.")
		return
	}

	fmt.Fprintln(w, "Analysis Results")
	fmt.Fprintf(w, "Resume Score: %d/100\n", result.Score)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Overall Feedback:")
	fmt.Fprintln(w, result.OverallFeedback)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keyword Matching:")
	if len(result.KeywordMatches) == 0 {
		fmt.Fprintln(w, NoKeywordsHint)
	}
	for _, match := range result.KeywordMatches {
		marker := "❌"
		if match.FoundInResume {
			marker = "✅"
		}
		fmt.Fprintf(w, "  %s %s\n", marker, match.Keyword)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Improvement Suggestions:")
	if len(result.ImprovementSuggestions) == 0 {
		fmt.Fprintln(w, NoSuggestionsHint)
	}
	for i, suggestion := range result.ImprovementSuggestions {
		fmt.Fprintf(w, "  %d. 💡 %s\n", i+1, suggestion)
	}
}

func RenderHistory(w io.Writer, history []models.ChatMessage) {
	if len(history) == 0 {
		fmt.Fprintln(w, EmptyChatHint)
		return
	}
	for _, msg := range history {
		fmt.Fprintf(w, "%s: %s\n", speaker(msg.Role), msg.Text)
	}
}

// RenderStatus prints one operation's status line, or nothing while idle.
func RenderStatus(w io.Writer, label string, status models.OperationStatus) {
	switch status.Phase {
	case models.PhasePending:
		fmt.Fprintf(w, "⏳ %s in progress...\n", label)
	case models.PhaseFailed:
		fmt.Fprintf(w, "❌ %s\n", status.Message)
	case models.PhaseSucceeded:
		if status.Message != "" {
			fmt.Fprintf(w, "✅ %s\n", status.Message)
		}
	}
}

func speaker(role models.ChatRole) string {
	if role == models.RoleUser {
		return "You"
	}
	return "AI"
}
