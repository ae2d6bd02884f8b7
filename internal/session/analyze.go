package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const (
	MsgAnalysisNoResult    = "Failed to get a valid analysis result from AI. Please try again."
	MsgAnalysisInvalidJSON = "AI returned invalid JSON. Try using shorter text or simpler input."
)

// Analyze scores the current resume against the job description. At most one
// analysis runs at a time. On failure the previous result stays in place; on
// success it is replaced wholesale.
func (s *Session) Analyze(ctx context.Context) error {
	s.mu.Lock()
	if isBlank(s.resumeText) {
		s.mu.Unlock()
		return ErrEmptyResume
	}
	ctx, seq, finish, err := s.beginLocked(ctx, OpAnalysis, true)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	defer finish()
	resumeText, jobDescription := s.resumeText, s.jobDescription
	s.mu.Unlock()

	prompt := s.deps.Prompts.BuildAnalysisPrompt(resumeText, jobDescription)
	log.Printf("🤖 Analyzing resume, prompt length: %d characters\n", len(prompt))

	reply, err := s.deps.Gemini.GenerateJSON(ctx, prompt)
	if err != nil {
		msg := "Error during analysis: " + describeError(err)
		if errors.Is(err, services.ErrNoCandidates) {
			msg = MsgAnalysisNoResult
		}
		if !s.settle(OpAnalysis, seq, failed(models.KindAnalysisError, msg), nil) {
			return ErrSuperseded
		}
		return fmt.Errorf("analysis request failed: %w", err)
	}

	result, err := s.deps.Parser.Parse(reply)
	if err != nil {
		log.Printf("❌ Failed to parse analysis reply: %v\n", err)
		if !s.settle(OpAnalysis, seq, failed(models.KindAnalysisError, MsgAnalysisInvalidJSON), nil) {
			return ErrSuperseded
		}
		return fmt.Errorf("failed to parse analysis: %w", err)
	}

	if !s.settle(OpAnalysis, seq, succeeded(models.KindNone, ""), func() { s.result = result }) {
		log.Println("⚠️  Dropping stale analysis reply")
		return ErrSuperseded
	}

	log.Printf("✅ Analysis completed, score %d\n", result.Score)
	return nil
}

func describeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	return err.Error()
}
