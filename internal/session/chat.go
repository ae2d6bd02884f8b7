package session

import (
	"context"
	"errors"
	"fmt"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const MsgChatNoReply = "Failed to get a response from the chatbot. Please try again."

// SendChat runs one chat turn. The user message is appended before the call
// and stays in history even if the call fails. The resume and job description
// are read at send time, so edits between turns apply to the next one.
func (s *Session) SendChat(ctx context.Context, input string) error {
	if isBlank(input) {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	ctx, seq, finish, err := s.beginLocked(ctx, OpChat, true)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	defer finish()
	s.history = append(s.history, models.ChatMessage{Role: models.RoleUser, Text: input})
	turns := s.deps.Prompts.BuildChatTurns(s.resumeText, s.jobDescription, s.history)
	s.mu.Unlock()

	reply, err := s.deps.Gemini.Chat(ctx, turns)
	if err != nil {
		msg := "Error communicating with the chatbot: " + describeError(err)
		if errors.Is(err, services.ErrNoCandidates) {
			msg = MsgChatNoReply
		}
		if !s.settle(OpChat, seq, failed(models.KindChatError, msg), nil) {
			return ErrSuperseded
		}
		return fmt.Errorf("chat request failed: %w", err)
	}

	appendReply := func() {
		s.history = append(s.history, models.ChatMessage{Role: models.RoleModel, Text: reply})
	}
	if !s.settle(OpChat, seq, succeeded(models.KindNone, ""), appendReply) {
		return ErrSuperseded
	}
	return nil
}
