package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var ErrNoCandidates = errors.New("no candidate text in response")

// GeminiService talks to the external generative-AI endpoint.
type GeminiService interface {
	// GenerateJSON sends a single prompt and asks for a JSON-typed reply.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	// Chat sends the whole conversation, oldest turn first, and returns the reply text.
	Chat(ctx context.Context, turns []models.ChatMessage) (string, error)
}

type geminiService struct {
	client    *genai.Client
	clientErr error
	modelName string
}

func NewGeminiService(ctx context.Context, apiKey, modelName, baseURL string) (GeminiService, error) {
	if apiKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is empty, requests will be rejected by the AI service")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	// Without a key the client may fail to build; calls then fail one by one.
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		if apiKey != "" {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		log.Printf("⚠️  Gemini client unavailable: %v\n", err)
	}

	return &geminiService{
		client:    client,
		clientErr: err,
		modelName: modelName,
	}, nil
}

// GenerateJSON implements GeminiService.
func (g *geminiService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	return g.generate(ctx, contents, config)
}

// Chat implements GeminiService.
func (g *geminiService) Chat(ctx context.Context, turns []models.ChatMessage) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := genai.Role(genai.RoleUser)
		if turn.Role == models.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}

	return g.generate(ctx, contents, nil)
}

func (g *geminiService) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	if g.clientErr != nil {
		return "", fmt.Errorf("gemini client unavailable: %w", g.clientErr)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := firstCandidateText(resp)
	if err != nil {
		log.Printf("❌ Gemini response had no usable candidate: %v\n", err)
		return "", err
	}

	log.Printf("📊 Gemini response received: %d characters\n", len(text))
	return text, nil
}

// firstCandidateText returns the first text part of the first candidate.
// Thought parts and parts without text (function calls, inline data) are
// skipped; a candidate with no text at all counts as no reply.
func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return "", ErrNoCandidates
	}

	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		return part.Text, nil
	}

	return "", ErrNoCandidates
}
