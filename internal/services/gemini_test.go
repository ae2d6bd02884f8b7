package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type recordedRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMIMEType string `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type fakeGeminiServer struct {
	mu       sync.Mutex
	requests []recordedRequest
	reply    string
}

func (f *fakeGeminiServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, ":generateContent") {
		http.NotFound(w, r)
		return
	}

	var req recordedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(f.reply))
}

func newTestGemini(t *testing.T, reply string) (GeminiService, *fakeGeminiServer) {
	t.Helper()
	fake := &fakeGeminiServer{reply: reply}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	svc, err := NewGeminiService(context.Background(), "test-key", "gemini-2.0-flash", server.URL+"/")
	require.NoError(t, err)
	return svc, fake
}

func TestGeminiService_GenerateJSON(t *testing.T) {
	svc, fake := newTestGemini(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"score\":82}"}]}}]}`)

	text, err := svc.GenerateJSON(context.Background(), "score this resume")

	require.NoError(t, err)
	assert.Equal(t, `{"score":82}`, text)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
	require.Len(t, req.Contents, 1)
	assert.Equal(t, "user", req.Contents[0].Role)
	assert.Equal(t, "score this resume", req.Contents[0].Parts[0].Text)
}

func TestGeminiService_ChatSendsTurnsInOrder(t *testing.T) {
	svc, fake := newTestGemini(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Add SQL"},{"text":"ignored"}]}}]}`)

	text, err := svc.Chat(context.Background(), []models.ChatMessage{
		{Role: models.RoleUser, Text: "context"},
		{Role: models.RoleUser, Text: "What skills should I add?"},
		{Role: models.RoleModel, Text: "Learn Go"},
		{Role: models.RoleUser, Text: "Why?"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Add SQL", text)

	require.Len(t, fake.requests, 1)
	var roles, texts []string
	for _, c := range fake.requests[0].Contents {
		roles = append(roles, c.Role)
		texts = append(texts, c.Parts[0].Text)
	}
	assert.Equal(t, []string{"user", "user", "model", "user"}, roles)
	assert.Equal(t, []string{"context", "What skills should I add?", "Learn Go", "Why?"}, texts)
	assert.Empty(t, fake.requests[0].GenerationConfig.ResponseMIMEType)
}

func TestGeminiService_NoCandidates(t *testing.T) {
	svc, _ := newTestGemini(t, `{"candidates":[]}`)

	_, err := svc.GenerateJSON(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestGeminiService_ChatEmptyReplyIsNoCandidate(t *testing.T) {
	svc, _ := newTestGemini(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":""}]}}]}`)

	_, err := svc.Chat(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Text: "Why?"}})

	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestFirstCandidateText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, wantErr: true},
		{
			name:    "no parts",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
			wantErr: true,
		},
		{
			name: "only an empty text part",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: ""}}}},
			}},
			wantErr: true,
		},
		{
			name: "function call without text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{Name: "lookup"}}}}},
			}},
			wantErr: true,
		},
		{
			name: "thought part is skipped",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "thinking...", Thought: true}, {Text: "Add SQL"}}}},
			}},
			want: "Add SQL",
		},
		{
			name: "first part of first candidate",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "first"}, {Text: "second"}}}},
				{Content: &genai.Content{Parts: []*genai.Part{{Text: "other"}}}},
			}},
			want: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstCandidateText(tt.resp)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoCandidates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
