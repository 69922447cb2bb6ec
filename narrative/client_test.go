package narrative

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dine-insights/models"
)

func TestNewGeminiClientMissingCredential(t *testing.T) {
	_, err := NewGeminiClient(Config{})
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("err = %v, want ErrMissingCredential", err)
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Guests are happy overall."}]}}]}`))
	}))
	defer srv.Close()

	client, err := NewGeminiClient(Config{Endpoint: srv.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatal(err)
	}

	text, err := client.Analyze(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Guests are happy overall." {
		t.Errorf("text = %q", text)
	}
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, _ := NewGeminiClient(Config{Endpoint: srv.URL, APIKey: "test-key"})

	_, err := client.Analyze(context.Background(), "analyze this")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want *UpstreamError", err)
	}
	if upstream.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", upstream.Status)
	}
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client, _ := NewGeminiClient(Config{Endpoint: srv.URL, APIKey: "test-key"})

	_, err := client.Analyze(context.Background(), "analyze this")
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want *UpstreamError", err)
	}
}

func TestFeedbackPromptIncludesRecords(t *testing.T) {
	rating := 2.0
	req := &models.AnalysisRequest{
		AnalysisType: models.AnalysisComprehensive,
		Timeframe:    "30d",
		FocusAreas:   []string{"service"},
		FeedbackData: []models.FeedbackRecord{
			{ID: "1", Source: models.SourceReviews, Content: "cold food", Rating: &rating, Date: "2026-08-01"},
		},
	}

	prompt := FeedbackPromptBuilder{}.Build(req)
	for _, want := range []string{"cold food", "comprehensive", "30d", "service", "2.0"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
