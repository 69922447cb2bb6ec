package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dine-insights/narrative"
	"dine-insights/sentiment"
)

// stubAnalyzer 固定返回文本或错误的叙事分析器替身
type stubAnalyzer struct {
	text string
	err  error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func newTestEngine() *sentiment.Engine {
	e := sentiment.NewEngine(1)
	e.Now = func() time.Time {
		return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	}
	return e
}

const validAnalysisBody = `{
	"feedbackData": [
		{"id": "1", "source": "reviews", "content": "Great food", "rating": 5, "date": "2026-08-01"},
		{"id": "2", "source": "surveys", "content": "Slow service", "rating": 2, "date": "2026-08-02"}
	],
	"analysisType": "comprehensive"
}`

func TestHandleSentimentAnalysisSuccess(t *testing.T) {
	handler := HandleSentimentAnalysis(
		&stubAnalyzer{text: "Guests praise the food but service lags."},
		narrative.FeedbackPromptBuilder{},
		newTestEngine(),
		nil,
	)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/sentiment-analyzer", strings.NewReader(validAnalysisBody))
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rr.Code, rr.Body.String())
	}

	var resp sentimentResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
	if resp.ProcessedFeedbackCount != 2 {
		t.Errorf("processedFeedbackCount = %d, want 2", resp.ProcessedFeedbackCount)
	}
	if resp.AIInsights != "Guests praise the food but service lags." {
		t.Errorf("aiInsights = %q", resp.AIInsights)
	}
	if resp.Analysis == nil {
		t.Fatal("analysis missing")
	}
	if resp.AnalysisType != "comprehensive" {
		t.Errorf("analysisType = %q", resp.AnalysisType)
	}
}

// 叙事分析器失败时整个请求失败，响应不得包含 analysis 字段
func TestHandleSentimentAnalysisUpstreamFailure(t *testing.T) {
	handler := HandleSentimentAnalysis(
		&stubAnalyzer{err: &narrative.UpstreamError{Status: 500, Body: "boom"}},
		narrative.FeedbackPromptBuilder{},
		newTestEngine(),
		nil,
	)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/sentiment-analyzer", strings.NewReader(validAnalysisBody))
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	var success bool
	json.Unmarshal(raw["success"], &success)
	if success {
		t.Error("success = true, want false")
	}
	var errMsg string
	json.Unmarshal(raw["error"], &errMsg)
	if errMsg == "" {
		t.Error("error message is empty")
	}
	if _, ok := raw["analysis"]; ok {
		t.Error("failure response must not carry an analysis field")
	}
}

func TestHandleSentimentAnalysisValidation(t *testing.T) {
	handler := HandleSentimentAnalysis(&stubAnalyzer{text: "ok"}, narrative.FeedbackPromptBuilder{}, newTestEngine(), nil)

	body := `{"feedbackData": [{"id": "1", "source": "fax", "content": "hi", "date": "2026-08-01"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/ai/sentiment-analyzer", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}

	var resp aiErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("validation failure envelope = %+v", resp)
	}
}

func TestHandleSentimentAnalysisMethodNotAllowed(t *testing.T) {
	handler := HandleSentimentAnalysis(&stubAnalyzer{text: "ok"}, narrative.FeedbackPromptBuilder{}, newTestEngine(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ai/sentiment-analyzer", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}
