package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dine-insights/narrative"
)

func voiceBody(analysisType string) string {
	audio := base64.StdEncoding.EncodeToString([]byte("fake audio bytes"))
	return fmt.Sprintf(`{"audioData": %q, "analysisType": %q}`, audio, analysisType)
}

// transcription 为纯确定性路径，不触发叙事分析器
func TestHandleVoiceAnalysisTranscription(t *testing.T) {
	handler := HandleVoiceAnalysis(
		&stubAnalyzer{err: fmt.Errorf("must not be called")},
		narrative.MeetingPromptBuilder{},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/voice-separator", strings.NewReader(voiceBody("transcription")))
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rr.Code, rr.Body.String())
	}

	var resp voiceResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Result == nil || len(resp.Result.Transcription) == 0 {
		t.Fatal("transcription segments missing")
	}
	if len(resp.Result.SpeakerAnalysis) == 0 {
		t.Error("speaker analysis missing")
	}
	if resp.Result.MeetingInsights != nil {
		t.Error("transcription type should not carry meeting insights")
	}
	for _, seg := range resp.Result.Transcription {
		if seg.SpeakerID == "" || seg.SpeakerName == "" {
			t.Errorf("segment missing speaker: %+v", seg)
		}
	}
}

func TestHandleVoiceAnalysisMeetingNotes(t *testing.T) {
	handler := HandleVoiceAnalysis(
		&stubAnalyzer{text: "The team aligned on next month's menu trial."},
		narrative.MeetingPromptBuilder{},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/voice-separator", strings.NewReader(voiceBody("meeting_notes")))
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rr.Code, rr.Body.String())
	}

	var resp voiceResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result.MeetingInsights == nil {
		t.Error("meeting insights missing")
	}
	if resp.Result.Summary != "The team aligned on next month's menu trial." {
		t.Errorf("summary = %q", resp.Result.Summary)
	}
}

func TestHandleVoiceAnalysisBadRequests(t *testing.T) {
	handler := HandleVoiceAnalysis(&stubAnalyzer{text: "ok"}, narrative.MeetingPromptBuilder{})

	cases := []struct {
		name string
		body string
	}{
		{"unknown type", voiceBody("karaoke")},
		{"invalid base64", `{"audioData": "not-base64!!!", "analysisType": "transcription"}`},
		{"missing audio", `{"analysisType": "transcription"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/ai/voice-separator", strings.NewReader(c.body))
			rr := httptest.NewRecorder()
			handler(rr, req)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestHandleVoiceAnalysisUpstreamFailure(t *testing.T) {
	handler := HandleVoiceAnalysis(
		&stubAnalyzer{err: &narrative.UpstreamError{Status: 500, Body: "boom"}},
		narrative.MeetingPromptBuilder{},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/voice-separator", strings.NewReader(voiceBody("analysis")))
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var resp aiErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("failure envelope = %+v", resp)
	}
}
