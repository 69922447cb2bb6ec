// 会议洞察、行动项与摘要的启发式派生
package voice

import (
	"strings"
	"time"

	"dine-insights/models"
	"dine-insights/sentiment"
)

// 承诺类措辞，命中即视为行动项
var commitmentMarkers = []string{
	"i will", "i'll", "we will", "we'll", "need to", "needs to",
	"follow up", "schedule", "prepare", "by friday", "by next week",
}

// 决定类措辞
var decisionMarkers = []string{"agreed", "decided", "we will go with", "approved"}

// BuildInsights 从转写段落派生会议洞察
func BuildInsights(segments []models.TranscriptionSegment) *models.MeetingInsights {
	var texts []string
	var decisions []string
	var questions []string
	positives, negatives := 0, 0

	for _, seg := range segments {
		texts = append(texts, seg.Text)
		lower := strings.ToLower(seg.Text)

		for _, m := range decisionMarkers {
			if strings.Contains(lower, m) {
				decisions = append(decisions, seg.Text)
				break
			}
		}
		if strings.HasSuffix(strings.TrimSpace(seg.Text), "?") {
			questions = append(questions, seg.Text)
		}
		for _, kw := range emotionKeywords["positive"] {
			if strings.Contains(lower, kw) {
				positives++
				break
			}
		}
		for _, kw := range emotionKeywords["concerned"] {
			if strings.Contains(lower, kw) {
				negatives++
				break
			}
		}
	}

	tone := "neutral"
	if positives > negatives {
		tone = "positive"
	} else if negatives > positives {
		tone = "negative"
	}

	return &models.MeetingInsights{
		Topics:        ExtractTopics(texts, 5),
		Decisions:     decisions,
		OpenQuestions: questions,
		OverallTone:   tone,
	}
}

// ExtractActionItems 含承诺措辞的段落各派生一个行动项，负责人为说话人
func ExtractActionItems(segments []models.TranscriptionSegment, now time.Time) []models.ActionItem {
	var items []models.ActionItem
	for _, seg := range segments {
		lower := strings.ToLower(seg.Text)
		matched := false
		for _, m := range commitmentMarkers {
			if strings.Contains(lower, m) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		priority := "medium"
		if strings.Contains(lower, "asap") || strings.Contains(lower, "immediately") {
			priority = "urgent"
		}
		items = append(items, models.ActionItem{
			Priority: priority,
			Category: "Meeting Follow-up",
			Action:   seg.Text,
			Owner:    seg.SpeakerName,
			Deadline: now.AddDate(0, 0, 7).Format("2006-01-02"),
			SuccessMetrics: []string{
				"Confirmed complete at next meeting",
			},
		})
	}
	return items
}

// Summarize 摘要优先取叙事文本，缺失时拼接首尾段落
func Summarize(segments []models.TranscriptionSegment, narrative string) string {
	if s := strings.TrimSpace(narrative); s != "" {
		if idx := strings.Index(s, "\n\n"); idx > 0 {
			s = s[:idx]
		}
		return s
	}
	if len(segments) == 0 {
		return ""
	}
	parts := []string{segments[0].Text}
	if len(segments) > 1 {
		parts = append(parts, segments[len(segments)-1].Text)
	}
	return strings.Join(parts, " ")
}

// BuildResult 组装最终结果。analysis/meeting_notes 类型附带洞察与行动项
func BuildResult(req *models.VoiceRequest, segments []models.TranscriptionSegment, narrative string, now time.Time) *models.VoiceResult {
	result := &models.VoiceResult{
		Transcription:   segments,
		SpeakerAnalysis: AnalyzeSpeakers(segments),
		Confidence:      sentiment.Confidence(len(segments)),
	}
	if req.AnalysisType == models.VoiceAnalysis || req.AnalysisType == models.VoiceMeetingNotes {
		result.MeetingInsights = BuildInsights(segments)
		result.ActionItems = ExtractActionItems(segments, now)
		result.Summary = Summarize(segments, narrative)
	}
	return result
}
