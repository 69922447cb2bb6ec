// 提示词构造。模板化为独立关注点，格式演进不触碰评分逻辑
package narrative

import (
	"fmt"
	"strings"

	"dine-insights/models"
)

// PromptBuilder 把记录集和分析参数组装成一段提示词
type PromptBuilder interface {
	Build(req *models.AnalysisRequest) string
}

// FeedbackPromptBuilder 反馈情感分析的提示词模板
type FeedbackPromptBuilder struct{}

func (FeedbackPromptBuilder) Build(req *models.AnalysisRequest) string {
	var b strings.Builder
	b.WriteString("You are a restaurant operations analyst. Analyze the customer and staff feedback below.\n")
	fmt.Fprintf(&b, "Analysis type: %s. Timeframe: %s.\n", req.AnalysisType, req.Timeframe)
	if len(req.FocusAreas) > 0 {
		fmt.Fprintf(&b, "Focus areas: %s.\n", strings.Join(req.FocusAreas, ", "))
	}
	b.WriteString("\nFeedback records:\n")
	for _, rec := range req.FeedbackData {
		rating := "n/a"
		if rec.Rating != nil {
			rating = fmt.Sprintf("%.1f", *rec.Rating)
		}
		fmt.Fprintf(&b, "- [%s] (%s, rating %s) %s\n", rec.Date, rec.Source, rating, rec.Content)
	}
	b.WriteString("\nWrite a concise narrative covering overall sentiment, recurring themes, ")
	b.WriteString("notable risks and the most impactful improvements. Plain prose, no JSON.\n")
	return b.String()
}

// MeetingPromptBuilder 会议纪要分析的提示词模板
type MeetingPromptBuilder struct{}

// BuildTranscript 从切分后的转写段落组装会议分析提示词
func (MeetingPromptBuilder) BuildTranscript(segments []models.TranscriptionSegment, context string) string {
	var b strings.Builder
	b.WriteString("You are a meeting analyst for a restaurant management team. Analyze this transcript.\n")
	if context != "" {
		fmt.Fprintf(&b, "Meeting context: %s\n", context)
	}
	b.WriteString("\nTranscript:\n")
	for _, seg := range segments {
		fmt.Fprintf(&b, "[%s] %s\n", seg.SpeakerName, seg.Text)
	}
	b.WriteString("\nSummarize the discussion, key decisions and follow-ups in plain prose.\n")
	return b.String()
}
